package cli

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	formulaic "github.com/formulaic-app/formulaic-go"
)

type fakeClient struct {
	resource  formulaic.Resource
	resources []formulaic.Resource
	err       error

	// populated by calls
	formulaID string
	fileID    string
	data      formulaic.Resource
	messages  []formulaic.Message
	file      formulaic.FileSource
	fileName  string
	deleted   bool

	mu      sync.Mutex
	uploads []formulaic.FileSource
	// failUpload fails uploads of the named path
	failUpload string
}

func (f *fakeClient) GetModels(context.Context) ([]formulaic.Resource, error) {
	return f.resources, f.err
}

func (f *fakeClient) GetFormula(_ context.Context, formulaID string) (formulaic.Resource, error) {
	f.formulaID = formulaID
	return f.resource, f.err
}

func (f *fakeClient) GetScripts(_ context.Context, formulaID string) ([]formulaic.Resource, error) {
	f.formulaID = formulaID
	return f.resources, f.err
}

func (f *fakeClient) CreateFormula(_ context.Context, data formulaic.Resource) (formulaic.Resource, error) {
	f.data = data
	return f.resource, f.err
}

func (f *fakeClient) CreateCompletion(_ context.Context, formulaID string, data formulaic.Resource) (formulaic.Resource, error) {
	f.formulaID = formulaID
	f.data = data
	return f.resource, f.err
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, formulaID string, messages []formulaic.Message) (formulaic.Resource, error) {
	f.formulaID = formulaID
	f.messages = messages
	return f.resource, f.err
}

func (f *fakeClient) UploadFile(_ context.Context, formulaID string, file formulaic.FileSource, fileName string) (formulaic.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpload != "" && reflect.DeepEqual(file, formulaic.Path(f.failUpload)) {
		return nil, errors.New("Failed to upload file: 500 - Internal Server Error")
	}
	f.formulaID = formulaID
	f.file = file
	f.fileName = fileName
	f.uploads = append(f.uploads, file)
	return f.resource, f.err
}

func (f *fakeClient) GetFiles(_ context.Context, formulaID string) ([]formulaic.Resource, error) {
	f.formulaID = formulaID
	return f.resources, f.err
}

func (f *fakeClient) GetFile(_ context.Context, formulaID, fileID string) (formulaic.Resource, error) {
	f.formulaID = formulaID
	f.fileID = fileID
	return f.resource, f.err
}

func (f *fakeClient) UpdateFile(_ context.Context, formulaID, fileID string, data formulaic.Resource) (formulaic.Resource, error) {
	f.formulaID = formulaID
	f.fileID = fileID
	f.data = data
	return f.resource, f.err
}

func (f *fakeClient) DeleteFile(_ context.Context, formulaID, fileID string) error {
	f.formulaID = formulaID
	f.fileID = fileID
	f.deleted = f.err == nil
	return f.err
}

// execute runs cmd with args against the fake client, returning stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	got := bytes.Buffer{}
	cmd.SetArgs(args)
	cmd.SetOut(&got)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.ExecuteContext(context.Background())
	return got.String(), err
}

func newFakeCLI(t *testing.T, client *fakeClient) *CLI {
	t.Helper()

	require.NotNil(t, client)
	return &CLI{client: client}
}
