// Package cli provides the CLI client, i.e. the `formulaic` binary.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	formulaic "github.com/formulaic-app/formulaic-go"
	cmdutil "github.com/formulaic-app/formulaic-go/cmd"
	apihttp "github.com/formulaic-app/formulaic-go/internal/http"
	"github.com/formulaic-app/formulaic-go/internal/logr"
)

// CLI is the `formulaic` cli application
type CLI struct {
	client apiClient
	creds  CredentialsStore
	output string
}

type apiClient interface {
	GetModels(ctx context.Context) ([]formulaic.Resource, error)
	GetFormula(ctx context.Context, formulaID string) (formulaic.Resource, error)
	GetScripts(ctx context.Context, formulaID string) ([]formulaic.Resource, error)
	CreateFormula(ctx context.Context, data formulaic.Resource) (formulaic.Resource, error)
	CreateCompletion(ctx context.Context, formulaID string, data formulaic.Resource) (formulaic.Resource, error)
	CreateChatCompletion(ctx context.Context, formulaID string, messages []formulaic.Message) (formulaic.Resource, error)
	UploadFile(ctx context.Context, formulaID string, file formulaic.FileSource, fileName string) (formulaic.Resource, error)
	GetFiles(ctx context.Context, formulaID string) ([]formulaic.Resource, error)
	GetFile(ctx context.Context, formulaID, fileID string) (formulaic.Resource, error)
	UpdateFile(ctx context.Context, formulaID, fileID string, data formulaic.Resource) (formulaic.Resource, error)
	DeleteFile(ctx context.Context, formulaID, fileID string) error
}

// config is populated from flags and env variables.
type config struct {
	formulaic.Config

	insecure bool
	logging  logr.Config
}

func NewCLI() *CLI {
	return &CLI{}
}

func (a *CLI) Run(ctx context.Context, args []string, out io.Writer) error {
	var cfg config

	if a.creds == "" {
		creds, err := NewCredentialsStore(osDirectories{})
		if err != nil {
			return err
		}
		a.creds = creds
	}

	cmd := &cobra.Command{
		Use:               "formulaic",
		Short:             "Formulaic API client",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.newClient(&cfg),
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.BaseURL, "address", formulaic.DefaultURL, "Address of the Formulaic API")
	flags.StringVar(&cfg.APIKey, "api-key", "", "API key")
	flags.BoolVar(&cfg.Debug, "debug", false, "Log requests and responses")
	flags.BoolVar(&cfg.insecure, "insecure", false, "Skip verification of the server certificate")
	flags.StringVarP(&a.output, "output", "o", jsonOutput, "Output format: json or yaml")
	logr.LoadConfigFromFlags(flags, &cfg.logging)

	cmd.SetArgs(args)
	cmd.SetOut(out)

	cmd.AddCommand(a.loginCommand(&cfg))
	cmd.AddCommand(a.modelsCommand())
	cmd.AddCommand(a.formulasCommand())
	cmd.AddCommand(a.completionsCommand())
	cmd.AddCommand(a.chatCommand())
	cmd.AddCommand(a.filesCommand())

	if err := cmdutil.SetFlagsFromEnvVariables(flags); err != nil {
		return errors.Wrap(err, "failed to populate config from environment vars")
	}

	return cmd.ExecuteContext(ctx)
}

func (a *CLI) newClient(cfg *config) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		if err := validOutput(a.output); err != nil {
			return err
		}

		// Set API key according to the following precedence:
		// (1) flag
		// (2) env var
		// (3) credentials file
		if cfg.APIKey == "" {
			key, err := a.creds.Load(cfg.BaseURL)
			if err != nil {
				return fmt.Errorf("no API key: set --api-key or FORMULAIC_API_KEY, or run `formulaic login`: %w", err)
			}
			cfg.APIKey = key
		}

		if cfg.Debug {
			cfg.logging.Verbosity = max(cfg.logging.Verbosity, 1)
		}
		logger, err := logr.New(&cfg.logging)
		if err != nil {
			return err
		}
		cfg.Logger = logger.Logger

		if cfg.insecure {
			cfg.HTTPTransport = apihttp.InsecureTransport
		}

		client, err := formulaic.NewClient(cfg.Config)
		if err != nil {
			return errors.Wrap(err, "constructing client")
		}
		a.client = client
		return nil
	}
}
