package formulaic

import (
	"errors"
	"fmt"
)

// Op names an API operation, as it appears in error messages.
type Op string

const (
	OpGetModels            Op = "get models"
	OpGetFormula           Op = "get formula"
	OpGetScripts           Op = "get scripts"
	OpCreateFormula        Op = "create formula"
	OpCreateCompletion     Op = "create completion"
	OpUploadFile           Op = "upload file"
	OpGetFiles             Op = "get files"
	OpGetFile              Op = "get file"
	OpUpdateFile           Op = "update file"
	OpDeleteFile           Op = "delete file"
	OpCreateChatCompletion Op = "create chat completion"
)

// Operation errors, one per remote call. Match with errors.Is.
var (
	ErrModelsFetch    = newOpError(OpGetModels)
	ErrFormulaFetch   = newOpError(OpGetFormula)
	ErrScriptsFetch   = newOpError(OpGetScripts)
	ErrFormulaCreate  = newOpError(OpCreateFormula)
	ErrCompletion     = newOpError(OpCreateCompletion)
	ErrFileUpload     = newOpError(OpUploadFile)
	ErrFilesFetch     = newOpError(OpGetFiles)
	ErrFileFetch      = newOpError(OpGetFile)
	ErrFileUpdate     = newOpError(OpUpdateFile)
	ErrFileDelete     = newOpError(OpDeleteFile)
	ErrChatCompletion = newOpError(OpCreateChatCompletion)

	opErrors = map[Op]error{
		OpGetModels:            ErrModelsFetch,
		OpGetFormula:           ErrFormulaFetch,
		OpGetScripts:           ErrScriptsFetch,
		OpCreateFormula:        ErrFormulaCreate,
		OpCreateCompletion:     ErrCompletion,
		OpUploadFile:           ErrFileUpload,
		OpGetFiles:             ErrFilesFetch,
		OpGetFile:              ErrFileFetch,
		OpUpdateFile:           ErrFileUpdate,
		OpDeleteFile:           ErrFileDelete,
		OpCreateChatCompletion: ErrChatCompletion,
	}
)

var (
	// ErrMissingAPIKey is returned when a client is constructed without an
	// API key.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrMissingScriptID is returned when a formula carries no ID with which
	// to address its scripts.
	ErrMissingScriptID = errors.New("formula has no script ID")

	errFormulaIDRequired = &ValidationError{Message: "Formula ID is required"}
	errFileIDRequired    = &ValidationError{Message: "File ID is required"}
	errFileNameRequired  = &ValidationError{Message: "File name is required"}
	errMessagesNotArray  = &ValidationError{Message: "Messages must be an array"}
)

type (
	// ValidationError reports bad caller input, detected before any request
	// is made.
	ValidationError struct {
		Message string
	}

	// InvalidFileTypeError is returned by UploadFile when the file source is
	// neither bytes nor a path.
	InvalidFileTypeError struct{}

	// OperationError wraps the failure of a remote call, prefixing the cause
	// with the operation.
	OperationError struct {
		Op  Op
		Err error
	}
)

func newOpError(op Op) error {
	return errors.New("Failed to " + string(op))
}

func (e *ValidationError) Error() string { return e.Message }

func (e *InvalidFileTypeError) Error() string {
	return "Invalid file type: expected bytes or a file path"
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("Failed to %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel error for the operation.
func (e *OperationError) Is(target error) bool {
	sentinel, ok := opErrors[e.Op]
	return ok && sentinel == target
}
