package errors

import (
	goerrors "errors"
	"fmt"
)

// Error message constants for the py-imports-group application
const (
	// File processing errors
	ErrMsgFailedToReadFile      = "failed to read file"
	ErrMsgFailedToWriteFile     = "failed to write file"
	ErrMsgImportsWithoutBody    = "import block runs to the end of the file"
	ErrMsgUnterminatedStatement = "import statement is not terminated"
	ErrMsgUnrecognizedStatement = "unrecognized import statement"

	// Directory processing errors
	ErrMsgFailedToCheckPath    = "failed to check path"
	ErrMsgFilesFailedToProcess = "%d files failed to process"

	// Configuration errors
	ErrMsgFailedToLoadConfig    = "failed to load config"
	ErrMsgFailedToGetWorkingDir = "failed to get current working directory"
	ErrMsgFailedToResolveRoot   = "failed to resolve source root"
	ErrMsgInvalidJobs           = "--jobs must be at least 1"
	ErrMsgFailedToRenderDiff    = "failed to render diff"

	// Info/warning messages
	InfoMsgProcessing      = "PROCESSING: %s"
	InfoMsgSkippedNoCode   = "Skipped %s: no code after the header comment"
	InfoMsgUsingConfig     = "Using config: %s"
	InfoMsgSourceRoot      = "Source root: %s"
	InfoMsgErrorProcessing = "Error processing %s: %v"
	InfoMsgProcessedCount  = "Processed %d files successfully"
	InfoMsgErrorCount      = ", %d files had errors"
)

// Kind classifies why a file could not be rewritten.
type Kind int

const (
	Unknown Kind = iota
	FileNotReadable
	FileNotWritable
	MalformedImportBlock
	UnrecognizedStatementShape
)

func (k Kind) String() string {
	switch k {
	case FileNotReadable:
		return "FileNotReadable"
	case FileNotWritable:
		return "FileNotWritable"
	case MalformedImportBlock:
		return "MalformedImportBlock"
	case UnrecognizedStatementShape:
		return "UnrecognizedStatementShape"
	default:
		return "Unknown"
	}
}

// Error is a failure tied to one file. Line is 1-based, 0 when not applicable.
type Error struct {
	Kind Kind
	Path string
	Line int
	Err  error
}

// New returns an *Error of the given kind.
func New(kind Kind, path string, line int, err error) *Error {
	return &Error{Kind: kind, Path: path, Line: line, Err: err}
}

// Newf is New with a formatted message as the cause.
func Newf(kind Kind, path string, line int, format string, args ...any) *Error {
	return New(kind, path, line, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if loc == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", loc, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if goerrors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// ErrNoContent marks a file that holds nothing but header comments.
var ErrNoContent = goerrors.New("no content after header")
