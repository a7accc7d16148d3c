package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error kinds. Every failure of a run wraps exactly one of these.
var (
	ErrUsage             = errors.New("usage error")
	ErrFileNotFound      = errors.New("file not found")
	ErrParse             = errors.New("parse error")
	ErrEmptyDocument     = errors.New("empty document")
	ErrNoExtractableText = errors.New("no extractable text")
	ErrConfig            = errors.New("invalid configuration")
)

// Error codes carried by AppError.Code.
const (
	CodeUsage             = "USAGE_ERROR"
	CodeFileNotFound      = "FILE_NOT_FOUND"
	CodeParse             = "PARSE_ERROR"
	CodeEmptyDocument     = "EMPTY_DOCUMENT"
	CodeNoExtractableText = "NO_EXTRACTABLE_TEXT"
	CodeConfig            = "CONFIG_ERROR"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// kindError joins a sentinel kind with the underlying cause so that
// errors.Is matches both.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return e.cause.Error()
}

func (e *kindError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func withKind(kind, cause error) error {
	return &kindError{kind: kind, cause: cause}
}

// UsageError reports a wrong argument count.
func UsageError(message string) *AppError {
	return NewAppError(CodeUsage, message, ErrUsage)
}

// FileNotFoundError reports that path could not be opened. cause is the
// error returned by the open call.
func FileNotFoundError(path string, cause error) *AppError {
	return NewAppError(CodeFileNotFound, path, withKind(ErrFileNotFound, cause))
}

// ParseError reports a collaborator failure. message is kept verbatim.
func ParseError(message string, cause error) *AppError {
	return NewAppError(CodeParse, message, withKind(ErrParse, cause))
}

func EmptyDocumentError() *AppError {
	return NewAppError(CodeEmptyDocument, "PDF has no pages", ErrEmptyDocument)
}

func NoExtractableTextError() *AppError {
	return NewAppError(CodeNoExtractableText, "No text could be extracted from PDF", ErrNoExtractableText)
}

// ConfigError reports an invalid environment setting.
func ConfigError(message string) *AppError {
	return NewAppError(CodeConfig, message, ErrConfig)
}

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
