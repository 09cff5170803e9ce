package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Input errors
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInvalid    ErrorType = "invalid"

	// Registry errors
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeConflict    ErrorType = "conflict"
	ErrorTypeUnsupported ErrorType = "unsupported"
	ErrorTypeNotReady    ErrorType = "not_ready"

	// Plugin lifecycle errors
	ErrorTypeInitialization ErrorType = "initialization"

	// System errors
	ErrorTypeInternal ErrorType = "internal"
	ErrorTypeExternal ErrorType = "external"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error codes for specific scenarios
const (
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeDuplicatePlugin      = "DUPLICATE_PLUGIN"
	CodePluginNotFound       = "PLUGIN_NOT_FOUND"
	CodeCapabilityMissing    = "CAPABILITY_MISSING"
	CodePluginNotReady       = "PLUGIN_NOT_READY"
	CodeInitializationFailed = "INITIALIZATION_FAILED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType      `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	InnerError error          `json:"-"`
	Stack      []string       `json:"-"`
	HTTPStatus int            `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message == "" {
		if e.InnerError != nil {
			return e.InnerError.Error()
		}
		return string(e.Type)
	}
	if e.InnerError != nil {
		return e.Message + ": " + e.InnerError.Error()
	}
	return e.Message
}

// Unwrap returns the inner error
func (e *AppError) Unwrap() error {
	return e.InnerError
}

// WithMessage sets the message
func (e *AppError) WithMessage(msg string) *AppError {
	e.Message = msg
	return e
}

// WithCode sets the code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithHTTPStatus sets the HTTP status code
func (e *AppError) WithHTTPStatus(status int) *AppError {
	e.HTTPStatus = status
	return e
}

// WithInnerError sets the inner error
func (e *AppError) WithInnerError(err error) *AppError {
	e.InnerError = err
	return e
}

// WithStack captures the call stack
func (e *AppError) WithStack() *AppError {
	e.Stack = captureStack(3)
	return e
}

// Is matches another *AppError of the same type, so errors.Is works with
// the sentinel values below.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && (t.Code == "" || t.Code == e.Code)
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrNotFound       = &AppError{Type: ErrorTypeNotFound}
	ErrConflict       = &AppError{Type: ErrorTypeConflict}
	ErrValidation     = &AppError{Type: ErrorTypeValidation}
	ErrUnsupported    = &AppError{Type: ErrorTypeUnsupported}
	ErrNotReady       = &AppError{Type: ErrorTypeNotReady}
	ErrInitialization = &AppError{Type: ErrorTypeInitialization}
)

// New creates a new AppError
func New(errType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    string(errType),
	}
}

// FromError converts a standard error to AppError
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return &AppError{
		Type:       ErrorTypeUnknown,
		InnerError: err,
	}
}

// Wrap wraps an error with additional context, keeping its type
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	inner := FromError(err)
	return &AppError{
		Type:       inner.Type,
		Code:       inner.Code,
		Message:    message,
		InnerError: err,
		HTTPStatus: inner.HTTPStatus,
	}
}

// WrapWithType wraps an error with a specific type
func WrapWithType(err error, errType ErrorType, message string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		InnerError: err,
		Code:       string(errType),
	}
}

// TypeOf returns the ErrorType of err, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	return FromError(err).Type
}

// IsType reports whether any error in err's chain has the given type.
func IsType(err error, errType ErrorType) bool {
	return errors.Is(err, &AppError{Type: errType})
}

// Registry errors

func NewValidation(message string) *AppError {
	return New(ErrorTypeValidation, message).
		WithCode(CodeValidationFailed).
		WithHTTPStatus(http.StatusUnprocessableEntity)
}

func NewInvalid(field string, value any, reason string) *AppError {
	return New(ErrorTypeInvalid, fmt.Sprintf("invalid value for %s: %v", field, value)).
		WithDetail("field", field).
		WithDetail("value", value).
		WithDetail("reason", reason).
		WithHTTPStatus(http.StatusBadRequest)
}

func NewNotFound(resource string, id any) *AppError {
	return New(ErrorTypeNotFound, fmt.Sprintf("%s %v not found", resource, id)).
		WithCode(CodePluginNotFound).
		WithDetail("resource", resource).
		WithDetail("id", id).
		WithHTTPStatus(http.StatusNotFound)
}

func NewConflict(resource string, id any) *AppError {
	return New(ErrorTypeConflict, fmt.Sprintf("%s %v already registered", resource, id)).
		WithCode(CodeDuplicatePlugin).
		WithDetail("resource", resource).
		WithDetail("id", id).
		WithHTTPStatus(http.StatusConflict)
}

func NewUnsupported(name string, capability string) *AppError {
	return New(ErrorTypeUnsupported, fmt.Sprintf("plugin %q does not support %s", name, capability)).
		WithCode(CodeCapabilityMissing).
		WithDetail("plugin", name).
		WithDetail("capability", capability).
		WithHTTPStatus(http.StatusBadRequest)
}

func NewNotReady(name string, state string) *AppError {
	return New(ErrorTypeNotReady, fmt.Sprintf("plugin %q is %s", name, state)).
		WithCode(CodePluginNotReady).
		WithDetail("plugin", name).
		WithDetail("state", state).
		WithHTTPStatus(http.StatusConflict)
}

// NewInitialization is the single plugin failure kind: Init returned false.
func NewInitialization(name string) *AppError {
	return New(ErrorTypeInitialization, fmt.Sprintf("plugin %q failed to initialize", name)).
		WithCode(CodeInitializationFailed).
		WithDetail("plugin", name).
		WithHTTPStatus(http.StatusServiceUnavailable)
}

func NewInternal(message string) *AppError {
	return New(ErrorTypeInternal, message).
		WithCode(CodeInternalError).
		WithHTTPStatus(http.StatusInternalServerError)
}

// HTTPStatusOf returns the HTTP status carried by err, defaulting to 500.
func HTTPStatusOf(err error) int {
	appErr := FromError(err)
	if appErr == nil {
		return http.StatusOK
	}
	if appErr.HTTPStatus > 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON shape of an error returned over HTTP.
type ErrorResponse struct {
	Type    string         `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse converts err to its JSON shape.
func ToResponse(err error) ErrorResponse {
	appErr := FromError(err)
	return ErrorResponse{
		Type:    string(appErr.Type),
		Code:    appErr.Code,
		Message: appErr.Error(),
		Details: appErr.Details,
	}
}

// RecoverWithHandler recovers from panics and hands them over as AppError.
// It must be deferred directly.
func RecoverWithHandler(handler func(*AppError)) {
	if r := recover(); r != nil {
		handler(fromPanic(r))
	}
}

func fromPanic(r any) *AppError {
	var appErr *AppError
	switch v := r.(type) {
	case error:
		appErr = WrapWithType(v, ErrorTypeInternal, "panic recovered")
	case string:
		appErr = New(ErrorTypeInternal, v)
	default:
		appErr = New(ErrorTypeInternal, fmt.Sprintf("%v", v))
	}
	return appErr.WithCode(CodeInternalError).WithStack()
}

// ErrorChain collects errors from a batch operation.
type ErrorChain struct {
	errors []*AppError
}

// NewErrorChain creates an empty chain.
func NewErrorChain() *ErrorChain {
	return &ErrorChain{}
}

// Add appends err; nil is ignored.
func (c *ErrorChain) Add(err error) {
	if err == nil {
		return
	}
	c.errors = append(c.errors, FromError(err))
}

// HasErrors reports whether anything was added.
func (c *ErrorChain) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all errors in the chain
func (c *ErrorChain) Errors() []*AppError {
	return c.errors
}

// Err returns the chain as an error, or nil when empty.
func (c *ErrorChain) Err() error {
	if !c.HasErrors() {
		return nil
	}
	return c
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (c *ErrorChain) Unwrap() []error {
	out := make([]error, len(c.errors))
	for i, err := range c.errors {
		out[i] = err
	}
	return out
}

func (c *ErrorChain) Error() string {
	messages := make([]string, 0, len(c.errors))
	for _, err := range c.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, " | ")
}

// captureStack captures the current call stack
func captureStack(skip int) []string {
	var stack []string
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		stack = append(stack, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}
	return stack
}
