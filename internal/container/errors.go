package container

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeDisposedContainer
	ErrCodeInvalidProvider
	ErrCodeCircularAlias
	ErrCodeCircularDependency
	ErrCodeUnregisteredToken
	ErrCodeCannotInject
	ErrCodeUnrecognizedIdentifier
	ErrCodeProviderFailed
	ErrCodeTypeMismatch
	ErrCodeDuplicateMetadata
	ErrCodeInvalidClass
	ErrCodeInvalidManifest
	ErrCodeModuleApplyFailed
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:                "UNKNOWN",
	ErrCodeDisposedContainer:      "DISPOSED_CONTAINER",
	ErrCodeInvalidProvider:        "INVALID_PROVIDER",
	ErrCodeCircularAlias:          "CIRCULAR_ALIAS",
	ErrCodeCircularDependency:     "CIRCULAR_DEPENDENCY",
	ErrCodeUnregisteredToken:      "UNREGISTERED_TOKEN",
	ErrCodeCannotInject:           "CANNOT_INJECT",
	ErrCodeUnrecognizedIdentifier: "UNRECOGNIZED_IDENTIFIER",
	ErrCodeProviderFailed:         "PROVIDER_FAILED",
	ErrCodeTypeMismatch:           "TYPE_MISMATCH",
	ErrCodeDuplicateMetadata:      "DUPLICATE_METADATA",
	ErrCodeInvalidClass:           "INVALID_CLASS",
	ErrCodeInvalidManifest:        "INVALID_MANIFEST",
	ErrCodeModuleApplyFailed:      "MODULE_APPLY_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Role tells which kind of chain entry closed a dependency cycle.
type Role uint8

const (
	RoleNone Role = iota
	RoleClass
	RoleProvider
)

func (r Role) String() string {
	switch r {
	case RoleClass:
		return "class"
	case RoleProvider:
		return "provider"
	default:
		return ""
	}
}

const (
	msgDisposed        = "This container has been disposed, you cannot interact with a disposed container"
	msgInvalidProvider = "This provider is not an valid provider."
	msgUnrecognized    = "unrecognized service identifier"
	msgRefHint         = " Could mean a circular dependency problem. Try using `ref` function."
)

// Error is the coded error returned by every container operation. Its
// message is part of the public contract and is returned verbatim.
type Error struct {
	Code    ErrorCode
	Message string
	Service string
	Role    Role
	Cause   error
	Stack   []string
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	var b strings.Builder
	b.WriteString(e.Message)
	b.WriteString(": ")
	b.WriteString(e.Cause.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithService(service string) *Error {
	e.Service = service
	return e
}

func (e *Error) WithStack(stack []string) *Error {
	e.Stack = stack
	return e
}

func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errDisposed() *Error {
	return NewError(ErrCodeDisposedContainer, msgDisposed, nil)
}

// DisposedError is what every operation on a disposed container reports.
func DisposedError() *Error {
	return errDisposed()
}

func errInvalidProvider(service string) *Error {
	return NewError(ErrCodeInvalidProvider, msgInvalidProvider, nil).WithService(service)
}

func errUnrecognized() *Error {
	return NewError(ErrCodeUnrecognizedIdentifier, msgUnrecognized, nil)
}

func errCircularAlias(path []string) *Error {
	return NewError(
		ErrCodeCircularAlias,
		"Token registration cycle detected! "+strings.Join(path, " -> "),
		nil,
	).WithService(path[0]).WithStack(path)
}

func errCircularDependency(chain []string, service string, role Role) *Error {
	stack := make([]string, 0, len(chain)+1)
	stack = append(stack, chain...)
	stack = append(stack, service)
	err := NewError(
		ErrCodeCircularDependency,
		"Discovery of circular dependencies: "+strings.Join(stack, " -> "),
		nil,
	).WithService(service).WithStack(stack)
	err.Role = role
	return err
}

func errUnregisteredToken(service string) *Error {
	return NewError(
		ErrCodeUnregisteredToken,
		`Attempted to resolve unregistered dependency token: "`+service+`"`,
		nil,
	).WithService(service)
}

func errCannotInjectClass(class string) *Error {
	return NewError(
		ErrCodeCannotInject,
		fmt.Sprintf("Cannot inject dependencies for class '%s'.", class),
		nil,
	).WithService(class)
}

func errCannotInjectRole(r *role, missing bool) *Error {
	var msg string
	if r.property != "" {
		msg = fmt.Sprintf("Cannot inject property dependency '%s' for class '%s'.", r.property, r.parent.Name())
	} else {
		msg = fmt.Sprintf("Cannot inject dependency at #%d for constructor '%s'.", r.index, r.parent.Name())
	}
	if missing {
		msg += msgRefHint
	}
	return NewError(ErrCodeCannotInject, msg, nil).WithService(r.parent.Name())
}

func errProviderFailed(service string, cause error) *Error {
	return NewError(
		ErrCodeProviderFailed,
		fmt.Sprintf("provider for %s returned error", service),
		cause,
	).WithService(service)
}
