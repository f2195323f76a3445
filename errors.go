package thimble

import (
	"errors"
	"fmt"

	"github.com/danpasecinic/thimble/internal/container"
)

type ErrorCode = container.ErrorCode

const (
	ErrCodeUnknown                = container.ErrCodeUnknown
	ErrCodeDisposedContainer      = container.ErrCodeDisposedContainer
	ErrCodeInvalidProvider        = container.ErrCodeInvalidProvider
	ErrCodeCircularAlias          = container.ErrCodeCircularAlias
	ErrCodeCircularDependency     = container.ErrCodeCircularDependency
	ErrCodeUnregisteredToken      = container.ErrCodeUnregisteredToken
	ErrCodeCannotInject           = container.ErrCodeCannotInject
	ErrCodeUnrecognizedIdentifier = container.ErrCodeUnrecognizedIdentifier
	ErrCodeProviderFailed         = container.ErrCodeProviderFailed
	ErrCodeTypeMismatch           = container.ErrCodeTypeMismatch
	ErrCodeDuplicateMetadata      = container.ErrCodeDuplicateMetadata
	ErrCodeInvalidClass           = container.ErrCodeInvalidClass
	ErrCodeInvalidManifest        = container.ErrCodeInvalidManifest
	ErrCodeModuleApplyFailed      = container.ErrCodeModuleApplyFailed
)

// Error is returned by every container operation. Message is the exact
// diagnostic text; Error() appends the cause when there is one.
type Error = container.Error

// Role tells whether a dependency cycle closed on a class being constructed
// or on a registered provider.
type Role = container.Role

const (
	RoleClass    = container.RoleClass
	RoleProvider = container.RoleProvider
)

// Sentinels match any *Error with the same code under errors.Is.
var (
	ErrDisposedContainer      = &Error{Code: ErrCodeDisposedContainer}
	ErrInvalidProvider        = &Error{Code: ErrCodeInvalidProvider}
	ErrCircularAlias          = &Error{Code: ErrCodeCircularAlias}
	ErrCircularDependency     = &Error{Code: ErrCodeCircularDependency}
	ErrUnregisteredToken      = &Error{Code: ErrCodeUnregisteredToken}
	ErrCannotInject           = &Error{Code: ErrCodeCannotInject}
	ErrUnrecognizedIdentifier = &Error{Code: ErrCodeUnrecognizedIdentifier}
	ErrProviderFailed         = &Error{Code: ErrCodeProviderFailed}
	ErrTypeMismatch           = &Error{Code: ErrCodeTypeMismatch}
	ErrDuplicateMetadata      = &Error{Code: ErrCodeDuplicateMetadata}
	ErrInvalidClass           = &Error{Code: ErrCodeInvalidClass}
	ErrInvalidManifest        = &Error{Code: ErrCodeInvalidManifest}
	ErrModuleApplyFailed      = &Error{Code: ErrCodeModuleApplyFailed}
)

func newError(code ErrorCode, message string, cause error) *Error {
	return container.NewError(code, message, cause)
}

func errTypeMismatch(service string, want string, got any) *Error {
	return newError(
		ErrCodeTypeMismatch,
		fmt.Sprintf("%s resolved to %T, not %s", service, got, want),
		nil,
	).WithService(service)
}

func errDuplicateMetadata(class string, cause error) *Error {
	return newError(
		ErrCodeDuplicateMetadata,
		fmt.Sprintf("metadata for class '%s' is already defined", class),
		cause,
	).WithService(class)
}

func errInvalidClass(cause error) *Error {
	return newError(ErrCodeInvalidClass, "invalid class constructor", cause)
}

func errInvalidManifest(cause error) *Error {
	return newError(ErrCodeInvalidManifest, "invalid metadata manifest", cause)
}

func errModuleApplyFailed(module string, cause error) *Error {
	return newError(
		ErrCodeModuleApplyFailed,
		fmt.Sprintf("failed to apply module %s", module),
		cause,
	).WithService(module)
}

// hasCode reports whether any error in err's chain carries code.
func hasCode(err error, code ErrorCode) bool {
	return errors.Is(err, &Error{Code: code})
}

func IsDisposed(err error) bool {
	return hasCode(err, ErrCodeDisposedContainer)
}

func IsInvalidProvider(err error) bool {
	return hasCode(err, ErrCodeInvalidProvider)
}

func IsCircularAlias(err error) bool {
	return hasCode(err, ErrCodeCircularAlias)
}

func IsCircularDependency(err error) bool {
	return hasCode(err, ErrCodeCircularDependency)
}

func IsUnregisteredToken(err error) bool {
	return hasCode(err, ErrCodeUnregisteredToken)
}

func IsCannotInject(err error) bool {
	return hasCode(err, ErrCodeCannotInject)
}

func IsUnrecognizedIdentifier(err error) bool {
	return hasCode(err, ErrCodeUnrecognizedIdentifier)
}

func IsProviderFailed(err error) bool {
	return hasCode(err, ErrCodeProviderFailed)
}

func IsTypeMismatch(err error) bool {
	return hasCode(err, ErrCodeTypeMismatch)
}
