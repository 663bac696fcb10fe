package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrGenerationEmpty    = errors.New("generation returned no content")
	ErrCredentialInvalid  = errors.New("credential invalid or expired")
	ErrCredentialRequired = errors.New("credential selection required")
	ErrProviderFailure    = errors.New("provider failure")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrBusy               = errors.New("another request is in flight")
)
