package recommend

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Remote error codes this system reacts to.
const (
	resourceAlreadyExistsException = "ResourceAlreadyExistsException"
)

// ErrCreateFailed is returned when a resource reaches its failed terminal
// status. It is never retried.
var ErrCreateFailed = errors.New("resource reached CREATE FAILED status")

// IsAlreadyExists reports whether err is the remote side signalling that an
// identically-named resource already exists. Callers treat this as success
// and resolve the existing resource instead.
func IsAlreadyExists(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == resourceAlreadyExistsException
}
