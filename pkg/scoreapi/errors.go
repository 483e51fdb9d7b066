package scoreapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation   = errors.New("request validation failed")
	ErrMissingScore = errors.New("score id is required")
	ErrMissingFile  = errors.New("file name is required")
)

// RemoteError is returned for every non-2xx response of the remote service.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote service status=%d body=%s", e.Status, e.Body)
}

// IsUnauthorized reports whether err carries a 401 from the remote service.
func IsUnauthorized(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Status == http.StatusUnauthorized
}
