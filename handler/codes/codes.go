package codes

import (
	"errors"
	"net/http"

	"cdp/core"
)

const (
	// InvalidArguments invalid arguments
	InvalidArguments = 100001
	// Internal unexpected failure
	Internal = 500
)

// Get http status and error code of err. Engine errors are client errors,
// anything else is internal.
func Get(err error) (int, int) {
	var code core.ErrorCode
	if !errors.As(err, &code) {
		return http.StatusInternalServerError, Internal
	}

	switch code {
	case core.ErrUnknown, core.ErrInvalidConfiguration:
		return http.StatusInternalServerError, int(code)
	case core.ErrReentrantCall:
		return http.StatusConflict, int(code)
	default:
		return http.StatusBadRequest, int(code)
	}
}
