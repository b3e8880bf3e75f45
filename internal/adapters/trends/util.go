package trends

import (
	"errors"
	"io"
	"net/http"
	"strconv"
)

// StatusError carries a non-2xx response from the trends endpoints
type StatusError struct {
	Status int
	Body   string
}

// Error interface
func (e *StatusError) Error() string {
	if e.Body == "" {
		return "trends status " + strconv.Itoa(e.Status)
	}
	return "trends status " + strconv.Itoa(e.Status) + ": " + e.Body
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

// IsRateLimited reports whether err came from a 429 response
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusTooManyRequests
}

// IsTransient reports whether err came from a 5xx response
func IsTransient(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status >= 500
}

// trimGuard drops the anti-XSSI prefix Google puts in front of JSON bodies
func trimGuard(b []byte, n int) ([]byte, bool) {
	if len(b) < n {
		return nil, false
	}
	return b[n:], true
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
