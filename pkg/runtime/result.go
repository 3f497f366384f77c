package runtime

import (
	"fmt"
	"net/http"
)

// Result is the envelope every call returns: the response status and
// headers, the decoded payload, and whether the status was rejected.
type Result struct {
	Status  int
	Headers http.Header
	Data    any
	Err     bool
}

// APIError is the error form of a rejected Result, produced by Unwrap.
type APIError struct {
	Status int
	Data   any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d", e.Status)
}

// Unwrap collapses the result envelope into the optimistic (data, error)
// shape: rejected results become an *APIError carrying the decoded error
// payload.
func Unwrap(res *Result, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	if res.Err {
		return nil, &APIError{Status: res.Status, Data: res.Data}
	}
	return res.Data, nil
}
