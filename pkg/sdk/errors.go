package semsearch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrInvalidQuery reports a request the service rejected as invalid.
// Use errors.Is() to check.
var ErrInvalidQuery = errors.New("semsearch: invalid query")

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("semsearch: %s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("semsearch: status %d: %s", e.StatusCode, e.Message)
}

// Is maps client-side rejections to ErrInvalidQuery.
func (e *APIError) Is(target error) bool {
	if target == ErrInvalidQuery {
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}

	var parsed struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		apiErr.Code = parsed.Code
		apiErr.Message = parsed.Message
	}
	return apiErr
}
