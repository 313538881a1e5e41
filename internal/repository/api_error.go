package repository

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"divtracker/internal/dto"
	"divtracker/pkg/httpclient"
)

// apiError turns a non-2xx response into a uniform error carrying the
// backend's human-readable message. The backend replies with a body like
// {"message": "Ticker 'PG' already exists..."}; when the body is absent or
// unparseable the error falls back to a generic HTTP status message.
func apiError(resp *httpclient.BaseResponse) error {
	var errBody dto.APIErrorResponse
	if len(resp.Body) > 0 && json.Unmarshal(resp.Body, &errBody) == nil {
		if len(errBody.Errors) > 0 {
			msgs := make([]string, 0, len(errBody.Errors))
			for _, msg := range errBody.Errors {
				msgs = append(msgs, msg)
			}
			sort.Strings(msgs)
			return fmt.Errorf("%s", strings.Join(msgs, "\n"))
		}
		if errBody.Message != "" {
			return fmt.Errorf("%s", errBody.Message)
		}
	}
	return fmt.Errorf("HTTP status %d", resp.StatusCode)
}
