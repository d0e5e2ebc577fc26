// internal/infrastructure/supabase/errors.go
package supabase

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Error is a transport/backend error surfaced by the remote service
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
}

// parseError decodes the error body. The auth and data endpoints use
// different shapes ({"msg":...}, {"error_description":...},
// {"message":...,"code":...}), so every known field is tried.
func parseError(status int, body []byte) error {
	var payload struct {
		Message     string `json:"message"`
		Msg         string `json:"msg"`
		ErrorName   string `json:"error"`
		Description string `json:"error_description"`
		Hint        string `json:"hint"`
		Code        any    `json:"code"`
	}
	_ = json.Unmarshal(body, &payload)

	message := firstNonEmpty(payload.Message, payload.Msg, payload.Description, payload.ErrorName)
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = http.StatusText(status)
	}

	code := ""
	switch v := payload.Code.(type) {
	case string:
		code = v
	case float64:
		code = strconv.Itoa(int(v))
	}

	return &Error{Status: status, Code: code, Message: message}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
