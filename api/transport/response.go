package transport

import (
	"encoding/json"
	"net/http"

	"github.com/careerconnect/client/domain"
)

// AuthResponse is the payload returned by login and register. Register
// leaves Profile empty; it is fetched lazily on the next revalidation.
type AuthResponse struct {
	Message     string          `json:"message,omitempty"`
	AccessToken string          `json:"access_token"`
	User        *domain.User    `json:"user"`
	Profile     *domain.Profile `json:"profile,omitempty"`
}

// CurrentUserResponse is the payload returned by GET /auth/me.
type CurrentUserResponse struct {
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile,omitempty"`
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Error string `json:"error"`
}

// decodeError turns a non-2xx response into a domain error carrying the
// backend's human-readable message when one is present.
func decodeError(status int, body []byte) error {
	message := http.StatusText(status)
	var payload errorBody
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
			message = payload.Error
		}
	}
	return domain.NewError(codeForStatus(status), message)
}

func codeForStatus(status int) domain.ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrCodeUnauthorized
	case http.StatusForbidden:
		return domain.ErrCodeForbidden
	case http.StatusNotFound:
		return domain.ErrCodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrCodeInvalid
	case http.StatusConflict:
		return domain.ErrCodeConflict
	default:
		return domain.ErrCodeInternal
	}
}
