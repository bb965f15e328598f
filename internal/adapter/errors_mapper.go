package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/gig-sync/internal/utils"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorMessage(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrUnprocessable, body)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrTooManyRequests, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	case http.StatusBadGateway:
		return fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, body)
	default:
		return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode(), body)
	}
}

// errorMessage prefers the server's JSON error envelope and falls back to the
// raw body, then to the status text.
func errorMessage(resp *resty.Response) string {
	raw := resp.Body()

	var envelope utils.ErrorBody
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}

	if body := strings.TrimSpace(string(raw)); body != "" {
		return body
	}
	return http.StatusText(resp.StatusCode())
}

// IsPermanent reports whether err is a remote failure that cannot succeed on
// retry: a rejected request or a missing or forbidden document.
// Authentication, throttling, server, transport and decoding failures are
// transient.
func IsPermanent(err error) bool {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrUnprocessable):
		return true
	}
	return false
}
