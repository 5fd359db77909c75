package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jrbibin/Project-Management/internal/application"
	"github.com/jrbibin/Project-Management/internal/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeBody reads the request body into dst and returns the raw bytes so
// validation failures can echo them back.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, application.NewValidationError(application.FieldError{
			Field: "body", Message: "request body too large", Type: "body_too_large",
		})
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return body, application.NewValidationError(application.FieldError{
			Field: "body", Message: "field required", Type: "required",
		})
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var timeErr *time.ParseError
		switch {
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return body, application.NewValidationError(application.FieldError{
				Field: field, Message: "must be of type " + typeErr.Type.String(), Type: "type_error",
			})
		case errors.As(err, &timeErr):
			return body, application.NewValidationError(application.FieldError{
				Field: "body", Message: "invalid datetime, expected YYYY-MM-DD or RFC 3339", Type: "datetime_parsing",
			})
		default:
			return body, application.NewValidationError(application.FieldError{
				Field: "body", Message: "invalid JSON", Type: "json_invalid",
			})
		}
	}
	return body, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, body []byte) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		h.log.Warn("request validation failed", "method", r.Method, "path", r.URL.Path, "fields", verr.FieldNames())
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": verr.Fields, "body": echoBody(body)})
	case errors.Is(err, domain.ErrInvalidReference), errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrVersionConflict):
		writeJSON(w, http.StatusConflict, map[string]any{"detail": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": err.Error()})
	case errors.Is(err, domain.ErrDataIntegrity):
		h.log.Error("data integrity violation", "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": err.Error()})
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"detail": "internal error"})
	}
}

func echoBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}

func pathUint(r *http.Request, name string) (uint, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, application.NewValidationError(application.FieldError{
			Field: name, Message: "must be a positive integer", Type: "int_parsing",
		})
	}
	return uint(parsed), nil
}

func queryUint(r *http.Request, name string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, application.NewValidationError(application.FieldError{
			Field: name, Message: "must be a positive integer", Type: "int_parsing",
		})
	}
	v := uint(parsed)
	return &v, nil
}

func queryPage(r *http.Request) (domain.Page, error) {
	var page domain.Page
	var fields []application.FieldError
	for _, p := range []struct {
		name string
		dst  *int
	}{{"skip", &page.Skip}, {"limit", &page.Limit}} {
		raw := strings.TrimSpace(r.URL.Query().Get(p.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields = append(fields, application.FieldError{
				Field: p.name, Message: fmt.Sprintf("%s must be a non-negative integer", p.name), Type: "int_parsing",
			})
			continue
		}
		*p.dst = n
	}
	if len(fields) > 0 {
		return domain.Page{}, application.NewValidationError(fields...)
	}
	return page.Normalize(), nil
}
