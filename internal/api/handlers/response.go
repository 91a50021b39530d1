package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zatekoja/shortstay/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// dateLayout is accepted next to RFC 3339 wherever a date is read
const dateLayout = "2006-01-02"

// localLayouts are ISO 8601 date-times without a zone; they are read as UTC
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	dateLayout,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.GetLogger().Error().Err(err).Msg("failed to encode response")
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an AppError type to its status code. Anything
// that is not a client error is logged and reported as 500.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := apperrors.As(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
			return
		}
	}

	observability.LoggerFromContext(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}

func respondDeleted(w http.ResponseWriter, removed int64) {
	respondWithJSON(w, http.StatusOK, map[string]int64{
		"deleted": removed,
	})
}

// pathID parses a positive int64 path value
func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("invalid %s: %q", name, raw))
	}
	return id, nil
}

// decodeRequest decodes a JSON body into dst and runs its validate tags
func decodeRequest(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var dateErr *invalidDateError
		if errors.As(err, &dateErr) {
			return apperrors.NewValidationError(dateErr.Error())
		}
		return apperrors.NewValidationError("invalid request payload")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.NewValidationError(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

type invalidDateError struct {
	value string
}

func (e *invalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (use RFC3339, YYYY-MM-DDThh:mm[:ss] or YYYY-MM-DD)", e.value)
}

// parseDate accepts RFC 3339 timestamps, zoneless ISO 8601 date-times and
// plain YYYY-MM-DD dates
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &invalidDateError{value: value}
}

// Date is a request timestamp that also accepts a bare date
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t, err := parseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
