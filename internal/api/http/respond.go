package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func errorStatus(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrVehicleNotFound), errors.Is(err, domain.ErrRentalNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrVehicleUnavailable),
		errors.Is(err, domain.ErrVehicleRented):
		return http.StatusConflict
	case errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrVehicleNotFound), errors.Is(err, domain.ErrRentalNotFound):
		return "Not found"
	case errors.Is(err, domain.ErrVehicleUnavailable):
		return "Unavailable"
	case errors.Is(err, domain.ErrVehicleRented):
		return "Vehicle has an active rental"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.As(err, &verr):
		return verr.Error()
	default:
		return "Internal error"
	}
}

// writeError renders a failure in the {"error": ...} shape used by the fleet
// and rent endpoints.
func writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": errorMessage(err)})
}

// looseFloat accepts a JSON number or a numeric string. The browser posts
// form values straight out of text inputs, so both arrive.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*f = looseFloat(v)
	return nil
}

// looseInt accepts a JSON integer or a numeric string.
type looseInt int

func (i *looseInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %q", s)
	}
	*i = looseInt(v)
	return nil
}
