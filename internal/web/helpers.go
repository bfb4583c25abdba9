package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/ports"
	"github.com/emiliopalmerini/uhpc/internal/service"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var (
		invalid *domain.InvalidInputError
		empty   *domain.EmptyInputError
		syntax  *json.SyntaxError
	)
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Code: invalid.Code(), Message: err.Error(), Field: invalid.Field})
	case errors.As(err, &empty):
		writeJSON(w, http.StatusBadRequest, errorBody{Code: empty.Code(), Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownStandard),
		errors.Is(err, domain.ErrUnknownObjective),
		errors.Is(err, domain.ErrUnknownPreset):
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "UNKNOWN_NAME", Message: err.Error()})
	case errors.Is(err, ports.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, service.ErrNoRepository):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Code: "NO_REPOSITORY", Message: err.Error()})
	case errors.As(err, &syntax), errors.Is(err, errBadRequest):
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "BAD_REQUEST", Message: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: err.Error()})
	}
}

var errBadRequest = errors.New("bad request")

// decode reads a JSON body into v, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// mixInput is a descriptor given inline or by preset name. Mix takes
// precedence over Preset.
type mixInput struct {
	Preset string            `json:"preset,omitempty"`
	Mix    *domain.MixDesign `json:"mix,omitempty"`
}

func (in mixInput) resolve() (domain.MixDesign, error) {
	switch {
	case in.Mix != nil:
		return *in.Mix, nil
	case in.Preset != "":
		return domain.Preset(in.Preset)
	}
	return domain.MixDesign{}, fmt.Errorf("%w: either mix or preset is required", errBadRequest)
}
