package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ukaji3/missingplot-go/internal/infrastructure"
	"github.com/ukaji3/missingplot-go/pkg/missingplot"
	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// Problem types following RFC 7807
const (
	TypeValidation          = "/errors/validation"
	TypePayloadTooLarge     = "/errors/payload-too-large"
	TypeInternal            = "/errors/internal"
	TypeInvalidTable        = "/errors/estimation/invalid-table"
	TypeNoMissingValue      = "/errors/estimation/no-missing-value"
	TypeUnsupportedTopology = "/errors/estimation/unsupported-topology"
	TypeDegenerateDesign    = "/errors/estimation/degenerate-design"
	TypeNumericOverflow     = "/errors/estimation/numeric-overflow"
	TypeInvalidTopology     = "/errors/estimation/invalid-topology"
)

// ProblemDetails is an RFC 7807 error body.
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	Extensions map[string]any `json:"-"`
}

// NewProblemDetails creates problem details for a request path.
func NewProblemDetails(status int, typ, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       typ,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]any),
	}
}

// WithExtension adds a member to the problem body.
func (pd *ProblemDetails) WithExtension(key string, value any) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// Render implements the render.Renderer interface
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON includes extensions as top-level members.
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := map[string]any{
		"type":   pd.Type,
		"title":  pd.Title,
		"status": pd.Status,
	}
	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}
	for k, v := range pd.Extensions {
		data[k] = v
	}
	return json.Marshal(data)
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// problemFor converts an error to problem details.
func problemFor(err error, r *http.Request) *ProblemDetails {
	path := r.URL.Path

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, len(verrs))
		for i, fe := range verrs {
			fields[i] = FieldError{Field: fe.Namespace(), Rule: fe.Tag(), Param: fe.Param()}
		}
		return NewProblemDetails(http.StatusBadRequest, TypeValidation, "Validation Failed",
			"request body failed validation", path).WithExtension("errors", fields)
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return NewProblemDetails(http.StatusRequestEntityTooLarge, TypePayloadTooLarge, "Payload Too Large",
			err.Error(), path).WithExtension("max_size", maxErr.Limit)
	}

	switch {
	case errors.Is(err, errMalformedBody):
		return NewProblemDetails(http.StatusBadRequest, TypeValidation, "Malformed Request", err.Error(), path)
	case errors.Is(err, models.ErrInvalidTable), errors.Is(err, models.ErrDuplicateCell):
		return NewProblemDetails(http.StatusUnprocessableEntity, TypeInvalidTable, "Invalid Table", err.Error(), path)
	case errors.Is(err, missingplot.ErrNoMissingValue):
		return NewProblemDetails(http.StatusUnprocessableEntity, TypeNoMissingValue, "No Missing Value", err.Error(), path)
	case errors.Is(err, missingplot.ErrUnsupportedTopology):
		return NewProblemDetails(http.StatusUnprocessableEntity, TypeUnsupportedTopology, "Unsupported Topology", err.Error(), path)
	case errors.Is(err, missingplot.ErrDegenerateDesign):
		return NewProblemDetails(http.StatusUnprocessableEntity, TypeDegenerateDesign, "Degenerate Design", err.Error(), path)
	case errors.Is(err, missingplot.ErrNumericOverflow):
		return NewProblemDetails(http.StatusUnprocessableEntity, TypeNumericOverflow, "Numeric Overflow", err.Error(), path)
	case errors.Is(err, missingplot.ErrInvalidTopology):
		return NewProblemDetails(http.StatusInternalServerError, TypeInvalidTopology, "Invalid Topology", err.Error(), path)
	default:
		return NewProblemDetails(http.StatusInternalServerError, TypeInternal, "Internal Server Error",
			"an unexpected error occurred", path)
	}
}

// renderError logs err and responds with its problem details.
func (h *EstimateHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	problem := problemFor(err, r)
	problem.WithExtension("trace_id", infrastructure.GetTraceID(r.Context()))

	if problem.Status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "error", err.Error(), "type", problem.Type)
	} else {
		h.logger.WarnContext(r.Context(), "request rejected", "error", err.Error(), "type", problem.Type)
	}

	render.Render(w, r, problem)
}
