package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ukaji3/missingplot-go/internal/metrics"
	"github.com/ukaji3/missingplot-go/pkg/missingplot"
	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
	"github.com/ukaji3/missingplot-go/pkg/missingplot/output"
)

var errMalformedBody = errors.New("malformed request body")

// CellRequest is one observation of a submitted design. Value is required;
// an explicit null marks the cell missing.
type CellRequest struct {
	Row   string          `json:"row" validate:"required"`
	Col   string          `json:"col" validate:"required"`
	Value json.RawMessage `json:"value" validate:"required"`
}

// EstimateRequest is the body of the estimation endpoints.
type EstimateRequest struct {
	Cells             []CellRequest `json:"cells" validate:"required,min=1,dive"`
	SameColumnFormula string        `json:"same_column_formula,omitempty" validate:"omitempty,oneof=symmetric literal"`
}

// EstimateResponse carries the result and the completed table.
type EstimateResponse struct {
	Result *models.EstimationResult `json:"result"`
	Cells  []models.Cell            `json:"cells"`
}

// EstimateHandler serves estimation requests.
type EstimateHandler struct {
	defaults  missingplot.Options
	spss      output.SPSSOptions
	metrics   *metrics.Metrics
	logger    *slog.Logger
	validator *validator.Validate
}

// NewEstimateHandler creates an estimate handler.
func NewEstimateHandler(defaults missingplot.Options, spss output.SPSSOptions, m *metrics.Metrics, logger *slog.Logger) *EstimateHandler {
	v := validator.New()
	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &EstimateHandler{
		defaults:  defaults,
		spss:      spss,
		metrics:   m,
		logger:    logger.With(slog.String("component", "estimate_handler")),
		validator: v,
	}
}

// RegisterRoutes registers the estimation routes
func (h *EstimateHandler) RegisterRoutes(r chi.Router) {
	r.Post("/v1/estimate", h.Estimate)
	r.Post("/v1/estimate/spss", h.EstimateSPSS)
}

// Estimate responds with the estimation result as JSON.
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	t, res, err := h.run(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	filled, err := missingplot.Fill(t, res)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.JSON(w, r, EstimateResponse{Result: res, Cells: filled.Cells()})
}

// EstimateSPSS responds with SPSS syntax applying the estimates.
func (h *EstimateHandler) EstimateSPSS(w http.ResponseWriter, r *http.Request) {
	_, res, err := h.run(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.PlainText(w, r, output.SPSSSyntax(res, h.spss))
}

// run decodes and validates the request and estimates its design.
func (h *EstimateHandler) run(r *http.Request) (*models.Table, *models.EstimationResult, error) {
	var req EstimateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errMalformedBody, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return nil, nil, err
	}

	opts := h.defaults
	if req.SameColumnFormula != "" {
		opts.SameColumnFormula = missingplot.SameColumnFormula(req.SameColumnFormula)
	}

	cells := make([]models.Cell, len(req.Cells))
	for i, c := range req.Cells {
		var v models.Value
		if err := json.Unmarshal(c.Value, &v); err != nil {
			return nil, nil, fmt.Errorf("%w: cells[%d].value: %w", errMalformedBody, i, err)
		}
		cells[i] = models.Cell{Row: c.Row, Col: c.Col, Value: v}
	}
	t, err := models.NewTable(cells)
	if err != nil {
		h.metrics.ObserveError(err)
		return nil, nil, err
	}

	start := time.Now()
	res, err := missingplot.Estimate(t, opts)
	h.metrics.Observe(res, err, time.Since(start))
	if err != nil {
		return nil, nil, err
	}

	h.logger.InfoContext(r.Context(), "design estimated",
		slog.String("topology", res.Topology),
		slog.Int("rows", res.Inputs.Rows),
		slog.Int("cols", res.Inputs.Cols),
		slog.Bool("exact", res.Exact))
	return t, res, nil
}
