package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"enrolcli/internal/chart"
	apierrors "enrolcli/internal/errors"
	"enrolcli/internal/services"
	"enrolcli/pkg/contracts/domain"
)

// SeriesBuilder is the service dependency of the enrolment handler.
type SeriesBuilder interface {
	BuildSeries(ctx context.Context, req services.SeriesRequest) (services.SeriesResult, error)
}

// EnrolmentHandler serves the enrolment series, summary and chart endpoints
type EnrolmentHandler struct {
	service   SeriesBuilder
	inputPath string
	title     string
	low       int
	high      int
	logger    *slog.Logger
	validate  *validator.Validate
}

// NewEnrolmentHandler creates a new enrolment handler. inputPath is the
// history export the server reads; title, low and high are the configured
// defaults a request may override per query.
func NewEnrolmentHandler(service SeriesBuilder, inputPath, title string, low, high int, logger *slog.Logger) *EnrolmentHandler {
	return &EnrolmentHandler{
		service:   service,
		inputPath: inputPath,
		title:     title,
		low:       low,
		high:      high,
		logger:    logger.With(slog.String("component", "enrolment_handler")),
		validate:  validator.New(),
	}
}

// Routes returns the enrolment routes
func (h *EnrolmentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/series", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/", h.GetSeries)
	})
	r.Get("/chart", h.GetChart)
	r.Get("/vega", h.GetVegaLite)

	return r
}

// seriesQuery carries the validated query parameters of the series
// endpoints. Epoch is a date like 28-Jul-2014; low and high are the
// inclusive window magnitudes before and after it.
type seriesQuery struct {
	Epoch string `validate:"required"`
	Low   int    `validate:"min=0"`
	High  int    `validate:"min=0"`
	Title string
}

func (h *EnrolmentHandler) parseQuery(r *http.Request) (seriesQuery, *apierrors.APIError) {
	q := seriesQuery{
		Epoch: r.URL.Query().Get("epoch"),
		Low:   h.low,
		High:  h.high,
		Title: h.title,
	}
	if q.Epoch == "" {
		return q, apierrors.ErrMissingParameter
	}

	if raw := r.URL.Query().Get("low"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return q, apierrors.InvalidParameter("low", err)
		}
		q.Low = v
	}
	if raw := r.URL.Query().Get("high"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return q, apierrors.InvalidParameter("high", err)
		}
		q.High = v
	}
	if title := r.URL.Query().Get("title"); title != "" {
		q.Title = title
	}

	if err := h.validate.Struct(q); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			field := errs[0].Field()
			return q, apierrors.ErrValidation(field, fmt.Sprintf("invalid value for %s", field))
		}
		return q, apierrors.ErrValidationFailed
	}
	return q, nil
}

// seriesResponse is the JSON shape of GET /series. Summary is null when
// the window contained no data points.
type seriesResponse struct {
	Epoch   string          `json:"epoch"`
	Days    []int           `json:"days"`
	Counts  []int           `json:"counts"`
	Summary *domain.Summary `json:"summary"`
}

func (h *EnrolmentHandler) buildResult(r *http.Request, q seriesQuery) (services.SeriesResult, *apierrors.APIError) {
	result, err := h.service.BuildSeries(r.Context(), services.SeriesRequest{
		InputPath: h.inputPath,
		EpochDate: q.Epoch,
		Low:       q.Low,
		High:      q.High,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "series build failed",
			slog.String("epoch", q.Epoch),
			slog.String("error", err.Error()))
		return result, classifyServiceError(err)
	}
	return result, nil
}

// GetSeries returns the windowed series as JSON
func (h *EnrolmentHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	q, apiErr := h.parseQuery(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	result, apiErr := h.buildResult(r, q)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	resp := seriesResponse{
		Epoch:  q.Epoch,
		Days:   result.Series.Days,
		Counts: result.Series.Counts,
	}
	if resp.Days == nil {
		resp.Days = []int{}
	}
	if resp.Counts == nil {
		resp.Counts = []int{}
	}
	if result.OK {
		summary := result.Summary
		resp.Summary = &summary
	}
	render.JSON(w, r, resp)
}

// GetChart returns the series rendered as an SVG line chart
func (h *EnrolmentHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	q, apiErr := h.parseQuery(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	result, apiErr := h.buildResult(r, q)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	svg, err := chart.RenderSVG(result.Series, chart.Config{
		Title:  q.Title,
		XLabel: "Days from " + q.Epoch,
	})
	if err != nil {
		render.Render(w, r, apierrors.InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}

// GetVegaLite returns the series as a vega-lite chart specification
func (h *EnrolmentHandler) GetVegaLite(w http.ResponseWriter, r *http.Request) {
	q, apiErr := h.parseQuery(r)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	result, apiErr := h.buildResult(r, q)
	if apiErr != nil {
		render.Render(w, r, apiErr)
		return
	}

	spec, err := chart.VegaLiteSpec(result.Series, chart.Config{
		Title:  q.Title,
		XLabel: "Days from " + q.Epoch,
	})
	if err != nil {
		render.Render(w, r, apierrors.InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(spec)
}

// classifyServiceError maps pipeline failures onto API errors: a bad epoch
// or malformed input row is the caller's problem, a missing input file is
// a 404, everything else is ours.
func classifyServiceError(err error) *apierrors.APIError {
	switch {
	case errors.Is(err, services.ErrInvalidEpoch):
		return apierrors.New(http.StatusBadRequest, "INVALID_EPOCH", err.Error())
	case errors.Is(err, services.ErrMalformedInput):
		return apierrors.New(http.StatusBadRequest, "MALFORMED_INPUT", err.Error())
	case errors.Is(err, services.ErrInputUnreadable):
		return apierrors.New(http.StatusNotFound, "INPUT_NOT_FOUND", err.Error())
	default:
		return apierrors.InternalError(err)
	}
}
