package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/michaelmindrum/insulin-prescription-app/internal/calc"
	"github.com/michaelmindrum/insulin-prescription-app/internal/catalog"
	"github.com/michaelmindrum/insulin-prescription-app/internal/dosing"
	"github.com/michaelmindrum/insulin-prescription-app/internal/model"
	"github.com/michaelmindrum/insulin-prescription-app/internal/rxtext"
	"github.com/michaelmindrum/insulin-prescription-app/internal/supply"
)

type Handler struct {
	calc *calc.Calculator
	log  zerolog.Logger
}

func NewHandler(c *calc.Calculator, log zerolog.Logger) *Handler {
	return &Handler{calc: c, log: log}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	api.GET("/catalog", h.ListCatalog)
	api.GET("/catalog/:insulin", h.GetInsulin)
	api.POST("/calculations", h.CreateCalculation)
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Phase string `json:"phase,omitempty"`
	Field string `json:"field,omitempty"`
}

// ClassView lists the insulins of one dosing class.
type ClassView struct {
	Class    model.InsulinClass `json:"class"`
	Label    string             `json:"label"`
	Insulins []string           `json:"insulins"`
}

type CatalogResponse struct {
	Classes []ClassView `json:"classes"`
}

type FormView struct {
	Form           string  `json:"form"`
	UnitsPerDevice float64 `json:"units_per_device"`
	Boxed          bool    `json:"boxed"`
}

type ConcentrationView struct {
	Concentration string     `json:"concentration"`
	Forms         []FormView `json:"forms"`
}

type InsulinResponse struct {
	Name           string              `json:"name"`
	Class          model.InsulinClass  `json:"class"`
	Concentrations []ConcentrationView `json:"concentrations"`
}

// CalculationRequest is the POST /api/v1/calculations body.
type CalculationRequest struct {
	Category      string `json:"category"`
	Insulin       string `json:"insulin"`
	Concentration string `json:"concentration"`
	DeviceForm    string `json:"device_form"`
	model.PatientInputs
}

type CalculationResponse struct {
	*model.Calculation
	Disclaimer string `json:"disclaimer"`
	GuideURL   string `json:"guide_url"`
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"insulins": h.calc.Catalog().Len(),
	})
}

func (h *Handler) ListCatalog(c echo.Context) error {
	classes := model.AllClasses
	if q := c.QueryParam("category"); q != "" {
		class, err := model.ParseClass(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		classes = []model.InsulinClass{class}
	}

	cat := h.calc.Catalog()
	resp := CatalogResponse{Classes: make([]ClassView, 0, len(classes))}
	for _, class := range classes {
		names := cat.Names(class)
		if names == nil {
			names = []string{}
		}
		resp.Classes = append(resp.Classes, ClassView{Class: class, Label: class.Label(), Insulins: names})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetInsulin(c echo.Context) error {
	cat := h.calc.Catalog()
	name := c.Param("insulin")

	concs, err := cat.Concentrations(name)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	class, _ := cat.Class(name)

	resp := InsulinResponse{Class: class}
	for _, conc := range concs {
		forms, err := cat.Forms(name, conc)
		if err != nil {
			return err
		}
		view := ConcentrationView{Concentration: conc}
		for _, form := range forms {
			rec, err := cat.Lookup(name, conc, form)
			if err != nil {
				return err
			}
			resp.Name = rec.Name
			view.Forms = append(view.Forms, FormView{
				Form:           rec.DeviceForm,
				UnitsPerDevice: rec.UnitsPerDevice,
				Boxed:          supply.IsBoxed(rec.DeviceForm),
			})
		}
		resp.Concentrations = append(resp.Concentrations, view)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CreateCalculation(c echo.Context) error {
	var req CalculationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.calc.Calculate(calc.Request{
		Category:      req.Category,
		Insulin:       req.Insulin,
		Concentration: req.Concentration,
		DeviceForm:    req.DeviceForm,
		Patient:       req.PatientInputs,
	})
	if err != nil {
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			h.log.Error().Err(err).Msg("calculation failed")
		}
		return c.JSON(status, body)
	}

	if result.NoPolicy {
		h.log.Debug().Str("insulin", result.Record.Name).Msg("no dosing policy for insulin")
	}
	return c.JSON(http.StatusOK, CalculationResponse{
		Calculation: result,
		Disclaimer:  rxtext.Disclaimer,
		GuideURL:    rxtext.GuideURL,
	})
}

// errorResponse maps calculation errors to HTTP statuses.
func errorResponse(err error) (int, ErrorResponse) {
	body := ErrorResponse{Error: err.Error()}
	var pe *calc.PhaseError
	if errors.As(err, &pe) {
		body.Phase = pe.Phase
		body.Error = pe.Err.Error()
	}

	var ve *dosing.ValidationError
	switch {
	case errors.As(err, &ve):
		body.Field = ve.Field
		return http.StatusBadRequest, body
	case errors.Is(err, catalog.ErrInvalidSelection):
		return http.StatusUnprocessableEntity, body
	default:
		return http.StatusInternalServerError, body
	}
}
