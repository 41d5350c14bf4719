package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/chrissnell/h2calc/internal/hydrogen"
	"github.com/chrissnell/h2calc/internal/weather"
	"github.com/chrissnell/h2calc/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// CityEntry is a city together with the index used by every per-city route
type CityEntry struct {
	Index int `json:"index"`
	weather.City
}

// ParametersResponse is the current session parameters. A nil source has not
// been initialized yet.
type ParametersResponse struct {
	Wind  *hydrogen.WindParams  `json:"wind"`
	Solar *hydrogen.SolarParams `json:"solar"`
}

// badRequestError marks malformed input from the client
type badRequestError struct {
	err error
}

func (e badRequestError) Error() string { return e.err.Error() }
func (e badRequestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return badRequestError{err: fmt.Errorf(format, args...)}
}

// GetHealth reports that the server is up
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	h.respond(w, req, map[string]any{
		"status": "ok",
		"cities": len(h.controller.calculator.Cities()),
		"years":  h.controller.calculator.Years(),
	})
}

// GetCities lists the loaded cities in index order
func (h *Handlers) GetCities(w http.ResponseWriter, req *http.Request) {
	cities := h.controller.calculator.Cities()
	out := make([]CityEntry, len(cities))
	for i, c := range cities {
		out[i] = CityEntry{Index: i, City: c}
	}
	h.respond(w, req, out)
}

// GetParameters returns the session's wind and solar parameters
func (h *Handlers) GetParameters(w http.ResponseWriter, req *http.Request) {
	h.respond(w, req, ParametersResponse{
		Wind:  h.controller.session.Wind(),
		Solar: h.controller.session.Solar(),
	})
}

// PutWindParameters replaces the session's turbine geometry
func (h *Handlers) PutWindParameters(w http.ResponseWriter, req *http.Request) {
	var p hydrogen.WindParams
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		h.fail(w, req, badRequest("decoding wind parameters: %v", err))
		return
	}
	if err := h.controller.session.SetWind(p); err != nil {
		h.fail(w, req, err)
		return
	}
	h.respond(w, req, p)
}

// PutSolarParameters replaces the session's panel parameters
func (h *Handlers) PutSolarParameters(w http.ResponseWriter, req *http.Request) {
	var p hydrogen.SolarParams
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		h.fail(w, req, badRequest("decoding solar parameters: %v", err))
		return
	}
	if err := h.controller.session.SetSolar(p); err != nil {
		h.fail(w, req, err)
		return
	}
	h.respond(w, req, p)
}

// GetWindSeries computes cumulative turbine energy and hydrogen for a city.
// The height and radius query parameters override the session values for
// this request only.
func (h *Handlers) GetWindSeries(w http.ResponseWriter, req *http.Request) {
	city, err := cityIndex(req)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	// Without session values both fields must be given; a partial override
	// leaves p nil and the request reports uninitialized parameters.
	p := h.controller.session.Wind()
	q := req.URL.Query()
	if p == nil && q.Has("height") && q.Has("radius") {
		p = &hydrogen.WindParams{}
	}
	if p != nil {
		if err := queryFloat(req, "height", &p.HeightM); err != nil {
			h.fail(w, req, err)
			return
		}
		if err := queryFloat(req, "radius", &p.RadiusM); err != nil {
			h.fail(w, req, err)
			return
		}
	}

	result, err := h.controller.calculator.ComputeWindSeries(city, p)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.respond(w, req, result)
}

// GetWindSpeeds returns the raw hourly wind speeds for every year
func (h *Handlers) GetWindSpeeds(w http.ResponseWriter, req *http.Request) {
	city, err := cityIndex(req)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	series, err := h.controller.calculator.WindSpeedSeries(city)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.respond(w, req, series)
}

// GetWindDistribution returns a five-number summary of each year's wind speeds
func (h *Handlers) GetWindDistribution(w http.ResponseWriter, req *http.Request) {
	city, err := cityIndex(req)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	dists, err := h.controller.calculator.WindSpeedDistributions(city)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.respond(w, req, dists)
}

// GetSolarSeries computes cumulative panel energy, hydrogen and the solstice
// profile for a city. The area and efficiency query parameters override the
// session values for this request only.
func (h *Handlers) GetSolarSeries(w http.ResponseWriter, req *http.Request) {
	city, err := cityIndex(req)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	p := h.controller.session.Solar()
	q := req.URL.Query()
	if p == nil && q.Has("area") && q.Has("efficiency") {
		p = &hydrogen.SolarParams{}
	}
	if p != nil {
		if err := queryFloat(req, "area", &p.PanelAreaM2); err != nil {
			h.fail(w, req, err)
			return
		}
		if err := queryFloat(req, "efficiency", &p.Efficiency); err != nil {
			h.fail(w, req, err)
			return
		}
	}

	result, err := h.controller.calculator.ComputeSolarSeries(city, p)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.respond(w, req, result)
}

// GetHumidityDensity returns a kernel density estimate of each year's humidity
func (h *Handlers) GetHumidityDensity(w http.ResponseWriter, req *http.Request) {
	city, err := cityIndex(req)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	densities, err := h.controller.calculator.HumidityDensities(city)
	if err != nil {
		h.fail(w, req, err)
		return
	}
	h.respond(w, req, densities)
}

func (h *Handlers) respond(w http.ResponseWriter, req *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, req, data); err != nil {
		h.controller.logger.Errorw("error encoding response", "path", req.URL.Path, "error", err)
	}
}

// fail maps a calculator error onto an HTTP status and writes it
func (h *Handlers) fail(w http.ResponseWriter, req *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.controller.logger.Errorw("request failed", "path", req.URL.Path, "error", err)
	}
	h.formatter.WriteError(w, req, status, err)
}

func statusFor(err error) int {
	var validationErrs validator.ValidationErrors
	var badReq badRequestError
	switch {
	case errors.Is(err, hydrogen.ErrCityIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, hydrogen.ErrUninitializedParameters):
		return http.StatusConflict
	case errors.As(err, &validationErrs), errors.As(err, &badReq):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func cityIndex(req *http.Request) (int, error) {
	raw := mux.Vars(req)["city"]
	idx, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("invalid city index %q", raw)
	}
	return idx, nil
}

// queryFloat overwrites dst when the named query parameter is present
func queryFloat(req *http.Request, name string, dst *float64) error {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return badRequest("invalid %s %q", name, raw)
	}
	*dst = v
	return nil
}
