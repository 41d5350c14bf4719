package hydrogen

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// WindParams describes the modelled wind turbine
type WindParams struct {
	HeightM float64 `json:"height" yaml:"height" validate:"gt=0,lte=1000"`
	RadiusM float64 `json:"radius" yaml:"radius" validate:"gt=0,lte=500"`
}

// SolarParams describes the modelled photovoltaic panel
type SolarParams struct {
	PanelAreaM2 float64 `json:"panel_area" yaml:"panel_area" validate:"gt=0,lte=100000000"`
	Efficiency  float64 `json:"efficiency" yaml:"efficiency" validate:"gt=0,lte=1"`
}

// DefaultWindParams returns the 2 MW class turbine used when nothing is configured
func DefaultWindParams() WindParams {
	return WindParams{
		HeightM: 80, // Typical hub height of a 2 MW turbine
		RadiusM: 60,
	}
}

// DefaultSolarParams returns a single square metre panel at 20% efficiency
func DefaultSolarParams() SolarParams {
	return SolarParams{
		PanelAreaM2: 1,
		Efficiency:  0.20,
	}
}

// Validate checks the turbine geometry
func (p WindParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid wind parameters: %w", err)
	}
	return nil
}

// Validate checks the panel parameters
func (p SolarParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid solar parameters: %w", err)
	}
	return nil
}

// Session holds the generation parameters chosen by a user. Either source may
// be unset until ApplyDefaults runs.
type Session struct {
	mu       sync.RWMutex
	wind     *WindParams
	solar    *SolarParams
	defaults sync.Once
}

// NewSession returns a session with no parameters set
func NewSession() *Session {
	return &Session{}
}

// ApplyDefaults fills in unset parameters. Only the first call has any
// effect; later calls never overwrite parameters chosen by the user.
func (s *Session) ApplyDefaults(wind WindParams, solar SolarParams) {
	s.defaults.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.wind == nil {
			s.wind = &wind
		}
		if s.solar == nil {
			s.solar = &solar
		}
	})
}

// Wind returns a copy of the wind parameters, or nil if unset
func (s *Session) Wind() *WindParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wind == nil {
		return nil
	}
	p := *s.wind
	return &p
}

// Solar returns a copy of the solar parameters, or nil if unset
func (s *Session) Solar() *SolarParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.solar == nil {
		return nil
	}
	p := *s.solar
	return &p
}

// SetWind replaces the wind parameters after validating them
func (s *Session) SetWind(p WindParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.wind = &p
	s.mu.Unlock()
	return nil
}

// SetSolar replaces the solar parameters after validating them
func (s *Session) SetSolar(p SolarParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.solar = &p
	s.mu.Unlock()
	return nil
}
