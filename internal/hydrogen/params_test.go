package hydrogen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStartsUninitialized(t *testing.T) {
	s := NewSession()
	assert.Nil(t, s.Wind())
	assert.Nil(t, s.Solar())
}

func TestSessionApplyDefaultsOnce(t *testing.T) {
	s := NewSession()
	s.ApplyDefaults(DefaultWindParams(), DefaultSolarParams())

	require.NotNil(t, s.Wind())
	assert.Equal(t, DefaultWindParams(), *s.Wind())
	assert.Equal(t, DefaultSolarParams(), *s.Solar())

	require.NoError(t, s.SetWind(WindParams{HeightM: 100, RadiusM: 45}))
	s.ApplyDefaults(DefaultWindParams(), DefaultSolarParams())
	assert.Equal(t, WindParams{HeightM: 100, RadiusM: 45}, *s.Wind())
}

func TestSessionKeepsUserChoicesOverDefaults(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SetSolar(SolarParams{PanelAreaM2: 12, Efficiency: 0.22}))
	s.ApplyDefaults(DefaultWindParams(), DefaultSolarParams())

	assert.Equal(t, SolarParams{PanelAreaM2: 12, Efficiency: 0.22}, *s.Solar())
	assert.Equal(t, DefaultWindParams(), *s.Wind())
}

func TestSessionReturnsCopies(t *testing.T) {
	s := NewSession()
	s.ApplyDefaults(DefaultWindParams(), DefaultSolarParams())

	w := s.Wind()
	w.HeightM = 1
	assert.Equal(t, 80.0, s.Wind().HeightM)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name  string
		check func() error
		ok    bool
	}{
		{"default wind", DefaultWindParams().Validate, true},
		{"default solar", DefaultSolarParams().Validate, true},
		{"negative radius", WindParams{HeightM: 80, RadiusM: -1}.Validate, false},
		{"zero height", WindParams{HeightM: 0, RadiusM: 60}.Validate, false},
		{"efficiency over one", SolarParams{PanelAreaM2: 1, Efficiency: 20}.Validate, false},
		{"zero area", SolarParams{PanelAreaM2: 0, Efficiency: 0.2}.Validate, false},
		{"full efficiency", SolarParams{PanelAreaM2: 1, Efficiency: 1}.Validate, true},
		{"tallest hub", WindParams{HeightM: 1000, RadiusM: 500}.Validate, true},
		{"overflowing radius", WindParams{HeightM: 80, RadiusM: 1e200}.Validate, false},
		{"hub above limit", WindParams{HeightM: 1001, RadiusM: 60}.Validate, false},
		{"panel area above limit", SolarParams{PanelAreaM2: 1e9, Efficiency: 0.2}.Validate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	s := NewSession()
	assert.Error(t, s.SetWind(WindParams{}))
	assert.Nil(t, s.Wind())
}
