package hydrogen

import (
	"errors"
	"fmt"
)

var (
	// ErrUninitializedParameters is returned when a computation is requested
	// before generation parameters exist for its source.
	ErrUninitializedParameters = errors.New("generation parameters are not initialized")

	// ErrCityIndexOutOfRange is wrapped by CityIndexError
	ErrCityIndexOutOfRange = errors.New("city index out of range")
)

// CityIndexError reports a city index outside the loaded city table
type CityIndexError struct {
	Index int
	Count int
}

func (e *CityIndexError) Error() string {
	return fmt.Sprintf("city index %d out of range: %d cities loaded", e.Index, e.Count)
}

func (e *CityIndexError) Unwrap() error {
	return ErrCityIndexOutOfRange
}
