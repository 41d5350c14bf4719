package power

import "math"

// Constants
const (
	solarConstant   = 1353.0 // W/m² at the top of the atmosphere
	clearSkyFactor  = 1.2    // Empirical factor folding diffuse radiation into the direct term
	daysPerYear     = 365.0
	degreesPerHour  = 15.0 // Earth rotates 15° per hour
	solarNoonHour   = 12.0
	distanceFactor  = 0.033 // Amplitude of the Earth-Sun distance correction
	declinationAmp  = 0.409 // Peak solar declination (radians)
	declinationLead = 1.39  // Phase shift of the declination curve (radians)
)

// degToRad converts an angle from degrees to radians
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// radToDeg converts an angle from radians to degrees
func radToDeg(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// EarthSunDistanceFactor returns the inverse relative Earth-Sun distance for a day of year
func EarthSunDistanceFactor(dayOfYear int) float64 {
	return 1 + distanceFactor*math.Cos((2*math.Pi/daysPerYear)*float64(dayOfYear))
}

// Declination returns the solar declination in radians for a day of year
func Declination(dayOfYear int) float64 {
	return declinationAmp * math.Sin((2*math.Pi/daysPerYear)*float64(dayOfYear)-declinationLead)
}

// SunriseSunset returns sunrise and sunset as decimal local solar hours for the
// given latitude and day of year.
// Polar day yields (0, 24) and polar night yields (12, 12).
func SunriseSunset(latitudeDeg float64, dayOfYear int) (sunrise, sunset float64) {
	latRad := degToRad(latitudeDeg)
	delta := Declination(dayOfYear)

	// cos(H) = -tan(lat) * tan(declination), clamped for polar conditions
	cosH := -math.Sin(latRad) * math.Sin(delta) / (math.Cos(latRad) * math.Cos(delta))
	cosH = math.Max(-1, math.Min(1, cosH))

	halfDay := radToDeg(math.Acos(cosH)) / degreesPerHour
	return solarNoonHour - halfDay, solarNoonHour + halfDay
}

// SolarIrradiance returns the clear-sky irradiance in W/m² on a horizontal
// surface at the given latitude, day of year (1-366) and hour of day (0-23).
// It is zero outside the open sunrise-sunset window.
func SolarIrradiance(latitudeDeg float64, dayOfYear, hourOfDay int) float64 {
	hour := float64(hourOfDay)
	sunrise, sunset := SunriseSunset(latitudeDeg, dayOfYear)
	if hour <= sunrise || hour >= sunset {
		return 0
	}

	latRad := degToRad(latitudeDeg)
	delta := Declination(dayOfYear)
	omega := degToRad(degreesPerHour * (hour - solarNoonHour))

	cosZenith := math.Sin(latRad)*math.Sin(delta) + math.Cos(latRad)*math.Cos(delta)*math.Cos(omega)
	return clearSkyFactor * solarConstant * EarthSunDistanceFactor(dayOfYear) * cosZenith
}

// WeatherDerating is the Kirmani (2015) correlation for the effect of wind,
// temperature and humidity on delivered irradiance. The factor is not
// clamped and can leave [0, 1] for extreme inputs.
func WeatherDerating(windSpeedKmh, tempC, relHumidityPct float64) float64 {
	return 1 - 0.02914*windSpeedKmh - 0.0076*tempC - 0.00705*relHumidityPct
}

// MSToKmh converts a speed from m/s to km/h
func MSToKmh(v float64) float64 {
	return v * 3.6
}
