package engine

import (
	"errors"
	"math"

	"go.uber.org/zap"
)

// ErrCalibration indicates a turbidity calibration that cannot converge,
// usually because the measured flux is non-positive or the sun is below
// the horizon.
var ErrCalibration = errors.New("engine: turbidity calibration failed")

// solarConstant is the extraterrestrial broadband irradiance in W/m^2.
const solarConstant = 1367.0

// Spectral partitions of broadband shortwave irradiance.
const (
	fracPAR = 0.45
	fracNIR = 0.52
)

// SolarPosition models the sun's apparent position and clear-sky radiation
// for a geographic site, reading date and time from its owning Context.
// All angles at this level are radians.
type SolarPosition struct {
	ctx       *Context
	utcOffset float64 // hours ahead of UTC, east positive
	lat       float64 // radians, north positive
	lon       float64 // radians, east positive

	// Optional caller override of the computed sun direction.
	overridden   bool
	overrideElev float64
	overrideAz   float64
}

// NewSolarPosition creates a calculator for the given site attached to ctx.
// Latitude and longitude are degrees; utcOffset is hours ahead of UTC.
func NewSolarPosition(ctx *Context, utcOffset, latitudeDeg, longitudeDeg float64) *SolarPosition {
	Logger().Debug("solar position created",
		zap.Float64("latitude", latitudeDeg),
		zap.Float64("longitude", longitudeDeg),
		zap.Float64("utc_offset", utcOffset))
	return &SolarPosition{
		ctx:       ctx,
		utcOffset: utcOffset,
		lat:       latitudeDeg * math.Pi / 180,
		lon:       longitudeDeg * math.Pi / 180,
	}
}

// SetDirection overrides the computed sun direction with explicit elevation
// and azimuth angles (radians). Subsequent angle and flux queries use the
// override until the calculator is destroyed.
func (s *SolarPosition) SetDirection(elevation, azimuth float64) {
	s.overridden = true
	s.overrideElev = elevation
	s.overrideAz = azimuth
}

// fractionalYear returns the Spencer fractional-year angle for the
// context's date and time.
func (s *SolarPosition) fractionalYear() float64 {
	doy := float64(s.ctx.dayOfYear())
	t := s.ctx.Time()
	hour := float64(t.Hour) + float64(t.Minute)/60 + float64(t.Second)/3600
	return 2 * math.Pi * (doy - 1 + (hour-12)/24) / 365
}

// declination returns the solar declination (Spencer series).
func (s *SolarPosition) declination() float64 {
	g := s.fractionalYear()
	return 0.006918 -
		0.399912*math.Cos(g) + 0.070257*math.Sin(g) -
		0.006758*math.Cos(2*g) + 0.000907*math.Sin(2*g) -
		0.002697*math.Cos(3*g) + 0.00148*math.Sin(3*g)
}

// equationOfTime returns the equation of time in minutes.
func (s *SolarPosition) equationOfTime() float64 {
	g := s.fractionalYear()
	return 229.18 * (0.000075 +
		0.001868*math.Cos(g) - 0.032077*math.Sin(g) -
		0.014615*math.Cos(2*g) - 0.040849*math.Sin(2*g))
}

// solarTime returns true solar time in hours for the context's clock time.
func (s *SolarPosition) solarTime() float64 {
	t := s.ctx.Time()
	clock := float64(t.Hour) + float64(t.Minute)/60 + float64(t.Second)/3600
	lonDeg := s.lon * 180 / math.Pi
	meridian := 15 * s.utcOffset
	return clock + s.equationOfTime()/60 + 4*(lonDeg-meridian)/60
}

// hourAngle returns the solar hour angle in radians, negative before
// solar noon.
func (s *SolarPosition) hourAngle() float64 {
	return (s.solarTime() - 12) * 15 * math.Pi / 180
}

// Elevation returns the sun elevation angle above the horizon in radians.
// Negative values mean the sun is below the horizon.
func (s *SolarPosition) Elevation() float64 {
	if s.overridden {
		return s.overrideElev
	}
	d := s.declination()
	h := s.hourAngle()
	sinEl := math.Sin(d)*math.Sin(s.lat) + math.Cos(d)*math.Cos(s.lat)*math.Cos(h)
	return math.Asin(clamp(sinEl, -1, 1))
}

// Zenith returns the sun zenith angle in radians. Zenith and elevation sum
// to pi/2 by construction.
func (s *SolarPosition) Zenith() float64 {
	return math.Pi/2 - s.Elevation()
}

// Azimuth returns the sun azimuth in radians, measured clockwise from
// north in [0, 2*pi).
func (s *SolarPosition) Azimuth() float64 {
	if s.overridden {
		return s.overrideAz
	}
	el := s.Elevation()
	d := s.declination()
	cosAz := (math.Sin(d) - math.Sin(el)*math.Sin(s.lat)) /
		(math.Cos(el) * math.Cos(s.lat))
	az := math.Acos(clamp(cosAz, -1, 1))
	if s.hourAngle() > 0 {
		az = 2*math.Pi - az
	}
	return az
}

// Direction returns the unit vector toward the sun in the engine's world
// frame: +x east, +y north, +z up.
func (s *SolarPosition) Direction() (x, y, z float64) {
	el := s.Elevation()
	az := s.Azimuth()
	return math.Cos(el) * math.Sin(az), math.Cos(el) * math.Cos(az), math.Sin(el)
}

// Sunrise returns the local clock time of sunrise on the context's date.
func (s *SolarPosition) Sunrise() (Time, error) {
	return s.horizonCrossing(-1)
}

// Sunset returns the local clock time of sunset on the context's date.
func (s *SolarPosition) Sunset() (Time, error) {
	return s.horizonCrossing(+1)
}

// horizonCrossing computes the solar hour of a horizon crossing
// (sign -1 sunrise, +1 sunset) and converts it to clock time.
func (s *SolarPosition) horizonCrossing(sign float64) (Time, error) {
	d := s.declination()
	cosH := -math.Tan(s.lat) * math.Tan(d)
	if cosH < -1 || cosH > 1 {
		return Time{}, ErrNoSunriseSunset
	}
	halfDay := math.Acos(cosH) * 180 / math.Pi / 15 // hours

	lonDeg := s.lon * 180 / math.Pi
	meridian := 15 * s.utcOffset
	clock := 12 + sign*halfDay - s.equationOfTime()/60 - 4*(lonDeg-meridian)/60

	// Normalize into [0, 24).
	clock = math.Mod(math.Mod(clock, 24)+24, 24)

	hh := int(clock)
	mm := int((clock - float64(hh)) * 60)
	ss := int(math.Round((clock-float64(hh))*3600)) % 60
	return Time{Hour: hh, Minute: mm, Second: ss}, nil
}

// Atmosphere bundles the inputs of the clear-sky flux model. Pressure is
// Pa, temperature Kelvin, humidity a fraction in [0,1], turbidity the
// dimensionless aerosol optical depth scaling.
type Atmosphere struct {
	Pressure    float64
	Temperature float64
	Humidity    float64
	Turbidity   float64
}

// StandardAtmosphere is sea-level pressure, 15 C, 50% humidity, and a
// moderately clear sky.
var StandardAtmosphere = Atmosphere{
	Pressure:    101325,
	Temperature: 288.15,
	Humidity:    0.5,
	Turbidity:   2,
}

// Flux returns the global horizontal shortwave irradiance in W/m^2 under a
// clear sky. Returns 0 when the sun is at or below the horizon; a zero
// result is a legitimate value, not a failure.
func (s *SolarPosition) Flux(atm Atmosphere) float64 {
	direct, diffuse := s.fluxComponents(atm)
	return direct + diffuse
}

// FluxPAR returns the photosynthetically active portion of Flux.
func (s *SolarPosition) FluxPAR(atm Atmosphere) float64 {
	return fracPAR * s.Flux(atm)
}

// FluxNIR returns the near-infrared portion of Flux.
func (s *SolarPosition) FluxNIR(atm Atmosphere) float64 {
	return fracNIR * s.Flux(atm)
}

// DiffuseFraction returns the diffuse share of global irradiance in [0,1].
// Returns 0 when the sun is below the horizon.
func (s *SolarPosition) DiffuseFraction(atm Atmosphere) float64 {
	direct, diffuse := s.fluxComponents(atm)
	total := direct + diffuse
	if total <= 0 {
		return 0
	}
	return diffuse / total
}

func (s *SolarPosition) fluxComponents(atm Atmosphere) (direct, diffuse float64) {
	cosZ := math.Cos(s.Zenith())
	if cosZ <= 0 {
		return 0, 0
	}

	zDeg := s.Zenith() * 180 / math.Pi
	// Kasten-Young relative air mass, pressure corrected for the direct beam.
	m := 1 / (cosZ + 0.50572*math.Pow(96.07995-zDeg, -1.6364))
	mp := m * atm.Pressure / 101325

	// Precipitable water (cm) from surface humidity and temperature.
	es := 611 * math.Exp(17.27*(atm.Temperature-273.15)/(atm.Temperature-35.85))
	w := 0.493 * atm.Humidity * es / atm.Temperature

	// Broadband transmittances: molecular scattering and ozone, aerosol
	// extinction scaled by turbidity, and water vapor absorption.
	tauR := math.Exp(-0.09 * mp)
	tauA := math.Exp(-0.045 * atm.Turbidity * m)
	tauW := 1 - 0.077*math.Pow(math.Max(w*m, 0), 0.3)

	e0 := 1 + 0.033*math.Cos(2*math.Pi*float64(s.ctx.dayOfYear())/365)
	dni := solarConstant * e0 * tauR * tauA * tauW

	direct = dni * cosZ
	// Half of the scattered beam reaches the ground as diffuse sky light.
	diffuse = 0.5 * solarConstant * e0 * cosZ * tauW * (1 - tauR*tauA)
	return direct, diffuse
}

// CalibrateTurbidity inverts the flux model against a measured global
// horizontal flux, assuming a standard atmosphere otherwise. The returned
// turbidity reproduces the measurement at the context's current sun
// position.
func (s *SolarPosition) CalibrateTurbidity(measuredFlux float64) (float64, error) {
	if measuredFlux <= 0 || math.Cos(s.Zenith()) <= 0 {
		return 0, ErrCalibration
	}

	atm := StandardAtmosphere
	lo, hi := 0.0, 40.0

	atm.Turbidity = lo
	if s.Flux(atm) < measuredFlux {
		// Clearer than a zero-aerosol sky: measurement inconsistent.
		return 0, ErrCalibration
	}

	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		atm.Turbidity = mid
		if s.Flux(atm) > measuredFlux {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
