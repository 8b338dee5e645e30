package heliobridge

import (
	"math"

	"github.com/heliosim/helio-bridge/engine"
	"github.com/heliosim/helio-bridge/errors"
	"github.com/heliosim/helio-bridge/resource"
)

const degPerRad = 180 / math.Pi

// solarOf resolves a solar calculator handle inside the invoke stage.
func solarOf(e *Env, op string, h Handle) (*engine.SolarPosition, error) {
	s, ok := resource.Of[*engine.SolarPosition](e.bridge.table, h, resource.KindSolarPosition)
	if !ok {
		return nil, errors.NullHandle(op, "solar")
	}
	return s, nil
}

// CreateSolarPosition allocates a solar position calculator bound to a
// context. utcOffset is hours ahead of UTC; latitude and longitude are
// degrees. Sentinel: NullHandle.
func (e *Env) CreateSolarPosition(ctx Handle, utcOffset, latitude, longitude float64) Handle {
	const op = "CreateSolarPosition"
	checks := []check{
		e.checkHandle(op, "context", ctx, resource.KindContext),
		checkRange(op, "utcOffset", utcOffset, -12, 12),
		checkRange(op, "latitude", latitude, -90, 90),
		checkRange(op, "longitude", longitude, -180, 180),
	}
	return run(e, op, NullHandle, checks, func() (Handle, error) {
		c, err := ctxOf(e, op, ctx)
		if err != nil {
			return NullHandle, err
		}
		sp := engine.NewSolarPosition(c, utcOffset, latitude, longitude)
		return e.bridge.table.Insert(resource.KindSolarPosition, sp), nil
	})
}

// DestroySolarPosition releases a solar position calculator.
func (e *Env) DestroySolarPosition(h Handle) {
	e.destroy("DestroySolarPosition", h, resource.KindSolarPosition)
}

// SunElevation returns the sun elevation angle in degrees; negative below
// the horizon. Sentinel: 0 (ambiguous with the sun exactly on the horizon
// — check the error record).
func (e *Env) SunElevation(h Handle) float64 {
	const op = "SunElevation"
	checks := []check{e.checkHandle(op, "solar", h, resource.KindSolarPosition)}
	return run(e, op, 0, checks, func() (float64, error) {
		s, err := solarOf(e, op, h)
		if err != nil {
			return 0, err
		}
		return s.Elevation() * degPerRad, nil
	})
}

// SunZenith returns the sun zenith angle in degrees. Sentinel: 0.
func (e *Env) SunZenith(h Handle) float64 {
	const op = "SunZenith"
	checks := []check{e.checkHandle(op, "solar", h, resource.KindSolarPosition)}
	return run(e, op, 0, checks, func() (float64, error) {
		s, err := solarOf(e, op, h)
		if err != nil {
			return 0, err
		}
		return s.Zenith() * degPerRad, nil
	})
}

// SunAzimuth returns the sun azimuth in degrees clockwise from north.
// Sentinel: 0.
func (e *Env) SunAzimuth(h Handle) float64 {
	const op = "SunAzimuth"
	checks := []check{e.checkHandle(op, "solar", h, resource.KindSolarPosition)}
	return run(e, op, 0, checks, func() (float64, error) {
		s, err := solarOf(e, op, h)
		if err != nil {
			return 0, err
		}
		return s.Azimuth() * degPerRad, nil
	})
}

// SunDirection writes the unit vector toward the sun (+x east, +y north,
// +z up) through out. Sentinel: false.
func (e *Env) SunDirection(h Handle, out *Vec3) bool {
	const op = "SunDirection"
	checks := []check{
		e.checkHandle(op, "solar", h, resource.KindSolarPosition),
		checkOut(op, "out", out),
	}
	return runVoid(e, op, checks, func() error {
		s, err := solarOf(e, op, h)
		if err != nil {
			return err
		}
		out.X, out.Y, out.Z = s.Direction()
		return nil
	})
}

// SetSunDirection overrides the computed sun direction with explicit
// elevation and azimuth angles in degrees. Sentinel: false.
func (e *Env) SetSunDirection(h Handle, elevation, azimuth float64) bool {
	const op = "SetSunDirection"
	checks := []check{
		e.checkHandle(op, "solar", h, resource.KindSolarPosition),
		checkRange(op, "elevation", elevation, -90, 90),
		checkRange(op, "azimuth", azimuth, 0, 360),
	}
	return runVoid(e, op, checks, func() error {
		s, err := solarOf(e, op, h)
		if err != nil {
			return err
		}
		s.SetDirection(elevation/degPerRad, azimuth/degPerRad)
		return nil
	})
}

// SunriseTime writes the local clock time of sunrise through out.
// Fails with RuntimeFailure during polar day or night. Sentinel: false.
func (e *Env) SunriseTime(h Handle, out *ClockTime) bool {
	const op = "SunriseTime"
	checks := []check{
		e.checkHandle(op, "solar", h, resource.KindSolarPosition),
		checkOut(op, "out", out),
	}
	return runVoid(e, op, checks, func() error {
		s, err := solarOf(e, op, h)
		if err != nil {
			return err
		}
		t, err := s.Sunrise()
		if err != nil {
			return err
		}
		out.Hour, out.Minute, out.Second = t.Hour, t.Minute, t.Second
		return nil
	})
}

// SunsetTime writes the local clock time of sunset through out.
// Fails with RuntimeFailure during polar day or night. Sentinel: false.
func (e *Env) SunsetTime(h Handle, out *ClockTime) bool {
	const op = "SunsetTime"
	checks := []check{
		e.checkHandle(op, "solar", h, resource.KindSolarPosition),
		checkOut(op, "out", out),
	}
	return runVoid(e, op, checks, func() error {
		s, err := solarOf(e, op, h)
		if err != nil {
			return err
		}
		t, err := s.Sunset()
		if err != nil {
			return err
		}
		out.Hour, out.Minute, out.Second = t.Hour, t.Minute, t.Second
		return nil
	})
}

// flux dispatches one of the four atmosphere-parameterized flux queries.
func (e *Env) flux(op string, h Handle, pressure, temperature, humidity, turbidity float64,
	f func(*engine.SolarPosition, engine.Atmosphere) float64) float64 {

	checks := append([]check{
		e.checkHandle(op, "solar", h, resource.KindSolarPosition),
	}, atmosphereChecks(op, pressure, temperature, humidity, turbidity)...)

	return run(e, op, 0, checks, func() (float64, error) {
		s, err := solarOf(e, op, h)
		if err != nil {
			return 0, err
		}
		atm := engine.Atmosphere{
			Pressure:    pressure,
			Temperature: temperature,
			Humidity:    humidity,
			Turbidity:   turbidity,
		}
		return f(s, atm), nil
	})
}

// SolarFlux returns the clear-sky global horizontal shortwave irradiance
// in W/m^2. Pressure is Pa, temperature Kelvin, humidity in [0,1],
// turbidity >= 0. Sentinel: 0, which coincides with the legitimate
// night-time result — check the error record.
func (e *Env) SolarFlux(h Handle, pressure, temperature, humidity, turbidity float64) float64 {
	return e.flux("SolarFlux", h, pressure, temperature, humidity, turbidity,
		(*engine.SolarPosition).Flux)
}

// SolarFluxPAR returns the photosynthetically active portion of SolarFlux.
// Sentinel: 0.
func (e *Env) SolarFluxPAR(h Handle, pressure, temperature, humidity, turbidity float64) float64 {
	return e.flux("SolarFluxPAR", h, pressure, temperature, humidity, turbidity,
		(*engine.SolarPosition).FluxPAR)
}

// SolarFluxNIR returns the near-infrared portion of SolarFlux. Sentinel: 0.
func (e *Env) SolarFluxNIR(h Handle, pressure, temperature, humidity, turbidity float64) float64 {
	return e.flux("SolarFluxNIR", h, pressure, temperature, humidity, turbidity,
		(*engine.SolarPosition).FluxNIR)
}

// DiffuseFraction returns the diffuse share of global irradiance in [0,1].
// Sentinel: 0.
func (e *Env) DiffuseFraction(h Handle, pressure, temperature, humidity, turbidity float64) float64 {
	return e.flux("DiffuseFraction", h, pressure, temperature, humidity, turbidity,
		(*engine.SolarPosition).DiffuseFraction)
}

// CalibrateTurbidity back-solves the turbidity that reproduces a measured
// global horizontal flux under an otherwise standard atmosphere.
// Sentinel: 0.
func (e *Env) CalibrateTurbidity(h Handle, measuredFlux float64) float64 {
	const op = "CalibrateTurbidity"
	checks := []check{
		e.checkHandle(op, "solar", h, resource.KindSolarPosition),
		checkMin(op, "measuredFlux", measuredFlux, 0),
	}
	return run(e, op, 0, checks, func() (float64, error) {
		s, err := solarOf(e, op, h)
		if err != nil {
			return 0, err
		}
		return s.CalibrateTurbidity(measuredFlux)
	})
}
