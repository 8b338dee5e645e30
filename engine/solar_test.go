package engine

import (
	"math"
	"testing"
)

func davisSite(t *testing.T) (*Context, *SolarPosition) {
	t.Helper()
	ctx := NewContext()
	sp := NewSolarPosition(ctx, -8, 38.5, -121.7)
	return ctx, sp
}

func TestZenithElevationComplementary(t *testing.T) {
	ctx, sp := davisSite(t)

	times := []Time{
		{Hour: 6}, {Hour: 9, Minute: 30}, {Hour: 12}, {Hour: 15, Second: 30}, {Hour: 21},
	}
	for _, tm := range times {
		ctx.SetTime(tm)
		sum := sp.Zenith() + sp.Elevation()
		if math.Abs(sum-math.Pi/2) > 1e-12 {
			t.Errorf("at %02d:%02d zenith+elevation = %v, want pi/2", tm.Hour, tm.Minute, sum)
		}
	}
}

func TestMiddaySunAboveHorizon(t *testing.T) {
	ctx, sp := davisSite(t)
	ctx.SetDate(Date{Day: 21, Month: 6, Year: 2023})
	ctx.SetTime(Time{Hour: 12})

	el := sp.Elevation()
	if el < 60*math.Pi/180 || el > 80*math.Pi/180 {
		t.Errorf("solstice noon elevation = %v deg, want ~74", el*180/math.Pi)
	}

	// Around solar noon the sun is due south from a northern site.
	az := sp.Azimuth() * 180 / math.Pi
	if az < 90 || az > 270 {
		t.Errorf("noon azimuth = %v deg, want southern half", az)
	}
}

func TestDirectionUnitVector(t *testing.T) {
	ctx, sp := davisSite(t)
	ctx.SetTime(Time{Hour: 10, Minute: 15})

	x, y, z := sp.Direction()
	norm := math.Sqrt(x*x + y*y + z*z)
	if math.Abs(norm-1) > 1e-12 {
		t.Errorf("|direction| = %v, want 1", norm)
	}
	if z <= 0 {
		t.Errorf("mid-morning sun direction z = %v, want > 0", z)
	}
}

func TestSetDirectionOverride(t *testing.T) {
	_, sp := davisSite(t)

	sp.SetDirection(0.5, 1.25)
	if sp.Elevation() != 0.5 || sp.Azimuth() != 1.25 {
		t.Error("override not reflected in angle queries")
	}
	if math.Abs(sp.Zenith()-(math.Pi/2-0.5)) > 1e-12 {
		t.Error("zenith must track overridden elevation")
	}
}

func TestSunriseBeforeSunset(t *testing.T) {
	ctx, sp := davisSite(t)
	ctx.SetDate(Date{Day: 21, Month: 6, Year: 2023})

	rise, err := sp.Sunrise()
	if err != nil {
		t.Fatalf("Sunrise: %v", err)
	}
	set, err := sp.Sunset()
	if err != nil {
		t.Fatalf("Sunset: %v", err)
	}

	if rise.Hour < 4 || rise.Hour > 7 {
		t.Errorf("solstice sunrise hour = %d, want early morning", rise.Hour)
	}
	if set.Hour < 19 || set.Hour > 21 {
		t.Errorf("solstice sunset hour = %d, want evening", set.Hour)
	}
}

func TestPolarDayHasNoSunrise(t *testing.T) {
	ctx := NewContext()
	ctx.SetDate(Date{Day: 21, Month: 6, Year: 2023})
	sp := NewSolarPosition(ctx, 0, 80, 0)

	if _, err := sp.Sunrise(); err != ErrNoSunriseSunset {
		t.Errorf("Sunrise at 80N in June: err = %v, want ErrNoSunriseSunset", err)
	}
	if _, err := sp.Sunset(); err != ErrNoSunriseSunset {
		t.Errorf("Sunset at 80N in June: err = %v, want ErrNoSunriseSunset", err)
	}
}

func TestFluxDayNight(t *testing.T) {
	ctx, sp := davisSite(t)

	ctx.SetTime(Time{Hour: 12})
	day := sp.Flux(StandardAtmosphere)
	if day < 400 || day > 1200 {
		t.Errorf("clear-sky noon flux = %v W/m2, want physical range", day)
	}

	ctx.SetTime(Time{Hour: 1})
	if night := sp.Flux(StandardAtmosphere); night != 0 {
		t.Errorf("night flux = %v, want 0", night)
	}
}

func TestFluxPartitions(t *testing.T) {
	ctx, sp := davisSite(t)
	ctx.SetTime(Time{Hour: 12})

	total := sp.Flux(StandardAtmosphere)
	par := sp.FluxPAR(StandardAtmosphere)
	nir := sp.FluxNIR(StandardAtmosphere)

	if par <= 0 || par >= total {
		t.Errorf("PAR = %v of total %v", par, total)
	}
	if nir <= 0 || nir >= total {
		t.Errorf("NIR = %v of total %v", nir, total)
	}
}

func TestDiffuseFractionBounds(t *testing.T) {
	ctx, sp := davisSite(t)
	ctx.SetTime(Time{Hour: 12})

	clear := StandardAtmosphere
	hazy := StandardAtmosphere
	hazy.Turbidity = 8

	fClear := sp.DiffuseFraction(clear)
	fHazy := sp.DiffuseFraction(hazy)
	if fClear <= 0 || fClear >= 1 || fHazy <= 0 || fHazy >= 1 {
		t.Fatalf("diffuse fractions out of (0,1): %v, %v", fClear, fHazy)
	}
	if fHazy <= fClear {
		t.Errorf("hazier sky should be more diffuse: %v vs %v", fHazy, fClear)
	}
}

func TestCalibrateTurbidityRoundTrip(t *testing.T) {
	ctx, sp := davisSite(t)
	ctx.SetTime(Time{Hour: 12})

	atm := StandardAtmosphere
	atm.Turbidity = 3
	measured := sp.Flux(atm)

	got, err := sp.CalibrateTurbidity(measured)
	if err != nil {
		t.Fatalf("CalibrateTurbidity: %v", err)
	}
	if math.Abs(got-3) > 1e-3 {
		t.Errorf("recovered turbidity = %v, want 3", got)
	}
}

func TestCalibrateTurbidityRejectsNight(t *testing.T) {
	ctx, sp := davisSite(t)
	ctx.SetTime(Time{Hour: 2})

	if _, err := sp.CalibrateTurbidity(500); err != ErrCalibration {
		t.Errorf("night calibration err = %v, want ErrCalibration", err)
	}
}
