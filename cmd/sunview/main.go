package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	heliobridge "github.com/heliosim/helio-bridge"
)

func main() {
	var (
		lat         = flag.Float64("lat", 38.5, "Latitude in degrees (positive north)")
		lon         = flag.Float64("lon", -121.7, "Longitude in degrees (positive east)")
		utc         = flag.Float64("utc", -8, "UTC offset in hours (positive east)")
		day         = flag.Int("day", 21, "Day of month")
		month       = flag.Int("month", 6, "Month (1-12)")
		year        = flag.Int("year", 2023, "Year")
		hour        = flag.Int("hour", 12, "Local standard hour (0-23)")
		turbidity   = flag.Float64("turbidity", 2, "Atmospheric turbidity")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*lat, *lon, *utc, *day, *month, *year, *hour, *turbidity); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(lat, lon, utc float64, day, month, year, hour int, turbidity float64) error {
	b := heliobridge.New()
	defer b.Close()
	env := b.Env()

	report, err := solarReport(env, lat, lon, utc, day, month, year, hour, turbidity)
	if err != nil {
		return err
	}
	fmt.Print(report)
	return nil
}

// solarReport drives the boundary surface for one site and date and
// renders a plain-text summary. Shared by the CLI and the TUI.
func solarReport(env *heliobridge.Env, lat, lon, utc float64, day, month, year, hour int, turbidity float64) (string, error) {
	ctx := env.CreateContext()
	if ctx == heliobridge.NullHandle {
		return "", boundaryErr(env, "create context")
	}
	defer env.DestroyContext(ctx)

	if !env.SetDate(ctx, day, month, year) {
		return "", boundaryErr(env, "set date")
	}
	if !env.SetTime(ctx, hour, 0, 0) {
		return "", boundaryErr(env, "set time")
	}

	sun := env.CreateSolarPosition(ctx, utc, lat, lon)
	if sun == heliobridge.NullHandle {
		return "", boundaryErr(env, "create solar position")
	}
	defer env.DestroySolarPosition(sun)

	out := fmt.Sprintf("Site %.3f°, %.3f° (UTC%+g)   %04d-%02d-%02d\n\n",
		lat, lon, utc, year, month, day)

	var rise, set heliobridge.ClockTime
	if env.SunriseTime(sun, &rise) && env.SunsetTime(sun, &set) {
		out += fmt.Sprintf("Sunrise  %02d:%02d   Sunset  %02d:%02d\n\n",
			rise.Hour, rise.Minute, set.Hour, set.Minute)
	} else {
		_, msg := env.LastError()
		out += fmt.Sprintf("Sunrise/sunset: %s\n\n", msg)
		env.ClearError()
	}

	el := env.SunElevation(sun)
	az := env.SunAzimuth(sun)
	if env.HasError() {
		return "", boundaryErr(env, "sun angles")
	}
	out += fmt.Sprintf("At %02d:00  elevation %6.2f°  azimuth %6.2f°\n\n", hour, el, az)

	out += "Hour   Flux    PAR    NIR   Diffuse\n"
	for h := 0; h < 24; h++ {
		if !env.SetTime(ctx, h, 0, 0) {
			return "", boundaryErr(env, "set time")
		}
		flux := env.SolarFlux(sun, 101325, 288.15, 0.5, turbidity)
		if env.HasError() {
			return "", boundaryErr(env, "solar flux")
		}
		if flux == 0 {
			continue
		}
		par := env.SolarFluxPAR(sun, 101325, 288.15, 0.5, turbidity)
		nir := env.SolarFluxNIR(sun, 101325, 288.15, 0.5, turbidity)
		df := env.DiffuseFraction(sun, 101325, 288.15, 0.5, turbidity)
		out += fmt.Sprintf("%02d:00 %6.1f %6.1f %6.1f   %5.3f\n", h, flux, par, nir, df)
	}

	return out, nil
}

func boundaryErr(env *heliobridge.Env, what string) error {
	kind, msg := env.LastError()
	return fmt.Errorf("%s: %s (%s)", what, msg, kind)
}
