package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/thurmanmarka/sundir"
	sundirhttp "github.com/thurmanmarka/sundir/internal/http"
	"github.com/thurmanmarka/sundir/internal/report"
)

// Demonstration observer: Denver, CO.
const (
	defaultLat = 39.739212
	defaultLon = -104.990302
)

func main() {
	logger := newLogger(os.Stderr, false)

	// - If no args or first arg starts with "-", run position mode.
	// - Otherwise treat the first arg as a subcommand.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runPosition(logger, os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "position":
		runPosition(logger, os.Args[2:])
	case "track":
		runTrack(logger, os.Args[2:])
	case "cross":
		runCross(logger, os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `sundir – where is the Sun?

Usage:
  sundir [flags]              # Sun position now (or at -time)
  sundir track [flags]        # positions over a time window
  sundir cross [flags]        # next time the Sun crosses an altitude
  sundir serve [flags]        # HTTP API

Position flags:
  -lat float
        latitude in degrees (north positive) (default %v)
  -lon float
        longitude in degrees (east positive, west negative) (default %v)
  -time string
        instant in RFC3339 (optional, defaults to now)
  -ra-mode string
        right ascension form: quadrant or principal (default "quadrant")
  -json
        output result as JSON

For the other subcommands:
  sundir <subcommand> -h
`, defaultLat, defaultLon)
}

func newLogger(w *os.File, jsonFormat bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel(os.Getenv("SUNDIR_LOG_LEVEL"))}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fatal(logger *slog.Logger, msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}

// observerFlags registers the flags shared by every computing subcommand.
type observerFlags struct {
	lat, lon *float64
	raMode   *string
}

func addObserverFlags(fs *flag.FlagSet) observerFlags {
	return observerFlags{
		lat:    fs.Float64("lat", defaultLat, "latitude in degrees (north positive)"),
		lon:    fs.Float64("lon", defaultLon, "longitude in degrees (east positive, west negative)"),
		raMode: fs.String("ra-mode", "quadrant", "right ascension form: quadrant or principal"),
	}
}

func (f observerFlags) resolve(logger *slog.Logger) (sundir.Coordinates, sundir.Options) {
	loc := sundir.Coordinates{Lat: *f.lat, Lon: *f.lon}
	if err := loc.Validate(); err != nil {
		fatal(logger, "invalid location", "error", err)
	}
	mode, err := sundir.ParseRAMode(*f.raMode)
	if err != nil {
		fatal(logger, "invalid -ra-mode", "error", err)
	}
	if mode == sundir.RAPrincipal {
		logger.Warn("principal RA mode reproduces a known quadrant error; results are wrong for about half the year")
	}
	return loc, sundir.Options{RAMode: mode}
}

// parseTime accepts RFC3339 or a couple of shorter forms in UTC.
func parseTime(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	var parseErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, parseErr
}

// ---------------------
// Position (default) mode
// ---------------------

func runPosition(logger *slog.Logger, args []string) {
	fs := flag.NewFlagSet("sundir", flag.ExitOnError)
	obs := addObserverFlags(fs)
	timeStr := fs.String("time", "", "instant in RFC3339 (optional, defaults to now)")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sundir [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		fatal(logger, "failed to parse flags", "error", err)
	}

	loc, opts := obs.resolve(logger)

	// The clock is read once, here, and passed in.
	at := time.Now().UTC()
	if *timeStr != "" {
		t, err := parseTime(*timeStr)
		if err != nil {
			fatal(logger, "invalid -time", "value", *timeStr, "error", err)
		}
		at = t
	}

	p, err := sundir.SunPositionWith(loc, at, opts)
	if err != nil {
		fatal(logger, "error computing position", "error", err)
	}

	if *jsonOut {
		err = report.JSON(os.Stdout, report.Output{
			Latitude:     loc.Lat,
			Longitude:    loc.Lon,
			RAMode:       opts.RAMode.String(),
			ModelVersion: sundir.ModelVersion,
			Position:     p,
		})
	} else {
		err = report.Text(os.Stdout, loc, p)
	}
	if err != nil {
		fatal(logger, "failed to write output", "error", err)
	}
}

// ---------------------
// Track subcommand
// ---------------------

func runTrack(logger *slog.Logger, args []string) {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	obs := addObserverFlags(fs)
	startStr := fs.String("start", "", "window start (optional, defaults to now)")
	span := fs.Duration("span", 24*time.Hour, "window length")
	step := fs.Duration("step", time.Hour, "sampling interval")
	jsonOut := fs.Bool("json", false, "output result as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sundir track [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		fatal(logger, "failed to parse flags", "error", err)
	}

	loc, opts := obs.resolve(logger)

	start := time.Now().UTC().Truncate(time.Minute)
	if *startStr != "" {
		t, err := parseTime(*startStr)
		if err != nil {
			fatal(logger, "invalid -start", "value", *startStr, "error", err)
		}
		start = t
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	samples, err := sundir.Track(ctx, loc, start, start.Add(*span), *step, opts)
	if err != nil {
		fatal(logger, "error computing track", "error", err)
	}
	logger.Debug("track computed", "samples", len(samples))

	if *jsonOut {
		err = report.JSON(os.Stdout, report.TrackOutput{
			Latitude:     loc.Lat,
			Longitude:    loc.Lon,
			RAMode:       opts.RAMode.String(),
			ModelVersion: sundir.ModelVersion,
			Samples:      samples,
		})
	} else {
		err = report.TrackText(os.Stdout, samples)
	}
	if err != nil {
		fatal(logger, "failed to write output", "error", err)
	}
}

// ---------------------
// Cross subcommand
// ---------------------

func runCross(logger *slog.Logger, args []string) {
	fs := flag.NewFlagSet("cross", flag.ExitOnError)
	obs := addObserverFlags(fs)
	startStr := fs.String("start", "", "search start (optional, defaults to now)")
	within := fs.Duration("within", 48*time.Hour, "search window length")
	alt := fs.Float64("alt", 0, "target altitude in degrees (geometric, no refraction)")
	kindStr := fs.String("kind", "both", "crossing: rising, setting, or both")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sundir cross [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		fatal(logger, "failed to parse flags", "error", err)
	}

	loc, opts := obs.resolve(logger)

	start := time.Now().UTC()
	if *startStr != "" {
		t, err := parseTime(*startStr)
		if err != nil {
			fatal(logger, "invalid -start", "value", *startStr, "error", err)
		}
		start = t
	}

	var kinds []sundir.CrossingKind
	if strings.ToLower(*kindStr) == "both" {
		kinds = []sundir.CrossingKind{sundir.Rising, sundir.Setting}
	} else {
		k, err := sundir.ParseCrossingKind(strings.ToLower(*kindStr))
		if err != nil {
			fatal(logger, "invalid -kind", "error", err)
		}
		kinds = []sundir.CrossingKind{k}
	}

	fmt.Printf("Sun crossing %.2f° for lat=%.6f lon=%.6f\n", *alt, loc.Lat, loc.Lon)
	fmt.Printf("Window: %s + %s\n\n", start.Format(time.RFC3339), *within)

	for _, k := range kinds {
		at, found, err := sundir.FindCrossing(loc, start, start.Add(*within), *alt, k, opts)
		if err != nil {
			fatal(logger, "error finding crossing", "error", err)
		}
		if !found {
			fmt.Printf("%-8s none in window\n", k.String()+":")
			continue
		}
		fmt.Printf("%-8s %s\n", k.String()+":", at.Format(time.RFC3339))
	}
}

// ---------------------
// Serve subcommand
// ---------------------

func runServe(args []string) {
	logger := newLogger(os.Stdout, true)

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", envOr("SUNDIR_HTTP_ADDR", ":8080"), "listen address")
	if err := fs.Parse(args); err != nil {
		fatal(logger, "failed to parse flags", "error", err)
	}

	cfg := loadHTTPConfig(logger)
	router := sundirhttp.SetupRouter(sundirhttp.NewHandler(cfg, logger, nil))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", *addr, "model_version", sundir.ModelVersion,
			"max_track_samples", cfg.MaxTrackSamples)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "server listen error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal(logger, "server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadHTTPConfig(logger *slog.Logger) sundirhttp.Config {
	cfg := sundirhttp.Config{MaxTrackSamples: sundir.MaxTrackSamples}

	if v := os.Getenv("SUNDIR_MAX_TRACK_SAMPLES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid SUNDIR_MAX_TRACK_SAMPLES value, using default", "value", v, "default", sundir.MaxTrackSamples)
		} else if n > sundir.MaxTrackSamples {
			logger.Warn("SUNDIR_MAX_TRACK_SAMPLES above hard limit, capping", "value", n, "limit", sundir.MaxTrackSamples)
		} else {
			cfg.MaxTrackSamples = n
		}
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg
}
