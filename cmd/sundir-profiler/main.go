package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/thurmanmarka/sundir"
	"github.com/thurmanmarka/sundir/internal/reference"
	"github.com/thurmanmarka/sundir/internal/sun"
	"github.com/thurmanmarka/sundir/internal/timeutil"
)

// The profiler measures the low-precision model against a reference.
//
// By default the reference is the Meeus solar theory (internal/reference),
// sampled from -start every -step for -days. With -refcsv, reference
// positions are read from a file instead:
//
//	time,alt,az
//	2025-01-01T12:00:00Z,-12.345,98.765
//
// - time is RFC3339
// - alt/az are degrees, az from North toward East (e.g. a JPL Horizons export)
func main() {
	var (
		lat      = flag.Float64("lat", 39.739212, "latitude in degrees (north positive)")
		lon      = flag.Float64("lon", -104.990302, "longitude in degrees (east positive, west negative)")
		startStr = flag.String("start", "2020-01-01T00:00:00Z", "first sample (RFC3339)")
		days     = flag.Int("days", 366, "number of days to sample")
		step     = flag.Duration("step", time.Hour, "sampling interval")
		raModeS  = flag.String("ra-mode", "quadrant", "right ascension form: quadrant or principal")
		refCSV   = flag.String("refcsv", "", "optional reference CSV (time,alt,az) instead of the Meeus reference")
		verbose  = flag.Bool("verbose", false, "print per-sample errors instead of only the summary")
		outCSV   = flag.String("outcsv", "", "optional path to write per-sample error CSV")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	loc := sundir.Coordinates{Lat: *lat, Lon: *lon}
	if err := loc.Validate(); err != nil {
		fatal(logger, "invalid location", "error", err)
	}
	mode, err := sundir.ParseRAMode(*raModeS)
	if err != nil {
		fatal(logger, "invalid -ra-mode", "error", err)
	}
	sunMode := sun.RAQuadrant
	if mode == sundir.RAPrincipal {
		sunMode = sun.RAPrincipal
	}

	var rows []row
	if *refCSV != "" {
		rows, err = compareCSV(logger, *refCSV, loc, sunMode)
	} else {
		var start time.Time
		start, err = time.Parse(time.RFC3339, *startStr)
		if err != nil {
			fatal(logger, "invalid -start", "value", *startStr, "error", err)
		}
		if *step <= 0 || *days <= 0 {
			fatal(logger, "-step and -days must be positive")
		}
		rows = compareMeeus(loc, start, start.AddDate(0, 0, *days), *step, sunMode)
	}
	if err != nil {
		fatal(logger, "comparison failed", "error", err)
	}

	if *outCSV != "" {
		if err := writeCSV(*outCSV, rows); err != nil {
			fatal(logger, "failed to write outcsv", "path", *outCSV, "error", err)
		}
	}

	if *verbose {
		for _, r := range rows {
			fmt.Printf("%s: ΔRA=%.4f ΔDec=%.4f ΔAlt=%.4f ΔAz=%.4f\n",
				r.Time.Format(time.RFC3339), r.RA, r.Dec, r.Alt, r.Az)
		}
	}

	refName := "meeus"
	if *refCSV != "" {
		refName = *refCSV
	}
	summarize(os.Stdout, refName, loc, mode, rows)
}

func fatal(logger *slog.Logger, msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}

// row is one comparison. Fields the reference does not provide are NaN.
type row = reference.Delta

func compareMeeus(loc sundir.Coordinates, start, end time.Time, step time.Duration, mode sun.RAMode) []row {
	var rows []row
	for t := start; t.Before(end); t = t.Add(step) {
		d := reference.Compare(loc.Lat, loc.Lon, t, mode)
		if !d.AzDefined {
			d.Az = math.NaN()
		}
		rows = append(rows, d)
	}
	return rows
}

func compareCSV(logger *slog.Logger, path string, loc sundir.Coordinates, mode sun.RAMode) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return compareRecords(logger, f, loc, mode)
}

func compareRecords(logger *slog.Logger, r io.Reader, loc sundir.Coordinates, mode sun.RAMode) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // allow variable, we validate

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	// If first row looks like a header, skip it.
	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "time") {
		startIdx = 1
	}

	var rows []row
	for i := startIdx; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 3 {
			logger.Warn("skipping row", "row", i+1, "reason", "expected 3 columns (time,alt,az)", "got", len(rec))
			continue
		}

		t, err := time.Parse(time.RFC3339, strings.TrimSpace(rec[0]))
		if err != nil {
			logger.Warn("skipping row", "row", i+1, "reason", "invalid time", "error", err)
			continue
		}
		refAlt, errAlt := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		refAz, errAz := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if errAlt != nil || errAz != nil {
			logger.Warn("skipping row", "row", i+1, "reason", "invalid alt/az")
			continue
		}

		_, hz := sun.Observe(loc.Lat, loc.Lon, t, mode)

		d := row{
			Time:      t,
			RA:        math.NaN(),
			Dec:       math.NaN(),
			Alt:       hz.Alt - refAlt,
			Az:        timeutil.Normalize180(hz.Az - refAz),
			AzDefined: !hz.AzimuthUndefined,
		}
		if !d.AzDefined {
			d.Az = math.NaN()
		}
		rows = append(rows, d)
	}
	return rows, nil
}

func writeCSV(path string, rows []row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "d_ra", "d_dec", "d_alt", "d_az"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Time.Format(time.RFC3339),
			formatDelta(r.RA),
			formatDelta(r.Dec),
			formatDelta(r.Alt),
			formatDelta(r.Az),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func formatDelta(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.6f", v)
}

func summarize(w io.Writer, refName string, loc sundir.Coordinates, mode sundir.RAMode, rows []row) {
	var ra, dec, alt, az stats
	for _, r := range rows {
		ra.add(r.RA)
		dec.add(r.Dec)
		alt.add(r.Alt)
		az.add(r.Az)
	}

	fmt.Fprintln(w, "=== sundir profiler summary ===")
	fmt.Fprintf(w, "Model:     %s (%s RA)\n", sundir.ModelVersion, mode)
	fmt.Fprintf(w, "Reference: %s\n", refName)
	fmt.Fprintf(w, "Lat/Lon:   %.4f / %.4f\n", loc.Lat, loc.Lon)
	fmt.Fprintf(w, "Samples:   %d\n", len(rows))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No valid samples to compute stats.")
		return
	}

	if ra.count > 0 {
		ra.print(w, "Right ascension error")
		dec.print(w, "Declination error")
	}
	alt.print(w, "Altitude error")
	az.print(w, "Azimuth error")
}
