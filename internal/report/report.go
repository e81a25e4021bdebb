// Package report renders Sun positions for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/sundir"
	"github.com/thurmanmarka/sundir/internal/timeutil"
)

// Text writes the three labelled lines of the classic output, followed by
// the same equatorial position in sexagesimal notation.
func Text(w io.Writer, loc sundir.Coordinates, p sundir.Position) error {
	eq, hz, v := p.Equatorial, p.Horizontal, p.Vector

	lines := []string{
		fmt.Sprintf("Sun position for lat=%.6f lon=%.6f at %s", loc.Lat, loc.Lon, p.Time.UTC().Format(time.RFC3339)),
		"",
		fmt.Sprintf("(Right ascension, Declination) in degrees: (%.6f, %.6f)", eq.RA, eq.Dec),
		fmt.Sprintf("(Altitude, Azimuth) in degrees: (%.6f, %.6f)", hz.Alt, hz.Az),
		fmt.Sprintf("(East, North, Up) unit vector: (%.6f, %.6f, %.6f)", v.East, v.North, v.Up),
		"",
		fmt.Sprintf("RA  %s", FormatRA(eq.RA)),
		fmt.Sprintf("Dec %s", FormatAngle(eq.Dec)),
	}
	if p.AzimuthFallback {
		lines = append(lines, "note: azimuth is undefined here (pole or zenith); reported as 0")
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// FormatRA renders a right ascension in degrees as hours, minutes, seconds.
// Negative values (legacy RA mode) are wrapped into [0h, 24h).
func FormatRA(deg float64) string {
	ra := unit.RA(timeutil.Deg2Rad(timeutil.Normalize360(deg)))
	return fmt.Sprintf("%.1s", sexa.FmtRA(ra))
}

// FormatAngle renders an angle in degrees as degrees, arcminutes, arcseconds.
func FormatAngle(deg float64) string {
	return fmt.Sprintf("%.1s", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

// Output is the JSON document for a single position.
type Output struct {
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	RAMode       string          `json:"ra_mode"`
	ModelVersion string          `json:"model_version"`
	Position     sundir.Position `json:"position"`
}

// TrackOutput is the JSON document for a sequence of positions.
type TrackOutput struct {
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	RAMode       string            `json:"ra_mode"`
	ModelVersion string            `json:"model_version"`
	Samples      []sundir.Position `json:"samples"`
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// TrackText writes one line per sample: time, altitude, azimuth, vector.
func TrackText(w io.Writer, samples []sundir.Position) error {
	if _, err := fmt.Fprintf(w, "%-20s %9s %9s %9s %9s %9s\n", "time", "alt", "az", "east", "north", "up"); err != nil {
		return err
	}
	for _, s := range samples {
		_, err := fmt.Fprintf(w, "%-20s %9.3f %9.3f %9.4f %9.4f %9.4f\n",
			s.Time.UTC().Format(time.RFC3339), s.Horizontal.Alt, s.Horizontal.Az,
			s.Vector.East, s.Vector.North, s.Vector.Up)
		if err != nil {
			return err
		}
	}
	return nil
}
