package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thurmanmarka/sundir"
	"github.com/thurmanmarka/sundir/internal/metrics"
)

// Config holds the HTTP surface settings.
type Config struct {
	// MaxTrackSamples bounds /v1/sun/track; values above
	// sundir.MaxTrackSamples are capped.
	MaxTrackSamples int
	// AllowedOrigins lists CORS origins; empty allows all.
	AllowedOrigins []string
}

// Handler handles HTTP requests for Sun positions.
type Handler struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates a new HTTP handler. now supplies the instant used when a
// request omits one; pass nil for time.Now.
func NewHandler(cfg Config, logger *slog.Logger, now func() time.Time) *Handler {
	if cfg.MaxTrackSamples <= 0 || cfg.MaxTrackSamples > sundir.MaxTrackSamples {
		cfg.MaxTrackSamples = sundir.MaxTrackSamples
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{cfg: cfg, logger: logger, now: now}
}

type positionResponse struct {
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	RAMode       string          `json:"ra_mode"`
	ModelVersion string          `json:"model_version"`
	Position     sundir.Position `json:"position"`
}

type trackResponse struct {
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	RAMode       string            `json:"ra_mode"`
	ModelVersion string            `json:"model_version"`
	Interval     string            `json:"interval"`
	Samples      []sundir.Position `json:"samples"`
}

type crossingResponse struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Altitude  float64    `json:"altitude"`
	Kind      string     `json:"kind"`
	Found     bool       `json:"found"`
	Time      *time.Time `json:"time,omitempty"`
}

// GetPosition handles GET /v1/sun/position.
func (h *Handler) GetPosition(c *gin.Context) {
	loc, ok := parseLocation(c)
	if !ok {
		return
	}
	opts, ok := parseOptions(c)
	if !ok {
		return
	}

	at := h.now().UTC()
	if s := c.Query("time"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			badRequest(c, fmt.Sprintf("invalid time (expected RFC3339): %v", err))
			return
		}
		at = t.UTC()
	}

	p, err := sundir.SunPositionWith(loc, at, opts)
	if err != nil {
		h.computeError(c, err)
		return
	}
	observe([]sundir.Position{p})

	c.JSON(http.StatusOK, positionResponse{
		Latitude:     loc.Lat,
		Longitude:    loc.Lon,
		RAMode:       opts.RAMode.String(),
		ModelVersion: sundir.ModelVersion,
		Position:     p,
	})
}

// GetTrack handles GET /v1/sun/track.
func (h *Handler) GetTrack(c *gin.Context) {
	loc, ok := parseLocation(c)
	if !ok {
		return
	}
	opts, ok := parseOptions(c)
	if !ok {
		return
	}
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	intervalStr := c.DefaultQuery("interval", "10m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid interval: %v", err))
		return
	}

	n, err := sundir.TrackSamples(start, end, interval)
	if err != nil {
		h.computeError(c, err)
		return
	}
	if n > h.cfg.MaxTrackSamples {
		badRequest(c, fmt.Sprintf("request needs %d samples, limit is %d", n, h.cfg.MaxTrackSamples))
		return
	}

	samples, err := sundir.Track(c.Request.Context(), loc, start, end, interval, opts)
	if err != nil {
		h.computeError(c, err)
		return
	}
	observe(samples)

	c.JSON(http.StatusOK, trackResponse{
		Latitude:     loc.Lat,
		Longitude:    loc.Lon,
		RAMode:       opts.RAMode.String(),
		ModelVersion: sundir.ModelVersion,
		Interval:     interval.String(),
		Samples:      samples,
	})
}

// GetCrossing handles GET /v1/sun/crossing.
func (h *Handler) GetCrossing(c *gin.Context) {
	loc, ok := parseLocation(c)
	if !ok {
		return
	}
	opts, ok := parseOptions(c)
	if !ok {
		return
	}
	start, end, ok := parseWindow(c)
	if !ok {
		return
	}

	alt, err := strconv.ParseFloat(c.DefaultQuery("altitude", "0"), 64)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid altitude: %v", err))
		return
	}
	kind, err := sundir.ParseCrossingKind(c.Query("kind"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	at, found, err := sundir.FindCrossing(loc, start, end, alt, kind, opts)
	if err != nil {
		h.computeError(c, err)
		return
	}

	resp := crossingResponse{
		Latitude:  loc.Lat,
		Longitude: loc.Lon,
		Altitude:  alt,
		Kind:      kind.String(),
		Found:     found,
	}
	if found {
		resp.Time = &at
	}
	c.JSON(http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"model_version": sundir.ModelVersion,
		"time":          h.now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) computeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, sundir.ErrInvalidLatitude),
		errors.Is(err, sundir.ErrInvalidLongitude):
		metrics.ObserveComputations(metrics.OutcomeInvalidInput, 1)
		badRequest(c, err.Error())
	case errors.Is(err, sundir.ErrInvalidWindow),
		errors.Is(err, sundir.ErrTooManySamples),
		errors.Is(err, sundir.ErrInvalidAltitude):
		badRequest(c, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away; nothing useful to send.
		c.Status(http.StatusRequestTimeout)
	default:
		h.logger.Error("computation failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	h.logger.Debug("request rejected", "path", c.FullPath(), "error", err)
}

func observe(ps []sundir.Position) {
	var ok, fallback int
	for _, p := range ps {
		if p.AzimuthFallback {
			fallback++
		} else {
			ok++
		}
	}
	if ok > 0 {
		metrics.ObserveComputations(metrics.OutcomeOK, ok)
	}
	if fallback > 0 {
		metrics.ObserveComputations(metrics.OutcomeAzimuthFallback, fallback)
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func parseLocation(c *gin.Context) (sundir.Coordinates, bool) {
	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		badRequest(c, "lat and lon parameters are required")
		return sundir.Coordinates{}, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid latitude: %v", err))
		return sundir.Coordinates{}, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid longitude: %v", err))
		return sundir.Coordinates{}, false
	}
	return sundir.Coordinates{Lat: lat, Lon: lon}, true
}

func parseOptions(c *gin.Context) (sundir.Options, bool) {
	mode, err := sundir.ParseRAMode(c.Query("ra_mode"))
	if err != nil {
		badRequest(c, err.Error())
		return sundir.Options{}, false
	}
	return sundir.Options{RAMode: mode}, true
}

func parseWindow(c *gin.Context) (start, end time.Time, ok bool) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" {
		badRequest(c, "start parameter is required")
		return start, end, false
	}
	if endStr == "" {
		badRequest(c, "end parameter is required")
		return start, end, false
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid start time (expected RFC3339): %v", err))
		return start, end, false
	}
	end, err = time.Parse(time.RFC3339, endStr)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid end time (expected RFC3339): %v", err))
		return start, end, false
	}
	return start.UTC(), end.UTC(), true
}
