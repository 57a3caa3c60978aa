// Package vinyl models a scanned phonographic disc and extracts its audio.
//
// A Vinyl is constructed once per raster: the groove geometry is estimated
// at construction time and is read-only afterwards. Extraction walks a
// fixed-budget Archimedean spiral over the raster using either the
// estimated geometry or caller-supplied overrides. The walk is open-loop:
// it never re-detects the groove under the cursor and never corrects
// drift, so output fidelity depends entirely on the geometry estimates.
package vinyl

import (
	"errors"
	"math"
	"time"

	"vinyl2wav/internal/models"
	"vinyl2wav/pkg/geometry"
	"vinyl2wav/pkg/raster"
)

// DefaultRPM is the assumed rotation rate of the scanned disc.
const DefaultRPM = 120

// ErrOverlayNotTracked is returned by Overlay when the most recent
// extraction did not request tracking. It is a distinct condition so
// callers can tell "no overlay requested" from an overlay that happens
// to contain no marks.
var ErrOverlayNotTracked = errors.New("last extraction did not track visited pixels")

// Options controls a single extraction call.
type Options struct {
	// Track records every visited pixel onto a debug overlay raster
	// retrievable through Overlay until the next extraction.
	Track bool
}

// Vinyl is the disc profile derived from a scanned raster.
//
// The geometry fields are computed once, in a fixed order: the center must
// be known before the track and gap estimators can pick their scanline,
// gap estimation depends on the track width, and so does the spin count.
// Repeated extractions against the same profile are independent; only the
// overlay and the tracked flag are mutated, so concurrent extractions on
// one profile must be serialized by the caller.
type Vinyl struct {
	source *raster.Image

	center     models.Point
	trackWidth float64
	gapWidth   float64
	spins      int
	rpm        float64

	tracked bool
	overlay *raster.Image
}

// New builds a disc profile from a raster, estimating the full groove
// geometry at the given rotation rate in revolutions per minute.
func New(source *raster.Image, rpm float64) *Vinyl {
	v := &Vinyl{
		source: source,
		rpm:    rpm,
	}

	v.center = geometry.Center(source)
	v.trackWidth = geometry.AverageTrackWidth(source, v.center.Y)
	v.gapWidth = geometry.AverageGapWidth(source, v.center.Y, v.trackWidth)
	v.spins = geometry.SpinCount(source, v.center.Y, v.trackWidth)

	return v
}

// Center returns the estimated disc center.
func (v *Vinyl) Center() models.Point {
	return v.center
}

// TrackWidth returns the estimated average groove width in pixels.
func (v *Vinyl) TrackWidth() float64 {
	return v.trackWidth
}

// GapWidth returns the estimated average inter-groove spacing in pixels.
func (v *Vinyl) GapWidth() float64 {
	return v.gapWidth
}

// Spins returns the estimated number of spiral revolutions.
func (v *Vinyl) Spins() int {
	return v.spins
}

// Duration returns the playing time implied by the spin count at the
// profile's rotation rate. It has no effect on geometry or sampling.
func (v *Vinyl) Duration() time.Duration {
	return time.Duration(float64(v.spins) / v.rpm * float64(time.Minute))
}

// Params returns the estimated geometry as an override bundle, the
// starting point for callers that want to adjust it before extraction.
func (v *Vinyl) Params() models.ExtractionParams {
	return models.ExtractionParams{
		Center:     v.center,
		TrackWidth: v.trackWidth,
		GapWidth:   v.gapWidth,
	}
}

// ExtractAudio samples the groove using the profile's own geometry.
func (v *Vinyl) ExtractAudio(opts Options) ([]byte, error) {
	return v.ExtractAudioWith(v.Params(), opts)
}

// Overlay returns the debug raster recorded by the most recent extraction.
// It fails with ErrOverlayNotTracked unless that extraction requested
// tracking.
func (v *Vinyl) Overlay() (*raster.Image, error) {
	if !v.tracked {
		return nil, ErrOverlayNotTracked
	}
	return v.overlay, nil
}

// ExtractAudioWith samples the groove along an Archimedean spiral using
// the supplied geometry, producing one lightness byte per step.
//
// The walk starts at angle pi on the outer radius and steps both angle
// and radius down each sample. When the angle passes below -pi a lap
// ends: the lap counter increments, the radius resets to the outer radius
// minus the laps walked so far times the groove pitch, and the angle
// resets to pi. Pixel lookup rounds to the nearest integer coordinate
// with no interpolation.
//
// The sample budget is fixed up front from the geometry rather than from
// detecting where the groove actually ends, so samples near the disc's
// inner edge may read background pixels.
func (v *Vinyl) ExtractAudioWith(p models.ExtractionParams, opts Options) ([]byte, error) {
	startX, err := geometry.FindSpiralStart(v.source, p.Center)
	if err != nil {
		return nil, err
	}

	v.tracked = opts.Track
	if opts.Track {
		v.overlay = v.source.Clone()
		v.overlay.Highlight(p.Center.X, p.Center.Y)
	}

	pitch := p.TrackWidth + p.GapWidth
	outerRadius := float64(p.Center.X-startX) - math.Floor(p.TrackWidth/2)

	// The budget halves the raster width in floating point, so an odd
	// width contributes its extra half pixel before the final floor.
	total := int(math.Floor((float64(v.source.Width())/2 - 1 - float64(startX)) * 4 * float64(v.spins)))

	// Both step sizes derive from one samples-per-half-turn estimate
	// taken at the outer radius, so the angular resolution is constant
	// across the whole walk.
	samplesPerHalfTurn := outerRadius * 4
	angleStep := 2 * math.Pi / samplesPerHalfTurn
	radiusStep := pitch / samplesPerHalfTurn

	var samples []byte
	angle := math.Pi
	radius := outerRadius
	laps := 0

	for i := 0; i < total; i++ {
		x := int(math.Round(float64(p.Center.X) + radius*math.Cos(angle)))
		y := int(math.Round(float64(p.Center.Y) + radius*math.Sin(angle)))

		if opts.Track {
			v.overlay.Highlight(x, y)
		}
		samples = append(samples, byte(v.source.Lightness(x, y)))

		angle -= angleStep
		radius -= radiusStep
		if angle < -math.Pi {
			laps++
			radius = outerRadius - float64(laps)*pitch
			angle = math.Pi
		}
	}

	return samples, nil
}
