package vinyl

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"vinyl2wav/pkg/geometry"
	"vinyl2wav/pkg/raster"
)

// discRaster builds a 200x200 raster whose every row carries the same
// groove pattern: six dark pixels then four bright ones, repeating across
// the full width. The regular pattern makes every estimate exact:
//
//   - left edge 6, right edge 199, top 0, bottom 199 -> center (102, 99)
//   - twenty dark runs of 6 on the center row -> track width 6
//   - nineteen closed gaps of 4                -> gap width 4
//   - twenty qualifying crossings              -> spin count 10
//   - first light run starts at x=6            -> spiral start 6
func discRaster() *raster.Image {
	return sizedDiscRaster(200, 200)
}

// sizedDiscRaster builds the same repeating groove pattern at arbitrary
// dimensions.
func sizedDiscRaster(width, height int) *raster.Image {
	img := raster.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x%10 >= 6 {
				img.SetLightness(x, y, 200)
			}
		}
	}
	return img
}

// expectedSampleCount is the fixed budget for discRaster:
// floor((200/2 - 1 - 6) * 4 * 10).
const expectedSampleCount = 3720

func TestNewEstimatesProfile(t *testing.T) {
	disc := New(discRaster(), DefaultRPM)

	if c := disc.Center(); c.X != 102 || c.Y != 99 {
		t.Errorf("Center = (%d, %d), want (102, 99)", c.X, c.Y)
	}
	if tw := disc.TrackWidth(); math.Abs(tw-6.0) > 1e-9 {
		t.Errorf("TrackWidth = %f, want 6.0", tw)
	}
	if gw := disc.GapWidth(); math.Abs(gw-4.0) > 1e-9 {
		t.Errorf("GapWidth = %f, want 4.0", gw)
	}
	if s := disc.Spins(); s != 10 {
		t.Errorf("Spins = %d, want 10", s)
	}
}

// TestDuration verifies that duration derives purely from the spin count
// and the rotation rate: ten revolutions at 120 rpm play for five seconds.
func TestDuration(t *testing.T) {
	disc := New(discRaster(), 120)

	if d := disc.Duration(); d != 5*time.Second {
		t.Errorf("Duration = %s, want 5s", d)
	}
}

// TestExtractAudioSampleCount verifies the fixed sample-count law:
// len(output) == floor((rasterWidth/2 - 1 - startX) * 4 * spinCount).
func TestExtractAudioSampleCount(t *testing.T) {
	disc := New(discRaster(), DefaultRPM)

	samples, err := disc.ExtractAudio(Options{})
	if err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}
	if len(samples) != expectedSampleCount {
		t.Errorf("len(samples) = %d, want %d", len(samples), expectedSampleCount)
	}
}

// TestExtractAudioSampleCountOddWidth pins the sample-budget arithmetic
// for odd raster widths: the width is halved in floating point, so a
// 201-pixel raster contributes an extra half pixel before the floor,
// floor((201/2 - 1 - 6) * 4 * 10) = floor(93.5 * 40) = 3740, where an
// integer-division reading would give 3700.
func TestExtractAudioSampleCountOddWidth(t *testing.T) {
	disc := New(sizedDiscRaster(201, 201), DefaultRPM)

	samples, err := disc.ExtractAudio(Options{})
	if err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}
	if len(samples) != 3740 {
		t.Errorf("len(samples) = %d, want 3740", len(samples))
	}
}

// TestExtractAudioLapRadiusReset verifies the lap-reset rule through the
// visited-pixel overlay. Every lap begins at angle pi with the radius
// reset to outerRadius - laps*pitch, so the walk's crossings of the
// center row left of the center land exactly on that radius lattice:
// x = 102 - (93 - 10*lap). A pixel at a radius between two laps is never
// walked at the pi crossing.
func TestExtractAudioLapRadiusReset(t *testing.T) {
	disc := New(discRaster(), DefaultRPM)

	if _, err := disc.ExtractAudio(Options{Track: true}); err != nil {
		t.Fatalf("tracked extraction failed: %v", err)
	}
	overlay, err := disc.Overlay()
	if err != nil {
		t.Fatalf("Overlay after tracked extraction: %v", err)
	}

	for lap := 0; lap < 10; lap++ {
		x := 9 + 10*lap
		if got := overlay.Lightness(x, 99); got != raster.HighlightLightness {
			t.Errorf("lap %d entry pixel (%d, 99) lightness = %d, want %d",
				lap, x, got, raster.HighlightLightness)
		}
	}

	// Radii 88, 48 and 8 sit between consecutive lap radii
	for _, x := range []int{14, 54, 94} {
		if overlay.Lightness(x, 99) == raster.HighlightLightness {
			t.Errorf("pixel (%d, 99) between lap radii was visited", x)
		}
	}
}

// TestExtractAudioDeterminism verifies that repeated extractions with the
// same raster and parameters produce byte-for-byte identical streams.
func TestExtractAudioDeterminism(t *testing.T) {
	disc := New(discRaster(), DefaultRPM)

	first, err := disc.ExtractAudio(Options{})
	if err != nil {
		t.Fatalf("first extraction failed: %v", err)
	}
	second, err := disc.ExtractAudio(Options{})
	if err != nil {
		t.Fatalf("second extraction failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("repeated extractions produced different byte streams")
	}
}

// TestExtractAudioWithOverrides verifies that caller-supplied geometry is
// used for the walk without mutating the profile's own estimates, and that
// the sample budget does not depend on the overridden widths.
func TestExtractAudioWithOverrides(t *testing.T) {
	disc := New(discRaster(), DefaultRPM)

	params := disc.Params()
	params.TrackWidth = 8
	params.GapWidth = 2

	samples, err := disc.ExtractAudioWith(params, Options{})
	if err != nil {
		t.Fatalf("ExtractAudioWith returned error: %v", err)
	}
	if len(samples) != expectedSampleCount {
		t.Errorf("len(samples) = %d, want %d", len(samples), expectedSampleCount)
	}

	if tw := disc.TrackWidth(); math.Abs(tw-6.0) > 1e-9 {
		t.Errorf("profile TrackWidth mutated to %f by override extraction", tw)
	}
	if gw := disc.GapWidth(); math.Abs(gw-4.0) > 1e-9 {
		t.Errorf("profile GapWidth mutated to %f by override extraction", gw)
	}
}

// TestOverlayTrackingContract verifies the tracked-overlay lifecycle:
// no overlay before a tracked extraction, marked overlay after one, and
// the not-tracked condition again once an untracked extraction follows.
func TestOverlayTrackingContract(t *testing.T) {
	source := discRaster()
	disc := New(source, DefaultRPM)

	if _, err := disc.Overlay(); !errors.Is(err, ErrOverlayNotTracked) {
		t.Errorf("Overlay before any extraction: err = %v, want ErrOverlayNotTracked", err)
	}

	if _, err := disc.ExtractAudio(Options{Track: true}); err != nil {
		t.Fatalf("tracked extraction failed: %v", err)
	}

	overlay, err := disc.Overlay()
	if err != nil {
		t.Fatalf("Overlay after tracked extraction: %v", err)
	}

	// The center and the first spiral sample must carry the highlight.
	// The walk begins at angle pi on the outer radius 93, so the first
	// visited pixel is (102-93, 99) = (9, 99).
	if got := overlay.Lightness(102, 99); got != raster.HighlightLightness {
		t.Errorf("center pixel lightness = %d, want %d", got, raster.HighlightLightness)
	}
	if got := overlay.Lightness(9, 99); got != raster.HighlightLightness {
		t.Errorf("first sample pixel lightness = %d, want %d", got, raster.HighlightLightness)
	}

	// Unvisited pixels stay identical to the source, and the source
	// itself is never painted.
	if got := overlay.Lightness(0, 0); got != source.Lightness(0, 0) {
		t.Errorf("unvisited overlay pixel = %d, want %d", got, source.Lightness(0, 0))
	}
	if got := source.Lightness(102, 99); got == raster.HighlightLightness {
		t.Error("tracked extraction painted the source raster")
	}

	if _, err := disc.ExtractAudio(Options{}); err != nil {
		t.Fatalf("untracked extraction failed: %v", err)
	}
	if _, err := disc.Overlay(); !errors.Is(err, ErrOverlayNotTracked) {
		t.Errorf("Overlay after untracked extraction: err = %v, want ErrOverlayNotTracked", err)
	}
}

// TestExtractAudioSpiralNotFound verifies that a raster with no light run
// on the center scanline surfaces the locator's sentinel error.
func TestExtractAudioSpiralNotFound(t *testing.T) {
	disc := New(raster.New(30, 30), DefaultRPM)

	_, err := disc.ExtractAudio(Options{})
	if !errors.Is(err, geometry.ErrSpiralNotFound) {
		t.Errorf("ExtractAudio on blank raster: err = %v, want ErrSpiralNotFound", err)
	}
}
