package geometry

import (
	"errors"

	"vinyl2wav/internal/models"
)

// ErrSpiralNotFound is returned when the scanline through the center is
// exhausted without a light run long enough to mark the spiral's outer edge.
var ErrSpiralNotFound = errors.New("spiral start not found on center scanline")

// FindSpiralStart locates the outer entry point of the groove on the
// horizontal line through the center.
//
// The scan walks the line from the left edge accumulating a run of pixels
// brighter than the track threshold. The first run reaching the minimum
// track width marks the spiral start, backtracked to the run's first pixel.
func FindSpiralStart(r Raster, center models.Point) (int, error) {
	run := 0

	for x := 0; x < r.Width(); x++ {
		if r.Lightness(x, center.Y) <= trackLightness {
			run = 0
			continue
		}
		run++
		if run >= minTrackWidth {
			return x - run + 1, nil
		}
	}

	return 0, ErrSpiralNotFound
}
