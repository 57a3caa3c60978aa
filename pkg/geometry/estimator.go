// Package geometry estimates the groove geometry of a scanned phonographic
// disc. All estimators are 1-D signal analyses over a single scanline (the
// horizontal line through the detected center), not full 2-D groove tracing,
// so the quality of every downstream sample depends on that one row being
// representative of the disc.
package geometry

import (
	"gonum.org/v1/gonum/stat"

	"vinyl2wav/internal/models"
)

// Raster is the read-only lightness lookup the estimators scan.
type Raster interface {
	Width() int
	Height() int
	Lightness(x, y int) int
}

// Threshold and run-length policy constants.
//
// plateLightness separates disc material from the scan background, while
// the higher trackLightness separates groove ridges from the plate between
// them. minTrackWidth is the shortest run of pixels that counts as a real
// groove transition rather than noise, and minPlateCount is how many
// bright pixels a scanline or scancolumn needs before it is considered to
// lie on the disc at all.
const (
	plateLightness = 96
	trackLightness = 128
	minTrackWidth  = 3
	minPlateCount  = 32
)

// Center estimates the disc center from the raster.
//
// Each axis is handled independently: columns are scanned left-to-right and
// right-to-left (rows top-to-bottom and bottom-to-top), and the first
// column/row whose count of pixels brighter than the plate threshold
// exceeds the count threshold marks that edge. The center is the midpoint
// of the two edges per axis. If no column/row ever qualifies, the edge
// keeps the boundary value the scan ran out at; the degenerate result is
// returned unflagged.
func Center(r Raster) models.Point {
	width, height := r.Width(), r.Height()

	left := 0
	for x := 0; x < width; x++ {
		left = x
		if columnPlateCount(r, x) > minPlateCount {
			break
		}
	}

	right := 0
	for x := width - 1; x >= 0; x-- {
		right = x
		if columnPlateCount(r, x) > minPlateCount {
			break
		}
	}

	top := 0
	for y := 0; y < height; y++ {
		top = y
		if rowPlateCount(r, y) > minPlateCount {
			break
		}
	}

	bottom := 0
	for y := height - 1; y >= 0; y-- {
		bottom = y
		if rowPlateCount(r, y) > minPlateCount {
			break
		}
	}

	return models.Point{X: (left + right) / 2, Y: (top + bottom) / 2}
}

// AverageTrackWidth estimates the mean groove width in pixels from the
// scanline at y.
//
// A groove ridge shows up as a run of consecutive pixels darker than the
// track threshold. Runs no longer than the minimum track width are treated
// as noise and skipped. The mean of an empty run set is NaN; callers get
// the unguarded arithmetic rather than a substituted default.
func AverageTrackWidth(r Raster, y int) float64 {
	var runs []float64
	run := 0

	for x := 0; x < r.Width(); x++ {
		if r.Lightness(x, y) < trackLightness {
			run++
			continue
		}
		if run > minTrackWidth {
			runs = append(runs, float64(run))
		}
		run = 0
	}

	return stat.Mean(runs, nil)
}

// AverageGapWidth estimates the mean spacing between neighboring groove
// crossings on the scanline at y.
//
// A gap opens once a dark run has lasted at least trackWidth-1 pixels and
// accumulates over the light pixels that follow, closing when the next
// ridge begins. Gaps longer than twice the track width are background
// between the disc and the raster edge, not groove spacing, and are
// discarded without contributing to the mean. A gap still open when the
// scan ends is discarded the same way.
func AverageGapWidth(r Raster, y int, trackWidth float64) float64 {
	var gaps []float64
	dark := 0
	gap := 0
	armed := false

	for x := 0; x < r.Width(); x++ {
		if r.Lightness(x, y) < trackLightness {
			if armed && gap > 0 {
				if float64(gap) <= 2*trackWidth {
					gaps = append(gaps, float64(gap))
				}
				armed = false
				gap = 0
			}
			dark++
			if float64(dark) >= trackWidth-1 {
				armed = true
			}
			continue
		}
		if armed {
			gap++
		}
		dark = 0
	}

	return stat.Mean(gaps, nil)
}

// SpinCount estimates the number of spiral revolutions on the disc.
//
// The raw count is the number of dark runs on the scanline at y that are
// at least one track width long. Each revolution crosses the scanline
// roughly twice, once per side of the spiral, so the reported count is
// (raw + 1) / 2 using integer division.
func SpinCount(r Raster, y int, trackWidth float64) int {
	raw := 0
	run := 0

	for x := 0; x < r.Width(); x++ {
		if r.Lightness(x, y) < trackLightness {
			run++
			continue
		}
		if float64(run) >= trackWidth {
			raw++
		}
		run = 0
	}

	return (raw + 1) / 2
}

// columnPlateCount counts pixels in column x brighter than the plate
// threshold.
func columnPlateCount(r Raster, x int) int {
	count := 0
	for y := 0; y < r.Height(); y++ {
		if r.Lightness(x, y) > plateLightness {
			count++
		}
	}
	return count
}

// rowPlateCount counts pixels in row y brighter than the plate threshold.
func rowPlateCount(r Raster, y int) int {
	count := 0
	for x := 0; x < r.Width(); x++ {
		if r.Lightness(x, y) > plateLightness {
			count++
		}
	}
	return count
}
