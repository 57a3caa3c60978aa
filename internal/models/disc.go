package models

// Point is an integer pixel coordinate on the scanned raster.
type Point struct {
	// X is the horizontal coordinate, increasing to the right
	X int

	// Y is the vertical coordinate, increasing downward
	Y int
}

// ExtractionParams is the geometry bundle the spiral sampler walks with.
// A caller may substitute its own values for the ones a disc profile
// estimated; the profile itself is never modified by doing so.
type ExtractionParams struct {
	// Center is the disc/spiral center the walk orbits around
	Center Point

	// TrackWidth is the average groove width in pixels
	TrackWidth float64

	// GapWidth is the average spacing between neighboring groove
	// crossings in pixels
	GapWidth float64
}
