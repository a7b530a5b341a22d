package geo

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Track joins a sequence of positions into a LineString. Consecutive duplicates are
// collapsed since a mech that only rotated did not travel.
func Track(points []geom.XY) (geom.LineString, error) {
	flat := make([]float64, 0, len(points)*2)
	var last geom.XY
	for i, p := range points {
		if i > 0 && p == last {
			continue
		}
		flat = append(flat, p.X, p.Y)
		last = p
	}

	if len(flat) < 4 {
		return geom.LineString{}, fmt.Errorf("track must have at least 2 distinct points, got %d", len(flat)/2)
	}

	seq := geom.NewSequence(flat, geom.DimXY)
	return geom.NewLineString(seq), nil
}
