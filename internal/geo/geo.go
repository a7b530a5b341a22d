// Package geo holds the tabletop geometry used by the engine: bearings, facing windows,
// clamped rotation and translation on a flat plane. Headings are degrees in [0,360),
// measured counter-clockwise from the +X axis.
package geo

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
)

// DefaultTolerance is the half-width of a facing window in degrees.
const DefaultTolerance = 45.0

// CollisionFloor is the closest a mover may end to the target it advances on.
const CollisionFloor = 1.0

// Normalize wraps an angle into [0,360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0.0 and tiny negatives can round up to exactly 360
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Delta returns the signed shortest rotation from one heading to another, in (-180,180].
func Delta(from, to float64) float64 {
	d := Normalize(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}

// AngleTo returns the bearing from origin to target.
func AngleTo(origin, target geom.XY) float64 {
	return Normalize(math.Atan2(target.Y-origin.Y, target.X-origin.X) * 180 / math.Pi)
}

// Distance returns the euclidean distance between two points.
func Distance(a, b geom.XY) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Facing reports whether bearing lies within tolerance degrees of heading.
func Facing(heading, bearing, tolerance float64) bool {
	return math.Abs(Delta(heading, bearing)) <= tolerance
}

// FacingAway reports whether bearing lies within tolerance degrees of the reverse of heading.
func FacingAway(heading, bearing, tolerance float64) bool {
	return Facing(heading+180, bearing, tolerance)
}

// RotateToward turns heading toward target by at most maxDelta and at least minDelta
// degrees. A zero correction that still owes minDelta turns counter-clockwise.
func RotateToward(heading, target, maxDelta, minDelta float64) float64 {
	d := Delta(heading, target)
	sign := 1.0
	if d < 0 {
		sign = -1
	}
	mag := math.Min(math.Abs(d), maxDelta)
	if mag < minDelta {
		mag = minDelta
	}
	return Normalize(heading + sign*mag)
}

// Move translates pos by dist along angle.
func Move(pos geom.XY, angle, dist float64) geom.XY {
	rad := angle * math.Pi / 180
	return geom.XY{
		X: round(pos.X + dist*math.Cos(rad)),
		Y: round(pos.Y + dist*math.Sin(rad)),
	}
}

// MoveToward advances along heading. When the target is inside the facing window the
// mover covers up to maxDist but stops CollisionFloor short of the target; otherwise it
// drifts exactly minDist.
func MoveToward(pos geom.XY, heading float64, target geom.XY, maxDist, minDist float64) geom.XY {
	if !Facing(heading, AngleTo(pos, target), DefaultTolerance) {
		return Move(pos, heading, minDist)
	}
	room := math.Max(Distance(pos, target)-CollisionFloor, 0)
	dist := math.Min(maxDist, math.Max(room, minDist))
	if dist > room {
		dist = room
	}
	return Move(pos, heading, dist)
}

// MoveAway translates pos dist units directly away from target.
func MoveAway(pos, target geom.XY, dist float64) geom.XY {
	return Move(pos, AngleTo(target, pos), dist)
}

// Point wraps an XY into a geom.Point for storage and WKT output.
func Point(xy geom.XY) geom.Point {
	return geom.NewPoint(geom.Coordinates{XY: xy, Type: geom.CoordinatesType(geom.DimXY)})
}

// round trims float noise from trigonometry so axis-aligned moves land on whole units.
func round(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}
