package aurora

import "math"

// Point is a position on the drawing surface, in pixels, y down.
type Point struct {
	X, Y float64
}

// Segment is a straight stroke between two points.
type Segment struct {
	A, B Point
}

// Crosses returns true if the other segment crosses s.
// Basically, line intersection but looking at end points.
func (s Segment) Crosses(other Segment) bool {
	return Crosses(s.A, s.B, other.A, other.B)
}

// Visible returns true if any part of s falls inside the width x height
// rectangle anchored at the origin, padded by pad on every side.
func (s Segment) Visible(width, height, pad float64) bool {
	minX, minY := -pad, -pad
	maxX, maxY := width+pad, height+pad
	inside := func(p Point) bool {
		return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
	}
	if inside(s.A) || inside(s.B) {
		return true
	}
	// Both ends are outside; it is visible only if it cuts through an edge.
	if math.Max(s.A.X, s.B.X) < minX || math.Min(s.A.X, s.B.X) > maxX ||
		math.Max(s.A.Y, s.B.Y) < minY || math.Min(s.A.Y, s.B.Y) > maxY {
		return false
	}
	tl, tr := Point{minX, minY}, Point{maxX, minY}
	bl, br := Point{minX, maxY}, Point{maxX, maxY}
	return s.Crosses(Segment{tl, tr}) || s.Crosses(Segment{tr, br}) ||
		s.Crosses(Segment{br, bl}) || s.Crosses(Segment{bl, tl})
}

// Code borrowed from C++ and https://bit.ly/3jyKGah
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// To find orientation of ordered triplet (p, q, r).
// The function returns following values
// 0 --> p, q and r are colinear
// 1 --> Clockwise
// 2 --> Counterclockwise
func orientation(p, q, r Point) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if val == 0 {
		return 0 // colinear
	}
	if val > 0 {
		return 1 // clockwise
	}
	return 2 // counterclock wise
}

// Crosses returns true if segment `p1`, `q1` and `p2`, `q2` crosses.
func Crosses(p1, q1, p2, q2 Point) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	// General case
	if o1 != o2 && o3 != o4 {
		return true
	}
	// p1, q1 and p2 are colinear and p2 lies on segment p1q1
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	// p1, q1 and q2 are colinear and q2 lies on segment p1q1
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	// p2, q2 and p1 are colinear and p1 lies on segment p2q2
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	// p2, q2 and q1 are colinear and q1 lies on segment p2q2
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}
