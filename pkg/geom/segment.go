package geom

// interiorEps excludes shared-endpoint touches and exact endpoint overlaps
// from interior intersection tests.
const interiorEps = 1e-9

// SegmentIntersection computes the interior intersection of segments p1-p2 and
// p3-p4 using the standard parametric cross-product method. It returns the
// intersection point and true only when the crossing lies strictly inside both
// segments (both parameters in (interiorEps, 1-interiorEps)).
//
// A denominator of exactly zero is treated as parallel or collinear and
// reported as no intersection. There is deliberately no epsilon on that test:
// numerically near-parallel segments either produce a parameter outside the
// interior range or a far-away intersection point, both of which are rejected
// by the range check.
func SegmentIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	den := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if den == 0 {
		return Point{}, false
	}

	t := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / den
	u := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / den

	if t <= interiorEps || t >= 1-interiorEps || u <= interiorEps || u >= 1-interiorEps {
		return Point{}, false
	}

	return Point{
		X: p1.X + t*(p2.X-p1.X),
		Y: p1.Y + t*(p2.Y-p1.Y),
	}, true
}
