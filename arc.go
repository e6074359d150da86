// Copyright 2024 The TinyVG-Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tinyvg

import "math"

// arcToLines approximates an elliptical arc from 'from' to 'to' with
// line segments whose sagitta stays within tol, emitting every point
// after 'from'. The parameters follow the SVG arc semantics: radii, an
// x-axis rotation in degrees, and the large-arc and sweep flags
// selecting one of the four candidate arcs. Degenerate radii collapse
// to a straight line; the endpoint-to-center conversion is the one
// from the SVG spec (F.6.5), including the radii scale-up for
// unreachable endpoints.
func arcToLines(from Point, radiusX, radiusY, rotation float64, largeArc, sweep bool, to Point, tol float64, emit func(Point)) {
	rx, ry := math.Abs(radiusX), math.Abs(radiusY)
	if rx == 0 || ry == 0 || from == to {
		emit(to)
		return
	}

	phi := rotation * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	// Transform the midpoint into the ellipse's axis-aligned frame.
	dx := (from.X - to.X) / 2
	dy := (from.Y - to.Y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	// Scale the radii up if the endpoints are too far apart for them.
	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rxSq, rySq := rx*rx, ry*ry
	x1pSq, y1pSq := x1p*x1p, y1p*y1p
	denom := rxSq*y1pSq + rySq*x1pSq
	if denom == 0 {
		emit(to)
		return
	}
	num := rxSq*rySq - denom
	if num < 0 {
		num = 0
	}
	sq := math.Sqrt(num / denom)
	if largeArc == sweep {
		sq = -sq
	}
	cxp := sq * rx * y1p / ry
	cyp := -sq * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (from.X+to.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+to.Y)/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry

	theta := vectorAngle(1, 0, ux, uy)
	dTheta := vectorAngle(ux, uy, vx, vy)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	segments := arcSegments(math.Abs(dTheta), math.Max(rx, ry), tol)
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		a := theta + t*dTheta
		cosA, sinA := math.Cos(a), math.Sin(a)
		emit(Point{
			X: cosA*rx*cosPhi - sinA*ry*sinPhi + cx,
			Y: cosA*rx*sinPhi + sinA*ry*cosPhi + cy,
		})
	}
	emit(to)
}

// arcSegments returns the number of chords needed so that the sagitta
// of each chord on a circle of radius r stays within tol.
func arcSegments(sweep, r, tol float64) int {
	if tol <= 0 || tol >= r {
		// Nothing to gain from subdividing below a minimum roundness.
		return clampSegments(int(math.Ceil(sweep / (math.Pi / 4))))
	}
	step := 2 * math.Acos(1-tol/r)
	if step <= 0 || math.IsNaN(step) {
		step = math.Pi / 4
	}
	return clampSegments(int(math.Ceil(sweep / step)))
}

func clampSegments(n int) int {
	if n < 1 {
		return 1
	}
	if n > 1024 {
		return 1024
	}
	return n
}

// vectorAngle returns the signed angle from vector u to vector v.
func vectorAngle(ux, uy, vx, vy float64) float64 {
	lenU := math.Hypot(ux, uy)
	lenV := math.Hypot(vx, vy)
	if lenU == 0 || lenV == 0 {
		return 0
	}
	cos := (ux*vx + uy*vy) / (lenU * lenV)
	if cos < -1 {
		cos = -1
	} else if cos > 1 {
		cos = 1
	}
	a := math.Acos(cos)
	if ux*vy-uy*vx < 0 {
		return -a
	}
	return a
}
