package cursorfx

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the element's
// box offset and transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Rotate -> Translate(PivotX, PivotY) -> Translate(X, Y)
//
// Unlike a scene-graph sprite, the pivot is added back so that an
// untransformed box keeps its layout position.
func computeLocalTransform(e *Element) [6]float64 {
	sx := e.ScaleX
	sy := e.ScaleY
	sin, cos := math.Sincos(e.Rotation)

	px := e.PivotX
	py := e.PivotY

	// After Scale * Translate(-pivot):
	preTx := -px * sx
	preTy := -py * sy

	// After Rotate:
	ra := cos * sx
	rb := sin * sx
	rc := -sin * sy
	rd := cos * sy
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	return [6]float64{ra, rb, rc, rd, rtx + px + e.X, rty + py + e.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// worldTransform composes the local transforms from the top of the tree down
// to e. It is computed on demand: elements are measured right after structural
// changes, before any frame traversal could refresh a cache.
func (e *Element) worldTransform() [6]float64 {
	if e.Parent == nil {
		return computeLocalTransform(e)
	}
	return multiplyAffine(e.Parent.worldTransform(), computeLocalTransform(e))
}

// boundsOf returns the axis-aligned bounding box of a w×h local box under m.
func boundsOf(m [6]float64, w, h float64) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4]Vec2{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := transformPoint(m, p.X, p.Y)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Bounds returns the element's bounding box in viewport coordinates: the
// axis-aligned box enclosing its transformed layout box.
func (e *Element) Bounds() Rect {
	return boundsOf(e.worldTransform(), e.Width, e.Height)
}

// --- Transform property setters ---

// SetPosition sets the element's box offset.
func (e *Element) SetPosition(x, y float64) {
	e.X = x
	e.Y = y
}

// SetSize sets the element's box size.
func (e *Element) SetSize(w, h float64) {
	e.Width = w
	e.Height = h
}

// SetScale sets the element's ScaleX and ScaleY.
func (e *Element) SetScale(sx, sy float64) {
	e.ScaleX = sx
	e.ScaleY = sy
}

// SetRotation sets the element's rotation in radians.
func (e *Element) SetRotation(r float64) {
	e.Rotation = r
}

// SetPivot sets the point, in local box coordinates, that scale and rotation
// are applied around.
func (e *Element) SetPivot(px, py float64) {
	e.PivotX = px
	e.PivotY = py
}

// --- Coordinate conversion ---

// WorldToLocal converts a viewport point to this element's local box space.
func (e *Element) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(e.worldTransform())
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local box point to viewport space.
func (e *Element) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(e.worldTransform(), lx, ly)
}
