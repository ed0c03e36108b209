// SPDX-License-Identifier: EPL-2.0

package warp

import (
	"fmt"
	"math"

	mgl "github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// Point is a screen or canvas position in pixels.
type Point struct {
	X, Y float64
}

// Quad is four corners in clockwise order starting top left.
type Quad struct {
	UpLeft, UpRight, DownRight, DownLeft Point
}

// Rect is the quad covering a w x h canvas.
func Rect(w, h float64) Quad {
	return Quad{
		UpLeft:    Point{0, 0},
		UpRight:   Point{w, 0},
		DownRight: Point{w, h},
		DownLeft:  Point{0, h},
	}
}

func (q Quad) points() [4]Point {
	return [4]Point{q.UpLeft, q.UpRight, q.DownRight, q.DownLeft}
}

// Homography is a projective map of the plane, normalised so that the
// bottom right element is 1.
type Homography mgl.Mat3

// Identity maps every point onto itself.
func Identity() Homography { return Homography(mgl.Ident3()) }

// minDet is the smallest determinant Inverse accepts.
const minDet = 1e-12

// Solve returns the homography taking each corner of src onto the
// matching corner of dst.
func Solve(src, dst Quad) (Homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	sp, dp := src.points(), dst.points()
	for i := range sp {
		x, y := sp[i].X, sp[i].Y
		u, v := dp[i].X, dp[i].Y

		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -u * x, -u * y})
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -v * x, -v * y})
		b.SetVec(2*i, u)
		b.SetVec(2*i+1, v)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return Homography{}, fmt.Errorf("%w: %w", ErrDegenerate, err)
	}

	m := mgl.Mat3FromRows(
		mgl.Vec3{h.AtVec(0), h.AtVec(1), h.AtVec(2)},
		mgl.Vec3{h.AtVec(3), h.AtVec(4), h.AtVec(5)},
		mgl.Vec3{h.AtVec(6), h.AtVec(7), 1},
	)
	for _, e := range m {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return Homography{}, ErrDegenerate
		}
	}

	return Homography(m), nil
}

// Inverse returns the map undoing h.
func (h Homography) Inverse() (Homography, error) {
	m := mgl.Mat3(h)
	if det := m.Det(); math.Abs(det) < minDet || math.IsNaN(det) {
		return Homography{}, fmt.Errorf("determinant %g: %w", det, ErrDegenerate)
	}

	inv := m.Inv()
	if s := inv.At(2, 2); s != 0 {
		inv = inv.Mul(1 / s)
	}
	return Homography(inv), nil
}

// Apply maps (x, y) through h. Points sent to infinity come back as
// ±Inf or NaN.
func (h Homography) Apply(x, y float64) (float64, float64) {
	w := h[2]*x + h[5]*y + h[8]
	return (h[0]*x + h[3]*y + h[6]) / w, (h[1]*x + h[4]*y + h[7]) / w
}
