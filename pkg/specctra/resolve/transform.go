package resolve

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsn"
)

// RotationMatrix returns the counter-clockwise 2D rotation by deg degrees
func RotationMatrix(deg float64) *mat.Dense {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return mat.NewDense(2, 2, []float64{
		cos, -sin,
		sin, cos,
	})
}

// TransformPoint rotates p about the origin by rotationDeg degrees
// (counter-clockwise) and then translates it by translation.
func TransformPoint(p dsn.Point, rotationDeg float64, translation dsn.Point) dsn.Point {
	var rotated mat.VecDense
	rotated.MulVec(RotationMatrix(rotationDeg), mat.NewVecDense(2, []float64{p.X, p.Y}))

	return dsn.Point{
		X: rotated.AtVec(0) + translation.X,
		Y: rotated.AtVec(1) + translation.Y,
	}
}
