package math3d

import "math"

// RotateX returns v rotated by angle radians about the X axis
// (right-handed).
func RotateX(v Vec3, angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

// RotateY returns v rotated by angle radians about the Y axis.
func RotateY(v Vec3, angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// RotateZ returns v rotated by angle radians about the Z axis.
func RotateZ(v Vec3, angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}

// Rotate applies the three axis rotations to v in sequence: first about X,
// then about Y, then about Z. The order is part of the renderer's contract;
// it is not interchangeable with a combined rotation matrix.
func Rotate(v Vec3, ax, ay, az float64) Vec3 {
	return RotateZ(RotateY(RotateX(v, ax), ay), az)
}
