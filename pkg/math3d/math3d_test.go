package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearVec(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestRotateYTurnsForwardToSide(t *testing.T) {
	got := RotateY(math.Pi / 2).MulVec3Dir(V3(0, 0, 1))
	if !nearVec(got, V3(1, 0, 0)) {
		t.Errorf("RotateY(90°) of +Z = %v, want +X", got)
	}
}

func TestRotateXTiltsUpToFront(t *testing.T) {
	got := RotateX(math.Pi / 2).MulVec3Dir(V3(0, 1, 0))
	if !nearVec(got, V3(0, 0, 1)) {
		t.Errorf("RotateX(90°) of +Y = %v, want +Z", got)
	}
}

func TestComposeAppliesScaleRotateTranslate(t *testing.T) {
	// 90° about Y as a quaternion.
	h := math.Sqrt2 / 2
	m := Compose(V3(1, 2, 3), Quat{Y: h, W: h}, V3(2, 2, 2))

	got := m.MulVec3(V3(0, 0, 1))
	want := V3(3, 2, 3)
	if !nearVec(got, want) {
		t.Errorf("Compose point = %v, want %v", got, want)
	}
}

func TestZeroQuatIsIdentity(t *testing.T) {
	if (Quat{}).Mat4() != Identity() {
		t.Error("zero quaternion should map to identity")
	}
	if QuatIdentity().Mat4() != Identity() {
		t.Error("identity quaternion should map to identity")
	}
}

func TestNormalMatrixUnderNonUniformScale(t *testing.T) {
	m := Scale(V3(2, 1, 1))
	// A surface tilted 45° in XY: under x-stretch its normal tilts toward Y.
	n := m.NormalMatrix().MulVec3Dir(V3(1, 1, 0).Normalize()).Normalize()
	tangent := m.MulVec3Dir(V3(1, -1, 0))
	if !near(n.Dot(tangent), 0) {
		t.Errorf("transformed normal %v not perpendicular to tangent %v", n, tangent)
	}
}

func TestPerspectiveMapsNearAndFar(t *testing.T) {
	p := Perspective(math.Pi/2, 1, 1, 10)
	nearPt := p.MulVec4(Point(V3(0, 0, -1))).PerspectiveDivide()
	farPt := p.MulVec4(Point(V3(0, 0, -10))).PerspectiveDivide()
	if !near(nearPt.Z, -1) || !near(farPt.Z, 1) {
		t.Errorf("depth range = [%v, %v], want [-1, 1]", nearPt.Z, farPt.Z)
	}
}

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		p, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.875},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseOutCubic(tt.p); !near(got, tt.want) {
			t.Errorf("EaseOutCubic(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(20, 3, 15) != 15 || Clamp(1, 3, 15) != 3 || Clamp(6, 3, 15) != 6 {
		t.Error("Clamp did not bound values to range")
	}
}
