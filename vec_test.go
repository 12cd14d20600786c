package isoscene

import (
	"math"
	"testing"
)

func TestVec2Arithmetic(t *testing.T) {
	v := V2(3, 4)
	w := V2(1, -2)

	if got := v.Add(w); got != V2(4, 2) {
		t.Errorf("Add = %v, want {4 2}", got)
	}
	if got := v.Sub(w); got != V2(2, 6) {
		t.Errorf("Sub = %v, want {2 6}", got)
	}
	if got := v.Mul(2); got != V2(6, 8) {
		t.Errorf("Mul = %v, want {6 8}", got)
	}
	if got := v.Dot(w); got != -5 {
		t.Errorf("Dot = %v, want -5", got)
	}
}

func TestVec2Length(t *testing.T) {
	v := V2(3, 4)
	if v.Length() != 5 {
		t.Errorf("Length = %v, want 5", v.Length())
	}
	if v.LengthSq() != 25 {
		t.Errorf("LengthSq = %v, want 25", v.LengthSq())
	}
}

func TestVec2Normalize(t *testing.T) {
	n := V2(10, 0).Normalize()
	if n != V2(1, 0) {
		t.Errorf("Normalize = %v, want {1 0}", n)
	}

	// Zero vector stays zero rather than producing NaN.
	z := V2(0, 0).Normalize()
	if z != (Vec2{}) {
		t.Errorf("Normalize(zero) = %v, want zero", z)
	}
}

func TestVec2Perp(t *testing.T) {
	p := V2(1, 0).Perp()
	if p != V2(0, 1) {
		t.Errorf("Perp = %v, want {0 1}", p)
	}
	if V2(2, 3).Dot(V2(2, 3).Perp()) != 0 {
		t.Error("Perp not perpendicular")
	}
}

func TestVec2Lerp(t *testing.T) {
	a := V2(0, 0)
	b := V2(10, -10)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	mid := a.Lerp(b, 0.5)
	if math.Abs(mid.X-5) > 1e-12 || math.Abs(mid.Y+5) > 1e-12 {
		t.Errorf("Lerp(0.5) = %v, want {5 -5}", mid)
	}
}
