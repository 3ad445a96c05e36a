package vecmath

import "testing"

// A V3 slice of 13 flattens to 52 floats, which leaves a nonzero remainder
// (the tail path) under 8 or 16 lanes; under 4 lanes 52 divides evenly, so
// only the full-vector path runs there.
const batchTestN = 13

func TestAddSliceV3(t *testing.T) {
	dst := make([]V3, batchTestN)
	rhs := make([]V3, batchTestN)
	for i := range dst {
		dst[i] = NewV3(float32(i), 1, 0)
		rhs[i] = NewV3(1, float32(i), 2)
	}
	AddSliceV3(dst, rhs)
	for i, v := range dst {
		want := NewV3(float32(i)+1, 1+float32(i), 2)
		if v != want {
			t.Fatalf("dst[%d] = %+v, want %+v", i, v, want)
		}
	}
}

func TestAddMulSliceV3(t *testing.T) {
	dst := make([]V3, batchTestN)
	rhs := make([]V3, batchTestN)
	for i := range dst {
		dst[i] = NewV3(1, 1, 1)
		rhs[i] = NewV3(float32(i), 2, 0)
	}
	AddMulSliceV3(dst, rhs, 2)
	for i, v := range dst {
		want := NewV3(1+float32(i)*2, 5, 1)
		if v != want {
			t.Fatalf("dst[%d] = %+v, want %+v", i, v, want)
		}
	}
}

func TestScaleSliceV3(t *testing.T) {
	dst := make([]V3, batchTestN)
	for i := range dst {
		dst[i] = NewV3(float32(i), 1, -1)
	}
	ScaleSliceV3(dst, 3)
	for i, v := range dst {
		want := NewV3(float32(i)*3, 3, -3)
		if v != want {
			t.Fatalf("dst[%d] = %+v, want %+v", i, v, want)
		}
	}
}

func TestDotSliceV3MatchesScalar(t *testing.T) {
	a := make([]V3, batchTestN)
	b := make([]V3, batchTestN)
	var want float32
	for i := range a {
		a[i] = NewV3(float32(i), 1, -float32(i))
		b[i] = NewV3(2, float32(i), 1)
		want += a[i].X*b[i].X + a[i].Y*b[i].Y + a[i].Z*b[i].Z
	}
	got := DotSliceV3(a, b)
	if diff := got - want; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("DotSliceV3 = %v, want %v", got, want)
	}
}

func TestDotSliceV2(t *testing.T) {
	a := []V2{{X: 1, Y: 2}, {X: 3, Y: 4}}
	b := []V2{{X: 5, Y: 6}, {X: 7, Y: 8}}
	want := float32(1*5 + 2*6 + 3*7 + 4*8)
	if got := DotSliceV2(a, b); got != want {
		t.Errorf("DotSliceV2 = %v, want %v", got, want)
	}
}

func TestDotSliceV4(t *testing.T) {
	a := []V4{{X: 1, Y: 1, Z: 1, W: 1}}
	b := []V4{{X: 1, Y: 2, Z: 3, W: 4}}
	want := float32(1 + 2 + 3 + 4)
	if got := DotSliceV4(a, b); got != want {
		t.Errorf("DotSliceV4 = %v, want %v", got, want)
	}
}

func TestDotSliceEmpty(t *testing.T) {
	if got := DotSliceV3(nil, nil); got != 0 {
		t.Errorf("DotSliceV3(nil, nil) = %v, want 0", got)
	}
}
