package common

import "testing"

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 100, 100)
	b := NewRect(50, 50, 100, 100)

	got := a.Intersect(b)
	want := Rect{MinX: 50, MinY: 50, MaxX: 100, MaxY: 100}
	if got != want {
		t.Fatalf("Intersect = %+v, want %+v", got, want)
	}

	disjoint := a.Intersect(NewRect(200, 200, 10, 10))
	if !disjoint.IsEmpty() {
		t.Fatalf("disjoint intersection should be empty, got %+v", disjoint)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	if !r.Contains(10, 10) {
		t.Error("min corner should be inside (inclusive)")
	}
	if r.Contains(30, 30) {
		t.Error("max corner should be outside (exclusive)")
	}
	if r.Contains(5, 15) {
		t.Error("point left of rect should be outside")
	}
}

func TestScissorClampsToTarget(t *testing.T) {
	// A clip larger than the target clamps to the full target.
	r := Rect{MinX: -100, MinY: -100, MaxX: 5000, MaxY: 5000}
	s, ok := r.Scissor(1, 800, 600)
	if !ok {
		t.Fatal("expected non-empty scissor")
	}
	want := ScissorRect{X: 0, Y: 0, Width: 800, Height: 600}
	if s != want {
		t.Fatalf("Scissor = %+v, want %+v", s, want)
	}
}

func TestScissorAppliesScale(t *testing.T) {
	r := Rect{MinX: 10, MinY: 20, MaxX: 110, MaxY: 220}
	s, ok := r.Scissor(2, 1000, 1000)
	if !ok {
		t.Fatal("expected non-empty scissor")
	}
	want := ScissorRect{X: 20, Y: 40, Width: 200, Height: 400}
	if s != want {
		t.Fatalf("Scissor = %+v, want %+v", s, want)
	}
}

func TestScissorEmptyCases(t *testing.T) {
	cases := []struct {
		name string
		r    Rect
	}{
		{"inverted", Rect{MinX: 50, MinY: 50, MaxX: 10, MaxY: 10}},
		{"zero area", Rect{MinX: 10, MinY: 10, MaxX: 10, MaxY: 40}},
		{"fully outside", Rect{MinX: 900, MinY: 900, MaxX: 950, MaxY: 950}},
		{"fully negative", Rect{MinX: -50, MinY: -50, MaxX: -10, MaxY: -10}},
		{"sub-pixel", Rect{MinX: 5.1, MinY: 5.1, MaxX: 5.2, MaxY: 5.2}},
		{"sub-pixel width", Rect{MinX: 5.1, MinY: 10, MaxX: 5.2, MaxY: 40}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := tc.r.Scissor(1, 800, 600); ok {
				t.Fatalf("expected empty scissor for %+v", tc.r)
			}
		})
	}
}
