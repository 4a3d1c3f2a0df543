package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "touching edges do not overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 40, 40),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectClampInside(t *testing.T) {
	bounds := NewRect(0, 0, 100, 50)

	tests := []struct {
		name string
		box  Rect
		want Rect
	}{
		{"inside untouched", NewRect(10, 10, 5, 5), NewRect(10, 10, 5, 5)},
		{"past left", NewRect(-3, 10, 5, 5), NewRect(0, 10, 5, 5)},
		{"past right", NewRect(98, 10, 5, 5), NewRect(95, 10, 5, 5)},
		{"past top", NewRect(10, -0.5, 5, 5), NewRect(10, 0, 5, 5)},
		{"past bottom", NewRect(10, 49, 5, 5), NewRect(10, 45, 5, 5)},
		{"corner", NewRect(120, 70, 5, 5), NewRect(95, 45, 5, 5)},
		{"wider than bounds", NewRect(20, 10, 150, 5), NewRect(0, 10, 150, 5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := bounds.ClampInside(tc.box)
			if got != tc.want {
				t.Errorf("ClampInside(%v) = %v, expected %v", tc.box, got, tc.want)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 100, 60).Inset(10)
	if r != NewRect(10, 10, 80, 40) {
		t.Errorf("Inset(10) = %v, expected {10 10 80 40}", r)
	}

	collapsed := NewRect(0, 0, 10, 10).Inset(20)
	if collapsed.W != 0 || collapsed.H != 0 {
		t.Errorf("over-large inset should collapse, got %v", collapsed)
	}
	if collapsed.X != 5 || collapsed.Y != 5 {
		t.Errorf("collapsed inset should sit at the center, got %v", collapsed)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	if !r.ContainsRect(NewRect(10, 10, 20, 15)) {
		t.Error("ContainsRect should accept an identical rect")
	}
	if r.ContainsRect(NewRect(11, 10, 20, 15)) {
		t.Error("ContainsRect should reject a rect crossing the right edge")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %v, expected 0", got)
	}
}
