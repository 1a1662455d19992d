package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 4, W: 20, H: 15}
	if r.Right() != 30 {
		t.Errorf("Right() = %d, expected 30", r.Right())
	}
	if r.Bottom() != 19 {
		t.Errorf("Bottom() = %d, expected 19", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		if result := Clamp(tc.val, tc.min, tc.max); result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if result := ClampF(tc.val, tc.min, tc.max); result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Errorf("Lerp(2, 4, 0.5) = %f, expected 3", got)
	}
	if got := Lerp(2, 4, 0); got != 2 {
		t.Errorf("Lerp(2, 4, 0) = %f, expected 2", got)
	}
}

func TestColorRGB(t *testing.T) {
	c := RGB(0xC8A0FF)
	if !c.IsRGB() {
		t.Fatal("RGB colour should report IsRGB")
	}
	if c.Packed() != 0xC8A0FF {
		t.Errorf("Packed() = %06x, expected c8a0ff", c.Packed())
	}
	if c.Hex() != "#c8a0ff" {
		t.Errorf("Hex() = %q, expected #c8a0ff", c.Hex())
	}
	if ColorRed.IsRGB() || ColorRed.Hex() != "" {
		t.Error("palette colour should not be RGB")
	}

	half := RGB(0x804020).Shade(0.5)
	if half.Packed() != 0x402010 {
		t.Errorf("Shade(0.5) = %06x, expected 402010", half.Packed())
	}
}
