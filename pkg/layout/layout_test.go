package layout

import "testing"

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		in            string
		maxLen        int
		want          string
		wantTruncated bool
	}{
		{"hello", 60, "hello", false},
		{"  hello   world  ", 60, "hello world", false},
		{"a\tb\nc", 60, "a b c", false},
		{"", 60, "", false},
		{"abcdef", 5, "abcd…", true},
		{"abc def", 5, "abc…", true}, // trailing space trimmed before ellipsis
		{"abcdef", 0, "abcdef", false},
		{"abcdef", -1, "abcdef", false},
	}

	for _, tt := range tests {
		got, truncated := CleanLabel(tt.in, tt.maxLen)
		if got != tt.want || truncated != tt.wantTruncated {
			t.Errorf("CleanLabel(%q, %d) = %q, %v; want %q, %v",
				tt.in, tt.maxLen, got, truncated, tt.want, tt.wantTruncated)
		}
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{"Water Cycle", "water cycle", true},
		{"WaterCycle", "water cycle", true},
		{"water\tcycle", " WATER CYCLE ", true},
		{"water cycle", "water cycles", false},
	}

	for _, tt := range tests {
		if got := CanonicalKey(tt.a) == CanonicalKey(tt.b); got != tt.equal {
			t.Errorf("CanonicalKey(%q) == CanonicalKey(%q) = %v, want %v", tt.a, tt.b, got, tt.equal)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.5, -0.95, 0.95); got != 0.95 {
		t.Errorf("Clamp(1.5) = %v", got)
	}
	if got := Clamp(-2, -0.95, 0.95); got != -0.95 {
		t.Errorf("Clamp(-2) = %v", got)
	}
	if got := Clamp(0.3, -0.95, 0.95); got != 0.3 {
		t.Errorf("Clamp(0.3) = %v", got)
	}
}

func TestCurvatureAt(t *testing.T) {
	want := []float64{0, 12, -12, 24, -24, 0, 12}
	for i, w := range want {
		if got := CurvatureAt(i); got != w {
			t.Errorf("CurvatureAt(%d) = %v, want %v", i, got, w)
		}
	}
}
