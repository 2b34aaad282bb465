package common

import (
	"encoding/hex"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_EntropyHint(t *testing.T) {
	const n = 32
	a, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two random strings are identical: %q", a)
	}
}

// ---------- ClampAutosaveSeconds ----------

func TestClampAutosaveSeconds(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero falls back to default", 0, AutosaveDefaultSeconds},
		{"negative falls back to default", -5, AutosaveDefaultSeconds},
		{"below minimum", 3, AutosaveMinSeconds},
		{"at minimum", 10, 10},
		{"in range", 45, 45},
		{"at maximum", 300, 300},
		{"above maximum", 3600, AutosaveMaxSeconds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampAutosaveSeconds(tt.in); got != tt.want {
				t.Errorf("ClampAutosaveSeconds(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidTheme(t *testing.T) {
	for _, s := range []string{ThemeLight, ThemeDark, ThemeSystem} {
		if !ValidTheme(s) {
			t.Errorf("ValidTheme(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "solarized", "Dark"} {
		if ValidTheme(s) {
			t.Errorf("ValidTheme(%q) = true, want false", s)
		}
	}
}
