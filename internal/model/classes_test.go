package model

import "testing"

func TestClassOf(t *testing.T) {
	tests := []struct {
		name string
		want InsulinClass
	}{
		{"Tresiba", ClassStandardLongActing},
		{"Lantus", ClassStandardLongActing},
		{"Awiqli", ClassUltraLongActing},
		{"NovoRapid", ClassRapidActing},
		{"novorapid", ClassRapidActing},
		{"Humulin N", ClassUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassOf(tt.name); got != tt.want {
				t.Errorf("ClassOf(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseClass(t *testing.T) {
	for in, want := range map[string]InsulinClass{
		"standard-long-acting": ClassStandardLongActing,
		"Long-Acting":          ClassStandardLongActing,
		"ultra_long_acting":    ClassUltraLongActing,
		"Rapid Acting":         ClassRapidActing,
		"rapid":                ClassRapidActing,
	} {
		got, err := ParseClass(in)
		if err != nil {
			t.Fatalf("ParseClass(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseClass(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseClass("intermediate"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestInsulinClass_TextRoundTrip(t *testing.T) {
	for _, c := range append([]InsulinClass{ClassUnclassified}, AllClasses...) {
		b, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var got InsulinClass
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if got != c {
			t.Errorf("round trip %v -> %q -> %v", c, b, got)
		}
	}
}
