package domain

import "testing"

func TestNormalizeDistrict(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Приморский", "Приморский"},
		{"приморский район", "Приморский"},
		{"Приморский р-н", "Приморский"},
		{"район Приморский", "Приморский"},
		{"  Невский  ", "Невский"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDistrict(tt.in); got != tt.want {
			t.Errorf("NormalizeDistrict(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDistrictsMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Приморский", "приморский район", true},
		{"Невский", "Невский р-н", true},
		{"Приморский", "Невский", false},
		{"", "Невский", false},
		{"Невский", "", false},
	}

	for _, tt := range tests {
		if got := DistrictsMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("DistrictsMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMetroStationsMatch(t *testing.T) {
	if !MetroStationsMatch("Беговая", " беговая ") {
		t.Error("expected case-insensitive match with trimmed spaces")
	}
	if MetroStationsMatch("Беговая", "Пионерская") {
		t.Error("different stations must not match")
	}
	if MetroStationsMatch("", "Беговая") {
		t.Error("empty station must not match")
	}
}
