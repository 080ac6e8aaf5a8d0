package domain

import "testing"

func TestAreaBandOf(t *testing.T) {
	tests := []struct {
		area float64
		want AreaBand
	}{
		{0, AreaBandUnder40},
		{39.9, AreaBandUnder40},
		{40, AreaBand40to60},
		{59.9, AreaBand40to60},
		{60, AreaBand60to80},
		{79.9, AreaBand60to80},
		{80, AreaBand80to100},
		{99.9, AreaBand80to100},
		{100, AreaBandOver100},
		{250, AreaBandOver100},
	}

	for _, tt := range tests {
		if got := AreaBandOf(tt.area); got != tt.want {
			t.Errorf("AreaBandOf(%.1f) = %q, want %q", tt.area, got, tt.want)
		}
	}
}
