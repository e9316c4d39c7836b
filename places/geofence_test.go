package places

import "testing"

func TestHaversine(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolKm                  float64
	}{
		// Central to Tsim Sha Tsui, across Victoria Harbour
		{"across the harbour", 22.2819, 114.1582, 22.2976, 114.1722, 2.3, 0.5},
		// Tokyo to Osaka
		{"tokyo to osaka", 35.6762, 139.6503, 34.6937, 135.5023, 400, 20},
		{"zero distance", 51.5, -0.12, 51.5, -0.12, 0, 0.001},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKm := haversine(tt.lat1, tt.lng1, tt.lat2, tt.lng2) / 1000
			if diff := gotKm - tt.wantKm; diff > tt.tolKm || diff < -tt.tolKm {
				t.Errorf("haversine = %.2fkm, want %.2fkm ±%.2f", gotKm, tt.wantKm, tt.tolKm)
			}
		})
	}
}
