package config

import "testing"

func TestApplyViewPreset(t *testing.T) {
	tests := []struct {
		preset  ViewPreset
		wantFOV float64
		wantErr bool
	}{
		{"", 0.66, false},
		{ViewNarrow, 0.45, false},
		{ViewNormal, 0.66, false},
		{ViewWide, 0.9, false},
		{"fisheye", 0.66, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultEngineConfig()
			err := ApplyViewPreset(&cfg, tc.preset)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ApplyViewPreset(%q) error = %v, wantErr %v", tc.preset, err, tc.wantErr)
			}
			if cfg.Camera.FOV != tc.wantFOV {
				t.Errorf("FOV = %v, expected %v", cfg.Camera.FOV, tc.wantFOV)
			}
		})
	}
}
