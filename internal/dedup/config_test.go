package dedup

import "testing"

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "no environment variables uses defaults",
			envVars: map[string]string{},
			check: func(t *testing.T, cfg Config) {
				defaults := DefaultConfig()
				if cfg != defaults {
					t.Errorf("cfg = %+v, want defaults %+v", cfg, defaults)
				}
			},
		},
		{
			name: "valid custom configuration",
			envVars: map[string]string{
				"NCDEDUP_THRESHOLD":   "92",
				"NCDEDUP_MATCH_NAME":  "false",
				"NCDEDUP_MATCH_PHONE": "false",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.Threshold != 92 {
					t.Errorf("Threshold = %d, want 92", cfg.Threshold)
				}
				if cfg.MatchByName || cfg.MatchByPhone {
					t.Error("name and phone rules should be disabled")
				}
				if !cfg.MatchByEmail {
					t.Error("email rule should stay enabled")
				}
			},
		},
		{
			name:    "invalid threshold value",
			envVars: map[string]string{"NCDEDUP_THRESHOLD": "abc"},
			wantErr: true,
		},
		{
			name:    "threshold out of range",
			envVars: map[string]string{"NCDEDUP_THRESHOLD": "101"},
			wantErr: true,
		},
		{
			name:    "invalid boolean",
			envVars: map[string]string{"NCDEDUP_MATCH_EMAIL": "maybe"},
			wantErr: true,
		},
		{
			name: "all rules disabled is rejected",
			envVars: map[string]string{
				"NCDEDUP_MATCH_EMAIL": "false",
				"NCDEDUP_MATCH_PHONE": "false",
				"NCDEDUP_MATCH_NAME":  "false",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			cfg, err := ConfigFromEnv()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cfg.Threshold = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative threshold should be rejected")
	}
}
