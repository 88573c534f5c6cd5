package server

import "testing"

func TestConfigFromLookup(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		debug     bool
		sizeTheta int
		sizeRho   int
		parallel  bool
	}{
		{
			name:      "defaults",
			env:       map[string]string{},
			sizeTheta: 1080,
			sizeRho:   360,
			parallel:  true,
		},
		{
			name: "all set",
			env: map[string]string{
				EnvLogLevel:      "DEBUG",
				EnvLogPolarTheta: "720",
				EnvLogPolarRho:   "180",
				EnvParallel:      "false",
			},
			debug:     true,
			sizeTheta: 720,
			sizeRho:   180,
			parallel:  false,
		},
		{
			name: "invalid values fall back",
			env: map[string]string{
				EnvLogLevel:      "info",
				EnvLogPolarTheta: "-5",
				EnvLogPolarRho:   "many",
				EnvParallel:      "sometimes",
			},
			sizeTheta: 1080,
			sizeRho:   360,
			parallel:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := configFromLookup(func(k string) string { return tt.env[k] })

			if cfg.Debug != tt.debug {
				t.Errorf("Debug: got %v, want %v", cfg.Debug, tt.debug)
			}
			if cfg.Registration.SizeTheta != tt.sizeTheta {
				t.Errorf("SizeTheta: got %d, want %d", cfg.Registration.SizeTheta, tt.sizeTheta)
			}
			if cfg.Registration.SizeRho != tt.sizeRho {
				t.Errorf("SizeRho: got %d, want %d", cfg.Registration.SizeRho, tt.sizeRho)
			}
			if cfg.Registration.Parallel != tt.parallel {
				t.Errorf("Parallel: got %v, want %v", cfg.Registration.Parallel, tt.parallel)
			}
			if err := cfg.Registration.Validate(); err != nil {
				t.Errorf("config should always validate: %v", err)
			}
		})
	}
}
