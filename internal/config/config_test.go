package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Port != 9000 {
		t.Errorf("Port = %d, want 9000", c.Port)
	}
	if c.ConsolePort != 9001 {
		t.Errorf("ConsolePort = %d, want 9001", c.ConsolePort)
	}
	if c.AccessKey != "minio" {
		t.Errorf("AccessKey = %q, want %q", c.AccessKey, "minio")
	}
	if c.Mode != ModeServer {
		t.Errorf("Mode = %q, want %q", c.Mode, ModeServer)
	}
}

func TestMerge(t *testing.T) {
	base := Config{Port: 9000, ConsolePort: 9001, AccessKey: "minio", Mode: ModeServer}

	got := base.Merge(Config{Port: 9100, Mode: ModeGateway, GatewayStorageService: "s3"})

	if got.Port != 9100 {
		t.Errorf("Port = %d, want 9100", got.Port)
	}
	if got.ConsolePort != 9001 {
		t.Errorf("ConsolePort = %d, want 9001 (kept from base)", got.ConsolePort)
	}
	if got.AccessKey != "minio" {
		t.Errorf("AccessKey = %q, want %q (kept from base)", got.AccessKey, "minio")
	}
	if got.Mode != ModeGateway {
		t.Errorf("Mode = %q, want %q", got.Mode, ModeGateway)
	}
	if got.GatewayStorageService != "s3" {
		t.Errorf("GatewayStorageService = %q, want %q", got.GatewayStorageService, "s3")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantReason Reason
	}{
		{
			name: "server mode",
			cfg:  Config{Mode: ModeServer},
		},
		{
			name: "gateway with backend",
			cfg:  Config{Mode: ModeGateway, GatewayStorageService: "azure"},
		},
		{
			name:       "gateway without backend",
			cfg:        Config{Mode: ModeGateway},
			wantReason: ReasonMissingBackend,
		},
		{
			name:       "unknown mode",
			cfg:        Config{Mode: "cluster"},
			wantReason: ReasonInvalidMode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantReason == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want reason %v", tt.wantReason)
			}
			if got := ReasonOf(err); got != tt.wantReason {
				t.Errorf("ReasonOf() = %v, want %v", got, tt.wantReason)
			}
		})
	}
}
