package workload

import (
	"reflect"
	"testing"

	"github.com/minio-ops/minio-operator/internal/config"
)

func serverConfig() config.Config {
	return config.Config{
		Port:        9000,
		ConsolePort: 9001,
		AccessKey:   "minio",
		Mode:        config.ModeServer,
	}
}

func TestBuild_ServerArgs(t *testing.T) {
	spec, err := Build(serverConfig(), "supersecret")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	wantPrefix := []string{"server", "/data", "--certs-dir", CertsDir}
	if len(spec.Args) < len(wantPrefix) || !reflect.DeepEqual(spec.Args[:len(wantPrefix)], wantPrefix) {
		t.Errorf("Args = %v, want prefix %v", spec.Args, wantPrefix)
	}

	wantSuffix := []string{"--console-address", ":9001"}
	got := spec.Args[len(spec.Args)-2:]
	if !reflect.DeepEqual(got, wantSuffix) {
		t.Errorf("Args = %v, want suffix %v", spec.Args, wantSuffix)
	}
}

func TestBuild_GatewayArgs(t *testing.T) {
	tests := []struct {
		name       string
		backend    string
		endpoint   string
		want       []string
		wantReason config.Reason
	}{
		{
			name:    "backend only",
			backend: "s3",
			want:    []string{"gateway", "s3", "--console-address", ":9001"},
		},
		{
			name:     "backend with endpoint",
			backend:  "azure",
			endpoint: "https://blob.example.com",
			want:     []string{"gateway", "azure", "https://blob.example.com", "--console-address", ":9001"},
		},
		{
			name:       "missing backend",
			wantReason: config.ReasonMissingBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := serverConfig()
			cfg.Mode = config.ModeGateway
			cfg.GatewayStorageService = tt.backend
			cfg.StorageServiceEndpoint = tt.endpoint

			spec, err := Build(cfg, "supersecret")
			if tt.wantReason != "" {
				if config.ReasonOf(err) != tt.wantReason {
					t.Fatalf("Build() error = %v, want reason %s", err, tt.wantReason)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if !reflect.DeepEqual(spec.Args, tt.want) {
				t.Errorf("Args = %v, want %v", spec.Args, tt.want)
			}
		})
	}
}

func TestBuild_InvalidMode(t *testing.T) {
	cfg := serverConfig()
	cfg.Mode = "cluster"

	_, err := Build(cfg, "supersecret")
	if config.ReasonOf(err) != config.ReasonInvalidMode {
		t.Errorf("Build() error = %v, want InvalidMode", err)
	}
}

func TestBuild_Environment(t *testing.T) {
	spec, err := Build(serverConfig(), "supersecret")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := map[string]string{
		"MINIO_ROOT_USER":            "minio",
		"MINIO_ROOT_PASSWORD":        "supersecret",
		"MINIO_ACCESS_KEY":           "minio",
		"MINIO_SECRET_KEY":           "supersecret",
		"MINIO_PROMETHEUS_AUTH_TYPE": "public",
	}
	if !reflect.DeepEqual(spec.Env, want) {
		t.Errorf("Env = %v, want %v", spec.Env, want)
	}
}

func TestBuild_TLSMounts(t *testing.T) {
	tests := []struct {
		name          string
		key, cert, ca string
		wantPaths     []string
	}{
		{
			name: "no TLS configured",
		},
		{
			name: "key only is silently ignored",
			key:  "KEY",
		},
		{
			name:      "key and cert",
			key:       "KEY",
			cert:      "CERT",
			wantPaths: []string{CertsDir + "/private.key", CertsDir + "/public.crt"},
		},
		{
			name:      "key cert and ca",
			key:       "KEY",
			cert:      "CERT",
			ca:        "CA",
			wantPaths: []string{CertsDir + "/private.key", CertsDir + "/public.crt", CertsDir + "/CAs/ca.crt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := serverConfig()
			cfg.SSLKey = tt.key
			cfg.SSLCert = tt.cert
			cfg.SSLCA = tt.ca

			spec, err := Build(cfg, "supersecret")
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			var paths []string
			for _, m := range spec.Mounts {
				paths = append(paths, m.Path)
			}
			if !reflect.DeepEqual(paths, tt.wantPaths) {
				t.Errorf("mount paths = %v, want %v", paths, tt.wantPaths)
			}
			if len(spec.Mounts) > 0 && spec.Mounts[0].Mode != 0o600 {
				t.Errorf("private key mode = %o, want 0600", spec.Mounts[0].Mode)
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	cfg := serverConfig()
	cfg.SSLKey = "KEY"
	cfg.SSLCert = "CERT"

	first, err := Build(cfg, "supersecret")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := Build(cfg, "supersecret")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	h1, err := first.Hash()
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := second.Hash()
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if h1 != h2 {
		t.Errorf("hashes differ for identical inputs: %s != %s", h1, h2)
	}
}
