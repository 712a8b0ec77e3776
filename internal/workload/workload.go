package workload

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/minio-ops/minio-operator/internal/config"
)

const (
	// CertsDir is where the workload looks for TLS material.
	CertsDir = "/minio/.minio/certs"

	// DataDir is the storage root in server mode.
	DataDir = "/data"
)

// Mount is one file the workload expects on disk.
type Mount struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Mode    uint32 `json:"mode"`
}

// Spec is the fully derived runtime configuration of the managed workload.
// It is stateless and recomputed on every event; the host platform restarts
// the workload only when the serialized form changes, so field content must
// be deterministic for fixed inputs.
type Spec struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"environment"`
	Mounts  []Mount           `json:"mounts,omitempty"`
}

// Hash is a stable digest of the spec, used as a restart-avoidance marker on
// the applied object. go-json serializes map keys sorted, so equal specs
// always hash equal.
func (s Spec) Hash() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// Build derives the workload spec from configuration and the resolved root
// credential.
func Build(cfg config.Config, credential string) (Spec, error) {
	args, err := buildArgs(cfg)
	if err != nil {
		return Spec{}, err
	}

	spec := Spec{
		Command: "minio",
		Args:    args,
		Env: map[string]string{
			"MINIO_ROOT_USER":     cfg.AccessKey,
			"MINIO_ROOT_PASSWORD": credential,
			// S3-compatible aliases kept for older SDKs.
			"MINIO_ACCESS_KEY": cfg.AccessKey,
			"MINIO_SECRET_KEY": credential,
			// metrics endpoint stays reachable without credentials
			"MINIO_PROMETHEUS_AUTH_TYPE": "public",
		},
		Mounts: buildTLSMounts(cfg),
	}
	return spec, nil
}

func buildArgs(cfg config.Config) ([]string, error) {
	var args []string

	switch cfg.Mode {
	case config.ModeServer:
		args = []string{"server", DataDir, "--certs-dir", CertsDir}
	case config.ModeGateway:
		if cfg.GatewayStorageService == "" {
			return nil, config.Errorf(config.ReasonMissingBackend,
				"gateway mode requires gateway-storage-service configuration, possible values: s3, azure")
		}
		args = []string{"gateway", cfg.GatewayStorageService}
		if cfg.StorageServiceEndpoint != "" {
			args = append(args, cfg.StorageServiceEndpoint)
		}
	default:
		return nil, config.Errorf(config.ReasonInvalidMode,
			"mode %s is not supported, possible values: server, gateway", cfg.Mode)
	}

	return append(args, "--console-address", ":"+strconv.Itoa(cfg.ConsolePort)), nil
}

// buildTLSMounts lays out TLS material the way the workload expects it. Both
// key and certificate must be configured; anything less means TLS stays off,
// silently.
func buildTLSMounts(cfg config.Config) []Mount {
	if cfg.SSLKey == "" || cfg.SSLCert == "" {
		return nil
	}
	mounts := []Mount{
		{Path: CertsDir + "/private.key", Content: cfg.SSLKey, Mode: 0o600},
		{Path: CertsDir + "/public.crt", Content: cfg.SSLCert, Mode: 0o644},
	}
	if cfg.SSLCA != "" {
		mounts = append(mounts, Mount{Path: CertsDir + "/CAs/ca.crt", Content: cfg.SSLCA, Mode: 0o644})
	}
	return mounts
}
