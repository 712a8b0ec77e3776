package config

import (
	"github.com/spf13/viper"
)

const (
	ModeServer  = "server"
	ModeGateway = "gateway"
)

// Config is the flat option mapping the operator consumes. It is immutable
// for the duration of a single reconciliation run.
type Config struct {
	Port        int    `json:"port" mapstructure:"port"`
	ConsolePort int    `json:"console-port" mapstructure:"console-port"`
	AccessKey   string `json:"access-key" mapstructure:"access-key"`
	SecretKey   string `json:"secret-key" mapstructure:"secret-key"`
	Mode        string `json:"mode" mapstructure:"mode"`

	GatewayStorageService  string `json:"gateway-storage-service" mapstructure:"gateway-storage-service"`
	StorageServiceEndpoint string `json:"storage-service-endpoint" mapstructure:"storage-service-endpoint"`

	SSLKey  string `json:"ssl-key" mapstructure:"ssl-key"`
	SSLCert string `json:"ssl-cert" mapstructure:"ssl-cert"`
	SSLCA   string `json:"ssl-ca" mapstructure:"ssl-ca"`
}

// Load reads operator-wide defaults with viper. The config file is optional;
// built-in defaults match the workload's stock deployment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")

	v.SetDefault("port", 9000)
	v.SetDefault("console-port", 9001)
	v.SetDefault("access-key", "minio")
	v.SetDefault("mode", ModeServer)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Merge overlays the non-zero fields of o on top of c and returns the result.
// Used to apply per-object settings over operator defaults.
func (c Config) Merge(o Config) Config {
	if o.Port != 0 {
		c.Port = o.Port
	}
	if o.ConsolePort != 0 {
		c.ConsolePort = o.ConsolePort
	}
	if o.AccessKey != "" {
		c.AccessKey = o.AccessKey
	}
	if o.SecretKey != "" {
		c.SecretKey = o.SecretKey
	}
	if o.Mode != "" {
		c.Mode = o.Mode
	}
	if o.GatewayStorageService != "" {
		c.GatewayStorageService = o.GatewayStorageService
	}
	if o.StorageServiceEndpoint != "" {
		c.StorageServiceEndpoint = o.StorageServiceEndpoint
	}
	if o.SSLKey != "" {
		c.SSLKey = o.SSLKey
	}
	if o.SSLCert != "" {
		c.SSLCert = o.SSLCert
	}
	if o.SSLCA != "" {
		c.SSLCA = o.SSLCA
	}
	return c
}

// Validate enforces the mode invariant. Gateway mode additionally requires a
// backend identifier; credentials for a workload that cannot start are never
// published, so broadcasting is gated on this too.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeServer:
		return nil
	case ModeGateway:
		if c.GatewayStorageService == "" {
			return Errorf(ReasonMissingBackend,
				"gateway mode requires gateway-storage-service configuration, possible values: s3, azure")
		}
		return nil
	default:
		return Errorf(ReasonInvalidMode, "mode %s is not supported, possible values: server, gateway", c.Mode)
	}
}
