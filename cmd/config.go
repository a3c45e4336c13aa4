package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"runplanner/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Sync transports carrying refresh signals between planner instances.
const (
	SyncMemory   = "memory"
	SyncPostgres = "postgres"
	SyncMQTT     = "mqtt"
)

type Config struct {
	HTTPPort   string `koanf:"http_port"`
	DBHost     string `koanf:"db_host"`
	DBPort     string `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`
	DBSslMode  string `koanf:"db_sslmode"`

	SyncTransport string `koanf:"sync_transport"`
	MQTTBroker    string `koanf:"mqtt_broker"`
	MQTTClientID  string `koanf:"mqtt_client_id"`
	MQTTUsername  string `koanf:"mqtt_username"`
	MQTTPassword  string `koanf:"mqtt_password"`
	MQTTQoS       int    `koanf:"mqtt_qos"`

	ZonesFile       string        `koanf:"zones_file"`
	AuditSchedule   string        `koanf:"audit_schedule"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoadConfig reads envFile into the process environment, if it exists, and
// then builds the configuration from the environment. Variables already set
// in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) SetDefaults() {
	if c.HTTPPort == "" {
		c.HTTPPort = "8080"
	}
	if c.DBPort == "" {
		c.DBPort = "5432"
	}
	if c.DBSslMode == "" {
		c.DBSslMode = "disable"
	}
	if c.SyncTransport == "" {
		c.SyncTransport = SyncMemory
	}
	if c.MQTTClientID == "" {
		c.MQTTClientID = "runplanner"
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

func (c Config) Validate() error {
	var errs []error
	switch c.SyncTransport {
	case SyncMemory, SyncPostgres:
	case SyncMQTT:
		if c.MQTTBroker == "" {
			errs = append(errs, errors.New("MQTT_BROKER is required when SYNC_TRANSPORT is mqtt"))
		}
	default:
		errs = append(errs, fmt.Errorf("SYNC_TRANSPORT %q is not one of memory, postgres, mqtt", c.SyncTransport))
	}
	if c.MQTTQoS < 0 || c.MQTTQoS > 2 {
		errs = append(errs, fmt.Errorf("MQTT_QOS %d is out of range 0..2", c.MQTTQoS))
	}
	return errors.Join(errs...)
}

// DSN is the libpq connection string for the configured database.
func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
