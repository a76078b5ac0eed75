package postgres

import (
	"strconv"
	"time"
)

// Config holds connection and pool settings for the postgres NodeStore
// backend. Grounded on the teacher's
// pkg/store/metadata/postgres.PostgresMetadataStoreConfig, trimmed to the
// subset a single flat `nodes` table needs.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"ssl_mode"`

	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`

	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// ApplyDefaults fills unset pool-sizing and timeout fields.
func (c *Config) ApplyDefaults() {
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.MaxConns == 0 {
		c.MaxConns = 10
	}
	if c.MinConns == 0 {
		c.MinConns = 2
	}
	if c.MaxConnLifetime == 0 {
		c.MaxConnLifetime = time.Hour
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 5 * time.Second
	}
}

func (c Config) connString() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" dbname=" + c.Database +
		" user=" + c.User +
		" password=" + c.Password +
		" sslmode=" + c.SSLMode
}
