package config

import "time"

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type AuthConfig struct {
	JWTSecret            string        `mapstructure:"jwt_secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration"`
	RefreshTokenEnabled  bool          `mapstructure:"refresh_token_enabled"`

	// AdvanceBaseline controls whether a notified login moves the stored
	// baseline address to the new one. When false, the first address a user
	// ever logged in from stays the baseline.
	AdvanceBaseline bool `mapstructure:"advance_baseline"`
}

type GeoConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type MailConfig struct {
	APIKey            string `mapstructure:"api_key"`
	FromEmail         string `mapstructure:"from_email"`
	FromName          string `mapstructure:"from_name"`
	ChangePasswordURL string `mapstructure:"change_password_url"`
}

type NotifyConfig struct {
	RedisAddr      string        `mapstructure:"redis_addr"`
	RedisPassword  string        `mapstructure:"redis_password"`
	RedisDB        int           `mapstructure:"redis_db"`
	QueueKey       string        `mapstructure:"queue_key"`
	DequeueTimeout time.Duration `mapstructure:"dequeue_timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
}

type AppConfig struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Geo      GeoConfig      `mapstructure:"geo"`
	Mail     MailConfig     `mapstructure:"mail"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}
