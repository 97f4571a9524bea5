package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Attendance AttendanceConfig `mapstructure:"attendance"`
	Leave      LeaveConfig      `mapstructure:"leave"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type KafkaConfig struct {
	Broker string `mapstructure:"broker"`
}

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// AttendanceConfig carries the office timing rules applied by the attendance
// ledger: the late cutoff, the hour at which the nightly sweep closes open
// check-ins, and the minimum working hours for a full day.
type AttendanceConfig struct {
	LateCutoffHour   int     `mapstructure:"late_cutoff_hour"`
	LateCutoffMinute int     `mapstructure:"late_cutoff_minute"`
	SweepHour        int     `mapstructure:"sweep_hour"`
	MinFullDayHours  float64 `mapstructure:"min_full_day_hours"`
}

type LeaveConfig struct {
	CasualLeavePerYear float64 `mapstructure:"casual_leave_per_year"`
}

// Load reads configuration with precedence: env vars > config file > defaults.
// Env vars use the HRMS_ prefix with dots replaced by underscores
// (e.g., HRMS_DB_HOST).
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.name", "hrms")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("kafka.broker", "localhost:9092")

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "168h")

	v.SetDefault("attendance.late_cutoff_hour", 9)
	v.SetDefault("attendance.late_cutoff_minute", 30)
	v.SetDefault("attendance.sweep_hour", 19)
	v.SetDefault("attendance.min_full_day_hours", 4)

	v.SetDefault("leave.casual_leave_per_year", 12)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("HRMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// Config file absent: defaults and env vars only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config validation failed: auth.jwt_secret must not be empty")
	}
	if c.Attendance.SweepHour < 0 || c.Attendance.SweepHour > 23 {
		return fmt.Errorf("config validation failed: attendance.sweep_hour must be within 0-23")
	}
	if c.Attendance.MinFullDayHours <= 0 {
		return fmt.Errorf("config validation failed: attendance.min_full_day_hours must be positive")
	}
	return nil
}
