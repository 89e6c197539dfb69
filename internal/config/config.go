package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Database     DatabaseConfig     `toml:"database"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Cache        CacheConfig        `toml:"cache"`
	Redis        RedisConfig        `toml:"redis"`
	TaskService  TaskServiceConfig  `toml:"task_service"`
	Availability AvailabilityConfig `toml:"availability"`
	Warmup       WarmupConfig       `toml:"warmup"`
	Auth         AuthConfig         `toml:"auth"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к базе данных
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CacheConfig настройки кэша доступности
// Backend: "memory" (процессно-локальный) или "redis"
type CacheConfig struct {
	Backend       string `toml:"backend"`
	MaxSize       int    `toml:"max_size"`
	MonthlyTTL    int    `toml:"monthly_ttl"`
	DailyTTL      int    `toml:"daily_ttl"`
	SweepInterval int    `toml:"sweep_interval"`
}

// RedisConfig настройки подключения к Redis (для backend = "redis")
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// TaskServiceConfig настройки клиента внешней системы задач логистики
type TaskServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// AvailabilityConfig параметры вычисления доступности
type AvailabilityConfig struct {
	OpenTime            string `toml:"open_time"`
	CloseTime           string `toml:"close_time"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes"`
}

// WarmupConfig настройки планового прогрева кэша
type WarmupConfig struct {
	Enabled    bool   `toml:"enabled"`
	Schedule   string `toml:"schedule"`
	DaysAhead  int    `toml:"days_ahead"`
	UnitCounts []int  `toml:"unit_counts"`
}

// AuthConfig настройки аутентификации служебных маршрутов
type AuthConfig struct {
	InternalToken string `toml:"internal_token"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaultConfig возвращает конфигурацию со значениями по умолчанию
// Файл конфигурации переопределяет только указанные в нём поля
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{
			File:  "logs/app.log",
			Level: "info",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-availability-service",
		},
		Cache: CacheConfig{
			Backend:       "memory",
			MaxSize:       1000,
			MonthlyTTL:    900,
			DailyTTL:      300,
			SweepInterval: 60,
		},
		TaskService: TaskServiceConfig{
			Timeout: 5,
		},
		Availability: AvailabilityConfig{
			OpenTime:            "08:00",
			CloseTime:           "20:00",
			SlotDurationMinutes: 60,
		},
		Warmup: WarmupConfig{
			Schedule:   "*/30 * * * *",
			DaysAhead:  7,
			UnitCounts: []int{1, 2},
		},
	}
}

func (c *Config) validate() error {
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("config: unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis backend requires redis.addr")
	}
	if c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database user and dbname are required")
	}
	if c.TaskService.URL == "" {
		return fmt.Errorf("config: task_service.url is required")
	}
	return nil
}
