// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
// Поля читаются из yaml-файла, путь к которому задаётся CONFIG_PATH,
// переменные окружения имеют приоритет над значениями из файла.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"development"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL"`
	App                     `yaml:"app"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
}

// App описывает имя и версию сервиса, отдаваемые в /health.
type App struct {
	Name    string `yaml:"name" env-default:"auth-service"`
	Version string `yaml:"version" env-default:"0.1.0"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"5s"`
}

// JWTToken структура для работы с jwt-токеном сессии.
// TokenTTL одновременно задаёт срок жизни токена и MaxAge cookie.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"168h"`
}

// IsProduction сообщает, работает ли сервис в боевом окружении.
// От этого зависит флаг Secure у cookie сессии и детализация ошибок 500.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// MustLoad функция для загрузки конфига, завершает процесс при любой ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.JWTSecretKey == "" {
		log.Fatal("jwt secret key is not set")
	}
	return &cfg
}
