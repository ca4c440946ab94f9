package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// CarsSortOrder controls GET /cars ordering by creation time: "asc" or "desc".
	CarsSortOrder   string
	LatestCarsLimit int
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "rentwheels"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 5000))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "rentwheels"))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", ""))
	cfg.JWTIssuer = cast.ToString(getOrReturnDefault("JWT_ISSUER", "rentwheels"))
	cfg.JWTAudience = cast.ToString(getOrReturnDefault("JWT_AUDIENCE", ""))

	cfg.CarsSortOrder = cast.ToString(getOrReturnDefault("CARS_SORT_ORDER", "desc"))
	cfg.LatestCarsLimit = cast.ToInt(getOrReturnDefault("LATEST_CARS_LIMIT", 6))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
