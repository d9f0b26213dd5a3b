package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	BucketName     string
	UseSSL         bool
	Region         string
	URLExpiry      time.Duration
	PresignURLs    bool
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	AppName    string
	Env        string
	LogLevel   string
	ServerPort int
	DB         DB
	MinIO      MinIO
	Redis      Redis

	// ProfileStore selects the profile field backend: "postgres" or "redis".
	ProfileStore string

	JWTSecretKey  string
	MaxUploadSize int64

	// MaxImagePixels caps width*height of uploaded images before they are decoded.
	MaxImagePixels int

	// SiteOwnerName is the author name used when an author has no display name.
	SiteOwnerName          string
	SiteOwnerLogin         string
	SiteURL                string
	SchemaExportDir        string
	FeaturedImageRendition string
	ActivateOnStart        bool
	MigrationsPath         string

	// Warnings lists the values that could not be parsed and fell back to defaults.
	// They are reported once a logger exists.
	Warnings []string
}

// env reads variables and remembers every value it had to replace with a default.
type env struct {
	warnings []string
}

func (e *env) warn(format string, args ...any) {
	e.warnings = append(e.warnings, fmt.Sprintf(format, args...))
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (e *env) getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		e.warn("invalid boolean for %s, using default %v", key, fallback)
	}
	return fallback
}

func (e *env) getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		e.warn("invalid int for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "portfolio_cms"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func loadMinIO(e *env) MinIO {
	return MinIO{
		Endpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		PublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", "http://localhost:9000"),
		AccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName:     getEnv("MINIO_BUCKET_NAME", "media"),
		UseSSL:         e.getEnvBool("MINIO_USE_SSL", false),
		Region:         getEnv("MINIO_REGION", "us-east-1"),
		URLExpiry:      parseDuration(getEnv("MINIO_URL_EXPIRY", "168h"), 168*time.Hour),
		PresignURLs:    e.getEnvBool("MINIO_PRESIGN_URLS", false),
	}
}

func loadRedis(e *env) Redis {
	return Redis{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       e.getEnvAsInt("REDIS_DB", 0),
	}
}

func LoadConfig() *Config {
	e := &env{}
	if err := godotenv.Load(); err != nil {
		e.warn(".env file not found, using environment variables")
	}

	cfg := &Config{
		AppName:                getEnv("APP_NAME", "portfolio-cms"),
		Env:                    getEnv("APP_ENV", "development"),
		LogLevel:               getEnv("LOG_LEVEL", ""),
		ServerPort:             e.getEnvAsInt("SERVER_PORT", 8080),
		DB:                     LoadDB(),
		MinIO:                  loadMinIO(e),
		Redis:                  loadRedis(e),
		ProfileStore:           getEnv("PROFILE_STORE", "postgres"),
		JWTSecretKey:           getEnv("JWT_SECRET_KEY", ""),
		MaxUploadSize:          parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		MaxImagePixels:         e.getEnvAsInt("MAX_IMAGE_PIXELS", 40_000_000),
		SiteOwnerName:          getEnv("SITE_OWNER_NAME", "Dean Forant"),
		SiteOwnerLogin:         getEnv("SITE_OWNER_LOGIN", ""),
		SiteURL:                getEnv("SITE_URL", "http://localhost:8080"),
		SchemaExportDir:        getEnv("SCHEMA_EXPORT_DIR", "acf-json"),
		FeaturedImageRendition: getEnv("FEATURED_IMAGE_RENDITION", "large"),
		ActivateOnStart:        e.getEnvBool("ACTIVATE_ON_START", true),
		MigrationsPath:         getEnv("MIGRATIONS_PATH", "migrations/001_create_tables.sql"),
	}
	cfg.Warnings = e.warnings
	return cfg
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}
