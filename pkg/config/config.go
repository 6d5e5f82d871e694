package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Upload     UploadConfig
	Extractor  ExtractorConfig
	Summarizer SummarizerConfig
	GigaChat   GigaChatConfig
	Remote     RemoteConfig
	Cache      CacheConfig
	Redis      RedisConfig
	Pipeline   PipelineConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type UploadConfig struct {
	Dir string
}

type ExtractorConfig struct {
	MaxFileSize int64 // bytes
}

type SummarizerConfig struct {
	Backend          string // extractive, gigachat or remote
	Style            string // extractive or abstractive
	MaxSummaryLength int    // runes, 0 = unbounded
	WindowSize       int    // runes per window for oversized texts
	Overlap          int    // runes shared between adjacent windows
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

type RemoteConfig struct {
	URL     string
	Timeout time.Duration
}

type CacheConfig struct {
	Backend string // memory, redis or none
	TTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type PipelineConfig struct {
	Workers int
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// If no .env file found, continue with environment variables
	// directly (useful for Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	maxFileSizeMB, _ := strconv.Atoi(getEnv("EXTRACTOR_MAX_FILE_SIZE_MB", "32"))
	maxSummaryLength, _ := strconv.Atoi(getEnv("SUMMARIZER_MAX_LENGTH", "1000"))
	windowSize, _ := strconv.Atoi(getEnv("SUMMARIZER_WINDOW_SIZE", "4000"))
	overlap, _ := strconv.Atoi(getEnv("SUMMARIZER_WINDOW_OVERLAP", "200"))
	remoteTimeout, _ := strconv.Atoi(getEnv("REMOTE_SUMMARIZER_TIMEOUT", "120"))
	cacheTTL, _ := strconv.Atoi(getEnv("CACHE_TTL_HOURS", "24"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	workers, _ := strconv.Atoi(getEnv("PIPELINE_WORKERS", "4"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "docman"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Upload: UploadConfig{
			Dir: getEnv("UPLOAD_DIR", "uploads"),
		},
		Extractor: ExtractorConfig{
			MaxFileSize: int64(maxFileSizeMB) * 1024 * 1024,
		},
		Summarizer: SummarizerConfig{
			Backend:          getEnv("SUMMARIZER_BACKEND", "extractive"),
			Style:            getEnv("SUMMARIZER_STYLE", "extractive"),
			MaxSummaryLength: maxSummaryLength,
			WindowSize:       windowSize,
			Overlap:          overlap,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Remote: RemoteConfig{
			URL:     getEnv("REMOTE_SUMMARIZER_URL", "http://localhost:8000/summarize"),
			Timeout: time.Duration(remoteTimeout) * time.Second,
		},
		Cache: CacheConfig{
			Backend: getEnv("CACHE_BACKEND", "memory"),
			TTL:     time.Duration(cacheTTL) * time.Hour,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Pipeline: PipelineConfig{
			Workers: workers,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
