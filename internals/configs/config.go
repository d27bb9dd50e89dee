package configs

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret string

	// R2 is the object-storage configuration (Cloudflare R2, S3-compatible),
	// loaded once at startup and passed explicitly to the storage service.
	R2 R2Config

	// OpenRouter is the LLM gateway configuration for the chat assistant.
	OpenRouter OpenRouterConfig
)

type R2Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Endpoint        string
	// WorkerURL is the public base URL uploaded objects are served from.
	WorkerURL string
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Referer string
	Title   string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] no .env file found, using system environment")
		} else {
			log.Println("[INFO] .env file loaded")
		}
	} else {
		log.Println("[INFO] running on Railway, using system environment")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	}

	R2 = R2Config{
		AccessKeyID:     GetEnv("CF_ACCESS_KEY_ID"),
		SecretAccessKey: GetEnv("CF_SECRET_ACCESS_KEY"),
		Bucket:          GetEnv("CLOUDFLARE_R2_BUCKET", "specs-nexus-files"),
		Endpoint:        GetEnv("CLOUDFLARE_R2_ENDPOINT"),
		WorkerURL:       GetEnv("CLOUDFLARE_WORKER_URL"),
	}

	OpenRouter = OpenRouterConfig{
		APIKey:  GetEnv("OPENROUTER_API_KEY"),
		BaseURL: GetEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:   GetEnv("OPENROUTER_MODEL", "meta-llama/llama-3.3-8b-instruct:free"),
		Referer: GetEnv("OPENROUTER_REFERER", "https://specs-nexus.gordoncollege.edu"),
		Title:   GetEnv("OPENROUTER_TITLE", "SPECS Nexus"),
	}
	if OpenRouter.APIKey == "" {
		log.Println("[WARN] OPENROUTER_API_KEY is not set, chat assistant disabled")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
