package configs

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Config is assembled once in main from the environment.
type Config struct {
	Port        string
	Environment string
	JWTSecret   string
	JWTTTL      time.Duration
	AreaTable   string
	Reclassify  string
	SuperName   string
	SuperEmail  string
	SuperPass   string
	OSSPrefix   string
	LogSQL      bool
	SlowSQL     time.Duration
	DBSSLMode   string
	DBMaxOpen   int
	DBMaxIdle   int
	Timezone    string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using system environment")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system environment")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || strings.TrimSpace(value) == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getInt(key string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return b
}

func Load() Config {
	cfg := Config{
		Port:        GetEnv("PORT", "3000"),
		Environment: GetEnv("APP_ENV", "development"),
		JWTSecret:   GetEnv("JWT_SECRET"),
		JWTTTL:      time.Duration(getInt("JWT_TTL_HOURS", 24)) * time.Hour,
		AreaTable:   GetEnv("AREA_TABLE_PATH"),
		Reclassify:  GetEnv("RECLASSIFY_CRON", "0 3 * * *"),
		SuperName:   GetEnv("SUPERADMIN_NAME", "Super Admin"),
		SuperEmail:  GetEnv("SUPERADMIN_EMAIL"),
		SuperPass:   GetEnv("SUPERADMIN_PASSWORD"),
		OSSPrefix:   GetEnv("ALI_OSS_PREFIX", "medaid"),
		LogSQL:      getBool("LOG_SQL", false),
		SlowSQL:     time.Duration(getInt("SLOW_SQL_MS", 200)) * time.Millisecond,
		DBSSLMode:   GetEnv("DB_SSLMODE", "require"),
		DBMaxOpen:   getInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdle:   getInt("DB_MAX_IDLE_CONNS", 10),
		Timezone:    GetEnv("APP_TIMEZONE", "Asia/Karachi"),
	}
	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	} else {
		log.Println("✅ JWT_SECRET loaded.")
	}
	return cfg
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

// NewGormLogger logs errors and slow statements; every statement too when verbose.
func NewGormLogger(slow time.Duration, verbose bool) gormLogger.Interface {
	level := gormLogger.Warn
	if verbose {
		level = gormLogger.Info
	}
	return &GormLogger{SlowThreshold: slow, LogLevel: level}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && err != gormLogger.ErrRecordNotFound && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
