package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetPath      string
	DatasetSeparator string
	DatasetEncoding  string
	WatchDataset     bool

	ListenAddr string
	LogLevel   string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	MaxRetries       int

	CSVExportPath string
	SnapshotPath  string
	ChromeBin     string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DatasetPath:      getEnv("DATASET_PATH", "./data/bestsellers.csv"),
		DatasetSeparator: getEnv("DATASET_SEPARATOR", ";"),
		DatasetEncoding:  getEnv("DATASET_ENCODING", "latin1"),
		WatchDataset:     getEnvBool("WATCH_DATASET", true),

		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "books"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "books123"),
		PostgresDB:       getEnv("POSTGRES_DB", "bestsellers_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		MaxRetries:       getEnvInt("MAX_RETRIES", 3),

		CSVExportPath: getEnv("CSV_EXPORT_PATH", "./output/filtered_books.csv"),
		SnapshotPath:  getEnv("SNAPSHOT_PATH", "./output/dashboard.png"),
		ChromeBin:     getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Separator returns the dataset field separator as a rune.
// Only the first rune of DATASET_SEPARATOR is used; "\t" is accepted for tabs.
func (c *Config) Separator() rune {
	s := c.DatasetSeparator
	if s == `\t` {
		return '\t'
	}
	if s == "" {
		return ';'
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}
