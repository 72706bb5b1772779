package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATASET_PATH", "")
	t.Setenv("DATASET_SEPARATOR", "")
	t.Setenv("DATASET_ENCODING", "")
	t.Setenv("POSTGRES_ENABLED", "")

	cfg := Load()

	assert.Equal(t, "./data/bestsellers.csv", cfg.DatasetPath)
	assert.Equal(t, ';', cfg.Separator())
	assert.Equal(t, "latin1", cfg.DatasetEncoding)
	assert.False(t, cfg.PostgresEnabled)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATASET_PATH", "/tmp/books.csv")
	t.Setenv("DATASET_SEPARATOR", ",")
	t.Setenv("WATCH_DATASET", "false")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("MAX_RETRIES", "7")

	cfg := Load()

	assert.Equal(t, "/tmp/books.csv", cfg.DatasetPath)
	assert.Equal(t, ',', cfg.Separator())
	assert.False(t, cfg.WatchDataset)
	assert.True(t, cfg.PostgresEnabled)
	assert.Equal(t, 7, cfg.MaxRetries)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MAX_RETRIES", "many")
	t.Setenv("WATCH_DATASET", "sometimes")

	cfg := Load()

	assert.Equal(t, 3, cfg.MaxRetries)
	assert.True(t, cfg.WatchDataset)
}

func TestSeparatorTab(t *testing.T) {
	cfg := &Config{DatasetSeparator: `\t`}
	assert.Equal(t, '\t', cfg.Separator())
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "db",
		PostgresPort:     "5433",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "books",
		PostgresSSLMode:  "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=books sslmode=disable", cfg.DSN())
}
