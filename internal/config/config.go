package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"
)

type Config struct {
	Env      string
	LogLevel string
	Port     string

	DBType      string
	DBDSN       string
	SQLitePath  string
	DiskvPath   string
	RecordsFile string

	Timezone         string
	MorningStartHour int
	MorningEndHour   int

	AuthToken      string
	AuthServiceURL string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = &Config{
			Env:              getEnv("APP_ENV", "development"),
			LogLevel:         getEnv("LOG_LEVEL", "info"),
			Port:             getEnv("PORT", "8088"),
			DBType:           getEnv("STORAGE_BACKEND", "file"),
			DBDSN:            getEnv("POSTGRES_DSN", ""),
			SQLitePath:       getEnv("SQLITE_PATH", "data/sleepwell.db"),
			DiskvPath:        getEnv("DISKV_PATH", "data/records"),
			RecordsFile:      getEnv("RECORDS_FILE", "data/sleep_records.json"),
			Timezone:         getEnv("JOURNAL_TIMEZONE", "Australia/Sydney"),
			MorningStartHour: getEnvInt("MORNING_START_HOUR", 4),
			MorningEndHour:   getEnvInt("MORNING_END_HOUR", 18),
			AuthToken:        getEnv("AUTH_TOKEN", "MOCK-TOKEN"),
			AuthServiceURL:   getEnv("AUTH_SERVICE_URL", ""),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	switch c.DBType {
	case "postgres":
		if c.DBDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORAGE_BACKEND=sqlite")
		}
	case "diskv":
		if c.DiskvPath == "" {
			return errors.New("DISKV_PATH is required when STORAGE_BACKEND=diskv")
		}
	case "file":
		if c.RecordsFile == "" {
			return errors.New("File storage requires RECORDS_FILE to be set")
		}
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, postgres, sqlite, diskv")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return errors.New("JOURNAL_TIMEZONE is not a valid IANA zone: " + c.Timezone)
	}
	if c.MorningStartHour < 0 || c.MorningStartHour > 23 ||
		c.MorningEndHour < 0 || c.MorningEndHour > 24 ||
		c.MorningStartHour >= c.MorningEndHour {
		return errors.New("morning window requires 0 <= MORNING_START_HOUR < MORNING_END_HOUR <= 24")
	}
	return nil
}

// Location resolves the configured journal timezone. Validate has
// already checked that the zone loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		f, err := os.Open(".env")
		if err != nil {
			return err
		}
		defer f.Close()
		var lines []string
		buf := make([]byte, 4096)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				lines = append(lines, string(buf[:n]))
			}
			if err != nil {
				break
			}
		}
		for _, line := range lines {
			for _, l := range splitLines(line) {
				if len(l) == 0 || l[0] == '#' {
					continue
				}
				kv := splitKV(l)
				if len(kv) == 2 {
					os.Setenv(kv[0], kv[1])
				}
			}
		}
	}
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, c := range s {
		if c == '\n' || c == '\r' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func splitKV(s string) []string {
	for i, c := range s {
		if c == '=' {
			return []string{s[:i], s[i+1:]}
		}
	}
	return nil
}
