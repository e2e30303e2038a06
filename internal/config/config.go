package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	JobBoardBaseURL string
	JobBoardTimeout time.Duration
	SearchCities    []string
	SearchRoles     []string
	ResultsWanted   int

	PollingInterval time.Duration
	MaxRetries      int
	RetryDelay      time.Duration

	NATSURL         string
	NATSConnTimeout time.Duration

	ClickHouseDSN          string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	SnapshotInterval    time.Duration
	SnapshotCacheTTL    time.Duration
	ForecastMonthsAhead int
	MovingAverageWindow int
	TopForecastSkills   int
	HeatmapTopSkills    int
}

func LoadConfig() (*Config, error) {
	config := &Config{
		JobBoardBaseURL: getEnvString("JOB_BOARD_BASE_URL", "https://api.jobboard.example.com/v1"),
		JobBoardTimeout: getEnvDuration("JOB_BOARD_TIMEOUT", 10*time.Second),
		SearchCities:    getEnvStringSlice("SEARCH_CITIES", []string{"Casablanca", "Rabat", "Tanger", "Morocco"}),
		SearchRoles: getEnvStringSlice("SEARCH_ROLES", []string{
			"Data Scientist", "Data Analyst", "Data Engineer",
			"Business Analyst", "Big Data", "Business Intelligence",
		}),
		ResultsWanted: getEnvInt("RESULTS_WANTED", 40),

		PollingInterval: getEnvDuration("POLLING_INTERVAL", 6*time.Hour),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("RETRY_DELAY", 30*time.Second),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		ClickHouseDSN:          getEnvString("CLICKHOUSE_DSN", "localhost:9000"),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "skillpulse"),

		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		SnapshotInterval:    getEnvDuration("SNAPSHOT_INTERVAL", 6*time.Hour),
		SnapshotCacheTTL:    getEnvDuration("SNAPSHOT_CACHE_TTL", 12*time.Hour),
		ForecastMonthsAhead: getEnvInt("FORECAST_MONTHS_AHEAD", 1),
		MovingAverageWindow: getEnvInt("MOVING_AVERAGE_WINDOW", 3),
		TopForecastSkills:   getEnvInt("TOP_FORECAST_SKILLS", 10),
		HeatmapTopSkills:    getEnvInt("HEATMAP_TOP_SKILLS", 15),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
