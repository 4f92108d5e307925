package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Redis stores record store / geo index connection settings.
type Redis struct {
	Host string
	Port string
	DB   int
}

// Addr returns the host:port address of the Redis instance.
func (r Redis) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// DB stores the analytical Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns the Postgres connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores the position feed consumer settings. Empty brokers or topic
// disable the consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Monitor stores zone monitor settings: the sweep interval, the base point
// distances are measured from, and the service zone radius.
type Monitor struct {
	Interval      time.Duration
	BaseLon       float64
	BaseLat       float64
	MaxDistanceKm float64
}

// RateLimit stores per-courier position update limiter settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Config stores dispatch service settings.
type Config struct {
	Port      int
	Redis     Redis
	DB        DB
	Kafka     Kafka
	Monitor   Monitor
	RateLimit RateLimit
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      envInt("PORT", DefaultPort()),
		Redis:     loadRedis(),
		DB:        loadDB(),
		Kafka:     loadKafka(),
		Monitor:   loadMonitor(),
		RateLimit: loadRateLimit(),
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Monitor.MaxDistanceKm <= 0 {
		return nil, fmt.Errorf("invalid monitor max distance: %f", cfg.Monitor.MaxDistanceKm)
	}
	return cfg, nil
}

func loadRedis() Redis {
	def := DefaultRedis()
	return Redis{
		Host: envStr("REDIS_HOST", def.Host),
		Port: envStr("REDIS_PORT", def.Port),
		DB:   envInt("REDIS_DB", def.DB),
	}
}

func loadDB() DB {
	def := DefaultDB()
	return DB{
		Host: envStr("POSTGRES_HOST", def.Host),
		Port: envStr("POSTGRES_PORT", def.Port),
		User: envStr("POSTGRES_USER", def.User),
		Pass: envStr("POSTGRES_PASSWORD", def.Pass),
		Name: envStr("POSTGRES_DB", def.Name),
	}
}

func loadKafka() Kafka {
	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	return Kafka{
		Brokers: brokers,
		Topic:   envStr("KAFKA_POSITIONS_TOPIC", ""),
		GroupID: envStr("KAFKA_GROUP_ID", DefaultKafkaGroupID()),
	}
}

func loadMonitor() Monitor {
	def := DefaultMonitor()
	return Monitor{
		Interval:      envDuration("MONITOR_INTERVAL", def.Interval),
		BaseLon:       envFloat("MONITOR_BASE_LON", def.BaseLon),
		BaseLat:       envFloat("MONITOR_BASE_LAT", def.BaseLat),
		MaxDistanceKm: envFloat("MONITOR_MAX_DISTANCE_KM", def.MaxDistanceKm),
	}
}

func loadRateLimit() RateLimit {
	def := DefaultRateLimit()
	return RateLimit{
		Enabled:    envBool("RATE_LIMIT_ENABLED", def.Enabled),
		Rate:       envFloat("RATE_LIMIT_RATE", def.Rate),
		Burst:      envInt("RATE_LIMIT_BURST", def.Burst),
		TTL:        envDuration("RATE_LIMIT_TTL", def.TTL),
		MaxBuckets: envInt("RATE_LIMIT_MAX_BUCKETS", def.MaxBuckets),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
