package config

import "time"

const defaultPort = 8080

var defaultRedis = Redis{
	Host: "127.0.0.1",
	Port: "6379",
	DB:   0,
}

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "dispatch",
	Pass: "dispatch",
	Name: "dispatch_history",
}

const defaultKafkaGroupID = "dispatch-positions"

// Base point defaults to the Paris city centre; the service zone is 5km wide.
var defaultMonitor = Monitor{
	Interval:      10 * time.Second,
	BaseLon:       2.3522,
	BaseLat:       48.8566,
	MaxDistanceKm: 5,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       2, // position updates per second per courier
	Burst:      5,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultRedis returns the default record store settings.
func DefaultRedis() Redis {
	return defaultRedis
}

// DefaultDB returns the default analytical database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultKafkaGroupID returns the default position feed consumer group.
func DefaultKafkaGroupID() string {
	return defaultKafkaGroupID
}

// DefaultMonitor returns the default zone monitor settings.
func DefaultMonitor() Monitor {
	return defaultMonitor
}

// DefaultRateLimit returns the default position update limiter settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
