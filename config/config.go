package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the engine's environment-driven configuration. Database settings
// stay in db.go's DSN resolution because they accept several legacy spellings
// (MYSQL_URL, DATABASE_URL, DB_*).
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	CORSOrigins string `envconfig:"CORS_ORIGINS"`

	AMQPURL       string `envconfig:"AMQP_URL"`
	EventExchange string `envconfig:"EVENT_EXCHANGE" default:"hotel.bookings"`

	// Bounded transaction timeout for every allocation operation.
	TxTimeout time.Duration `envconfig:"TX_TIMEOUT" default:"5s"`

	// Policy knob: accept bookings whose check_in is already in the past.
	AllowPastCheckIn bool `envconfig:"ALLOW_PAST_CHECKIN" default:"false"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
