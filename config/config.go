package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"quickbite"`

	// Auth. Read again via os.Getenv where tokens are issued and checked;
	// loading them here makes a missing secret fail fast at startup.
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	AdminAPIKey string `envconfig:"ADMIN_API_KEY"`

	// Cart mirror
	RedisAddr string `envconfig:"REDIS_ADDR"`

	// Order event publication (optional)
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"quickbite.orders"`

	// Order status simulation
	PhaseDelay time.Duration `envconfig:"ORDER_PHASE_DELAY" default:"10s"`
	GraceDelay time.Duration `envconfig:"ORDER_GRACE_DELAY" default:"5s"`

	// Catalog endpoints
	MealDBBaseURL  string `envconfig:"MEALDB_BASE_URL" default:"https://www.themealdb.com/api/json/v1/1"`
	RestaurantsURL string `envconfig:"RESTAURANTS_URL" default:"https://raw.githubusercontent.com/renus-code/restaurants-dataset/refs/heads/master/restaurants_unique.json"`

	// Network
	Port string `envconfig:"PORT" default:"8080"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
