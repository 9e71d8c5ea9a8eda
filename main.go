package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/renus-code/QuickBite/auth"
	"github.com/renus-code/QuickBite/config"
	cartControllers "github.com/renus-code/QuickBite/controllers/cart"
	catalogControllers "github.com/renus-code/QuickBite/controllers/catalog"
	giftcardControllers "github.com/renus-code/QuickBite/controllers/giftcard"
	orderControllers "github.com/renus-code/QuickBite/controllers/order"
	"github.com/renus-code/QuickBite/events"
	"github.com/renus-code/QuickBite/models"
	"github.com/renus-code/QuickBite/mq"
	"github.com/renus-code/QuickBite/routes"
)

func main() {
	log.Println("Starting QuickBite API...")

	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Init DB
	db := initDatabase(cfg)

	// Auto-migrate all tables. Schema bumps are destructive; there is no
	// forward migration path.
	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderLine{},
		&models.GiftCard{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	auth.SeedDefaultUser(db)

	// Cart mirror (optional)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unavailable, cart mirror disabled: %v", err)
			rdb = nil
		}
	}

	// Order event publisher (optional)
	var publisher *mq.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("rabbitmq unavailable, order events disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := events.NewHub()
	cartEngine := cartControllers.NewEngine(rdb, hub)
	orderManager := orderControllers.NewManager(ctx, db, cartEngine, hub, publisher, cfg.PhaseDelay, cfg.GraceDelay)
	ledger := &giftcardControllers.Ledger{DB: db, Hub: hub}
	catalog := catalogControllers.NewClient(cfg.MealDBBaseURL, cfg.RestaurantsURL)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		DB:      db,
		Cart:    cartEngine,
		Orders:  orderManager,
		Ledger:  ledger,
		Catalog: catalog,
		Hub:     hub,
	})

	log.Printf("Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg config.App) *gorm.DB {
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	return db
}
