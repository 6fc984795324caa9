package main

import (
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	categoryapp "github.com/placemarkhq/placemark/application/category"
	placemarkapp "github.com/placemarkhq/placemark/application/placemark"
	userapp "github.com/placemarkhq/placemark/application/user"
	"github.com/placemarkhq/placemark/cmd/config"
	redisclient "github.com/placemarkhq/placemark/cmd/redis"
	_ "github.com/placemarkhq/placemark/docs"
	categoryRepo "github.com/placemarkhq/placemark/repository/category"
	placemarkRepo "github.com/placemarkhq/placemark/repository/placemark"
	redisRepo "github.com/placemarkhq/placemark/repository/redis"
	txRepo "github.com/placemarkhq/placemark/repository/tx"
	userRepo "github.com/placemarkhq/placemark/repository/user"
	"github.com/placemarkhq/placemark/thirdparty/rabbitmq"
	"github.com/placemarkhq/placemark/transport"
	"github.com/placemarkhq/placemark/utils/logger"
	"go.uber.org/zap"
)

// @title PLACEMARK API
// @version 1.0
// @description Place-bookmarking service API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Activity events are best effort; the app runs without a broker.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq, activity events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	CategoryRepo := categoryRepo.NewCategoryRepository(db)
	PlaceMarkRepo := placemarkRepo.NewPlaceMarkRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, TxRepo, UserRepo, RedisRepo)
	CategoryApp := categoryapp.NewCategoryApp(TxRepo, CategoryRepo, UserRepo)
	PlaceMarkApp := placemarkapp.NewPlaceMarkApp(PlaceMarkRepo, CategoryRepo, UserRepo, publisher)

	httpTransport := transport.NewTransport(cfg, UserApp, CategoryApp, PlaceMarkApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
