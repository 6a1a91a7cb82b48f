package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"tableside/cmd"
	httpserver "tableside/internal/adapters/in/http"
	"tableside/internal/adapters/in/ws"
	"tableside/internal/adapters/out/postgres"
	"tableside/internal/pkg/pubsub"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultTableCount = 10

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := openDB(configs)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err = postgres.Migrate(db); err != nil {
		logger.Error("Failed to migrate schema", "error", err)
		os.Exit(1)
	}

	if err = postgres.Seed(ctx, db, tableCount(configs)); err != nil {
		logger.Error("Failed to seed database", "error", err)
		os.Exit(1)
	}

	bus := pubsub.NewBus(logger)
	root := cmd.NewCompositionRoot(configs, db, bus)

	startWebServer(root, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),
		TableCount: goDotEnvVariable("TABLE_COUNT"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDB(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)
	return gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
}

func tableCount(configs cmd.Config) int {
	count, err := strconv.Atoi(configs.TableCount)
	if err != nil || count < 1 {
		return defaultTableCount
	}
	return count
}

func startWebServer(root cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()

	server := httpserver.NewServer(
		root.CreatePlaceOrderCommandHandler(),
		root.CreateAdvanceLineCommandHandler(),
		root.CreateCleanupLinesCommandHandler(),
		root.CreateRemoveLineCommandHandler(),
		root.CreateCallWaiterCommandHandler(),
		root.CreateGetRecentLinesQueryHandler(),
		root.CreateGetTableLinesQueryHandler(),
		root.CreateGetMenuQueryHandler(),
		root.CreateGetMenuItemQueryHandler(),
		root.CreateGetAllTablesQueryHandler(),
		root.CreateResolveTableQueryHandler(),
		root.CreateGetTopItemsQueryHandler(),
	)
	server.RegisterRoutes(e)

	hub := ws.NewHub(root.EventBus(), logger)
	e.GET("/ws", hub.Handle)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Web server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}

	root.EventBus().Close()
}
