package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"dispatch/cmd"
	adapters_http "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultReportSchedule = "0 */15 * * * *"

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(gormDB, configs.ReportSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	err = startWebServer(&app, configs.HTTPPort)
	jobManager.StopAll()
	log.Fatalf("Web server stopped: %v", err)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:       envOrDefault("HTTP_PORT", "8080"),
		DBHost:         envOrDefault("DB_HOST", "localhost"),
		DBPort:         envOrDefault("DB_PORT", "5432"),
		DBUser:         envOrDefault("DB_USER", "postgres"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         envOrDefault("DB_NAME", "dispatch"),
		DBSslMode:      envOrDefault("DB_SSLMODE", "disable"),
		Cells:          os.Getenv("DISPATCH_CELLS"),
		ReportSchedule: envOrDefault("REPORT_SCHEDULE", defaultReportSchedule),
	}
}

func envOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// mustOpenDatabase opens the connection through lib/pq so driver
// errors keep their SQLSTATE, then hands it to GORM. TranslateError
// keeps the duplicate-key detection working should the underlying
// driver ever change.
func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	gormDB, err := gorm.Open(
		gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		log.Fatalf("Failed to initialize GORM: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.AccessoryLineDTO{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) error {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	server := adapters_http.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateCloseOrderCommandHandler(),
		app.CreateListOrdersQueryHandler(),
		app.CreateGetOrderByNumberQueryHandler(),
		app.Cells(),
		app.DB(),
	)
	server.RegisterRoutes(e)

	return e.Start(fmt.Sprintf("0.0.0.0:%s", port))
}
