package main

import (
	"fmt"
	"log/slog"
	"os"

	"warehouse/cmd"
	httpin "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/out/postgres/agentrepo"
	"warehouse/internal/adapters/out/postgres/maprepo"
	"warehouse/internal/adapters/out/postgres/worktaskrepo"
	"warehouse/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	config, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gormDB, err := openDatabase(config)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	root, err := cmd.NewCompositionRoot(config, gormDB, redisClient, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreateGetPendingWarehousesQueryHandler(),
		root.CreateAssignTasksCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, config.HTTPPort)
}

func loadConfig() (cmd.Config, error) {
	// A .env file is a local development convenience, not a requirement.
	_ = godotenv.Load(".env")

	var config cmd.Config
	if err := envconfig.Process("", &config); err != nil {
		return cmd.Config{}, err
	}
	return config, nil
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(config.PostgresDSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&worktaskrepo.WorkTaskDTO{},
		&agentrepo.AgentDTO{},
		&maprepo.MapDTO{},
		&maprepo.ZoneDTO{},
		&maprepo.AisleDTO{},
		&maprepo.RackDTO{},
		&maprepo.BinDTO{},
	)
	if err != nil {
		return nil, err
	}
	return gormDB, nil
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Validator = httpin.NewCustomValidator()

	server := httpin.NewServer(
		root.CreatePlanTasksCommandHandler(),
		root.CreateAssignTasksCommandHandler(),
		root.CreateStartTaskCommandHandler(),
		root.CreateCompleteTaskCommandHandler(),
		root.CreateCancelTaskCommandHandler(),
		root.CreateRegisterAgentCommandHandler(),
		root.CreateReportPositionCommandHandler(),
		root.CreateSetAgentAvailabilityCommandHandler(),
		root.CreateGetActiveTasksQueryHandler(),
		root.CreatePrioritizeTasksQueryHandler(),
		root.CreatePlanRouteQueryHandler(),
		root.CreateGetPendingWarehousesQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
