package main

import (
	"log"

	"github.com/Shishlyannikovvv/project-planner/internal/api"
	"github.com/Shishlyannikovvv/project-planner/internal/config"
	"github.com/Shishlyannikovvv/project-planner/internal/logger"
	"github.com/Shishlyannikovvv/project-planner/internal/service"
	"github.com/Shishlyannikovvv/project-planner/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// 1. Storage Layer
	db, err := storage.NewPostgresDB(cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	repo := storage.NewRepository(db)

	// 2. Service Layer
	users := service.NewUsers(repo)
	projects := service.NewProjects(repo)
	tasks := service.NewTasks(repo, projects)
	teams := service.NewTeams(repo)
	comments := service.NewComments(repo, tasks)
	workload := service.NewWorkload(repo)
	assignment := service.NewAssignment(repo, tasks, workload)
	timeline := service.NewTimeline(repo, tasks, projects)

	// 3. API Layer
	handler := api.NewHandler(users, projects, tasks, teams, comments, workload, assignment, timeline)
	router := api.SetupRouter(handler, cfg.JWTSecret, users)

	logger.Info("starting server", "port", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
