package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskwell/taskwell/internal/config"
	"github.com/taskwell/taskwell/internal/handlers"
	"github.com/taskwell/taskwell/internal/middleware"
	"github.com/taskwell/taskwell/internal/store"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatal("failed to load AWS configuration", zap.Error(err))
	}
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWSEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWSEndpoint)
		}
	})

	st := store.New(client, cfg.TableName, logger)

	projectHandler := handlers.NewProjectHandler(st, logger)
	taskHandler := handlers.NewTaskHandler(st, logger)
	profileHandler := handlers.NewProfileHandler(st, logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(middleware.HMACResolver(cfg.AuthSecret)))
	{
		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.PutProfile)

		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PATCH("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)

			projects.POST("/:id/tasks", taskHandler.CreateTask)
			projects.GET("/:id/tasks", taskHandler.ListTasks)
			projects.GET("/:id/tasks/:taskId", taskHandler.GetTask)
			projects.PATCH("/:id/tasks/:taskId", taskHandler.UpdateTask)
			projects.DELETE("/:id/tasks/:taskId", taskHandler.DeleteTask)
		}
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
