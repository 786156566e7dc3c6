package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/leanchem/erp-backend-go/internal/config"
	appHTTP "github.com/leanchem/erp-backend-go/internal/handler/http"
	"github.com/leanchem/erp-backend-go/internal/pkg/database"
	"github.com/leanchem/erp-backend-go/internal/pkg/jwt"
	"github.com/leanchem/erp-backend-go/internal/pkg/sse"
	"github.com/leanchem/erp-backend-go/internal/pkg/storage"
	"github.com/leanchem/erp-backend-go/internal/repository/postgresql"
	authService "github.com/leanchem/erp-backend-go/internal/service/auth"
	employeeService "github.com/leanchem/erp-backend-go/internal/service/employee"
	"github.com/leanchem/erp-backend-go/internal/service/file"
	notificationService "github.com/leanchem/erp-backend-go/internal/service/notification"
	objectiveService "github.com/leanchem/erp-backend-go/internal/service/objective"
	taskService "github.com/leanchem/erp-backend-go/internal/service/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	objectiveRepo := postgresql.NewObjectiveRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	taskUpdateRepo := postgresql.NewTaskUpdateRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.SSEExpiration)
	hub := sse.NewHub()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileSvc := file.NewFileService(fileStorage)

	notifSvc := notificationService.NewNotificationService(
		notificationRepo,
		taskRepo,
		taskUpdateRepo,
		employeeRepo,
		hub,
		cfg.Superadmin.Email,
	)
	authSvc := authService.NewAuthService(
		employeeRepo,
		jwtSvc,
		cfg.Superadmin.Email,
		cfg.Superadmin.Password,
		cfg.Superadmin.DefaultPassword,
	)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, notifSvc, fileSvc)
	objectiveSvc := objectiveService.NewObjectiveService(objectiveRepo, notifSvc)
	txRunner := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}
	taskSvc := taskService.NewTaskService(taskRepo, taskUpdateRepo, objectiveRepo, fileSvc, notifSvc, txRunner)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	objectiveHandler := appHTTP.NewObjectiveHandler(objectiveSvc, taskSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifSvc, jwtSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtSvc,
		authHandler,
		employeeHandler,
		objectiveHandler,
		taskHandler,
		notificationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
