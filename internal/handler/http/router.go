package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/leanchem/erp-backend-go/internal/config"
	"github.com/leanchem/erp-backend-go/internal/handler/http/middleware"
	"github.com/leanchem/erp-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	objectiveHandler ObjectiveHandler,
	taskHandler TaskHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "erp-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("gzip"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	// Uploaded files are served straight off disk.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Storage.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// SSE stream authenticates with its own query-parameter token.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Get("/auth/validate-token", authHandler.ValidateToken)
			r.Post("/auth/change-password", authHandler.ChangePassword)
			r.Post("/auth/logout", authHandler.Logout)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Get("/{id}", employeeHandler.GetByID)
				r.Put("/{id}", employeeHandler.Update)
				r.Post("/{id}/photo", employeeHandler.UploadPhoto)
				r.Delete("/{id}/photo", employeeHandler.DeletePhoto)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", employeeHandler.Create)
					r.Delete("/{id}", employeeHandler.Deactivate)
					r.Delete("/{id}/permanent", employeeHandler.DeletePermanently)
					r.Post("/{id}/reset-password", employeeHandler.ResetPassword)
					r.Put("/{id}/jd-link", employeeHandler.SetJobDescription)
				})
			})

			r.Route("/objectives", func(r chi.Router) {
				r.Get("/", objectiveHandler.List)
				r.Post("/", objectiveHandler.Create)
				r.Get("/{id}", objectiveHandler.GetByID)
				r.Put("/{id}", objectiveHandler.Update)
				r.Delete("/{id}", objectiveHandler.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Get("/dashboard", taskHandler.Dashboard)
				r.Get("/{id}", taskHandler.GetByID)
				r.Put("/{id}", taskHandler.Update)
				r.Delete("/{id}", taskHandler.Delete)
				r.Get("/{id}/updates", taskHandler.ListUpdates)
				r.Post("/{id}/updates", taskHandler.CreateUpdate)
				r.Post("/{id}/add-note", taskHandler.AddNote)
				r.Post("/{id}/upload-file", taskHandler.UploadFile)
				r.Get("/{id}/notes", taskHandler.ListNotes)
				r.Get("/{id}/attachments", taskHandler.ListAttachments)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.Feed)
				r.Get("/count", notificationHandler.UnreadCount)
				r.Put("/{id}/read", notificationHandler.MarkAsRead)
				r.Put("/read-all", notificationHandler.MarkAllAsRead)
				r.Delete("/{id}", notificationHandler.Delete)
				r.Get("/sse-token", notificationHandler.GetSSEToken)
			})
		})
	})

	return r
}
