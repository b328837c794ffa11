package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/MakKeitor/registro-api-moodle-backend/internal/config"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/events"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/middleware"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/models"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/repository"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/security"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/service"
	"github.com/MakKeitor/registro-api-moodle-backend/internal/storage"
)

type ReviewService interface {
	List(ctx context.Context) ([]service.SubmissionView, error)
	UpdateStatus(ctx context.Context, actor models.Principal, id string, target string, note *string) (service.StatusResult, error)
}

type FileOpener interface {
	Open(ctx context.Context, id string) (service.Download, error)
}

type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HandlerSet struct {
	log        zerolog.Logger
	cfg        *config.AppConfig
	authorizer middleware.PrincipalResolver
	cookies    security.CookieRule
	reviews    ReviewService
	files      FileOpener
	users      UserLister
	db         Pinger
	cache      Pinger
}

func NewHandlerSet(log zerolog.Logger, cfg *config.AppConfig, db *pgxpool.Pool, cache *redis.Client, backend storage.Backend, publisher *events.Publisher) HandlerSet {
	sessionRepo := repository.NewSessionRepository(db)
	userRepo := repository.NewUserRepository(db)
	solicitudRepo := repository.NewSolicitudRepository(db)
	fileRepo := repository.NewFileRepository(db)

	return HandlerSet{
		log:        log,
		cfg:        cfg,
		authorizer: service.NewAuthorizer(sessionRepo, log),
		cookies:    CookieRule(cfg.Session),
		reviews:    service.NewReviewService(solicitudRepo, publisher, log),
		files:      service.NewFileService(fileRepo, backend, cfg.Uploads.PublicPrefix, log),
		users:      userRepo,
		db:         db,
		cache:      redisPinger{client: cache},
	}
}

// CookieRule builds the session cookie lookup rule from config.
func CookieRule(cfg config.SessionConfig) security.CookieRule {
	return security.CookieRule{
		Secure:     cfg.SecureCookieName,
		Plain:      cfg.CookieName,
		SecureMode: cfg.SecureCookies,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	v1.Use(middleware.RequireAdmin(h.authorizer, h.cookies, h.log))
	{
		v1.GET("/applications", h.ListApplications)
		v1.PATCH("/applications/:id/status", h.UpdateApplicationStatus)
		v1.GET("/files/:fileId", h.ServeFile)
		v1.GET("/users", h.ListUsers)
	}
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
