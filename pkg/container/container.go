package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"infinite-ideas-hub/internal/config"
	infraCache "infinite-ideas-hub/internal/infrastructure/cache"
	"infinite-ideas-hub/internal/infrastructure/database"
	"infinite-ideas-hub/internal/infrastructure/storage"
	"infinite-ideas-hub/internal/shared/middleware"
	"infinite-ideas-hub/pkg/cache"
	"infinite-ideas-hub/pkg/jwt"

	adminHandler "infinite-ideas-hub/internal/domains/admin/handler"
	adminService "infinite-ideas-hub/internal/domains/admin/service"
	auditHandler "infinite-ideas-hub/internal/domains/audit/handler"
	auditRepo "infinite-ideas-hub/internal/domains/audit/repository"
	auditService "infinite-ideas-hub/internal/domains/audit/service"
	authorHandler "infinite-ideas-hub/internal/domains/author/handler"
	authorRepo "infinite-ideas-hub/internal/domains/author/repository"
	authorService "infinite-ideas-hub/internal/domains/author/service"
	blogHandler "infinite-ideas-hub/internal/domains/blog/handler"
	blogModel "infinite-ideas-hub/internal/domains/blog/model"
	blogRepo "infinite-ideas-hub/internal/domains/blog/repository"
	blogService "infinite-ideas-hub/internal/domains/blog/service"
	categoryHandler "infinite-ideas-hub/internal/domains/category/handler"
	categoryRepo "infinite-ideas-hub/internal/domains/category/repository"
	categoryService "infinite-ideas-hub/internal/domains/category/service"
	commentHandler "infinite-ideas-hub/internal/domains/comment/handler"
	commentRepo "infinite-ideas-hub/internal/domains/comment/repository"
	commentService "infinite-ideas-hub/internal/domains/comment/service"
	draftHandler "infinite-ideas-hub/internal/domains/draft/handler"
	draftRepo "infinite-ideas-hub/internal/domains/draft/repository"
	draftService "infinite-ideas-hub/internal/domains/draft/service"
	mediaHandler "infinite-ideas-hub/internal/domains/media/handler"
	mediaService "infinite-ideas-hub/internal/domains/media/service"
	publishHandler "infinite-ideas-hub/internal/domains/publish/handler"
	publishService "infinite-ideas-hub/internal/domains/publish/service"
	subscriberHandler "infinite-ideas-hub/internal/domains/subscriber/handler"
	subscriberRepo "infinite-ideas-hub/internal/domains/subscriber/repository"
	subscriberService "infinite-ideas-hub/internal/domains/subscriber/service"
	userHandler "infinite-ideas-hub/internal/domains/user/handler"
	userRepo "infinite-ideas-hub/internal/domains/user/repository"
	userService "infinite-ideas-hub/internal/domains/user/service"
)

// Container is the root of the API dependency graph.
type Container struct {
	// ========================================
	// INFRASTRUCTURE
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient // nil when REDIS_ENABLED=false
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client
	Storage     *storage.MinIOStorage // nil when MINIO_ENABLED=false
	Metrics     *prometheus.Registry
	HTTPMetrics *middleware.HTTPMetrics

	// ========================================
	// REPOSITORIES
	// ========================================
	UserRepo       userRepo.Repository
	AuditRepo      auditRepo.Repository
	AuthorRepo     authorRepo.Repository
	BlogRepo       blogRepo.Repository
	DraftRepo      draftRepo.Repository
	CategoryRepo   categoryRepo.Repository
	CommentRepo    commentRepo.Repository
	SubscriberRepo subscriberRepo.Repository

	// ========================================
	// SERVICES
	// ========================================
	AuditService      auditService.ServiceInterface
	UserService       userService.ServiceInterface
	AuthorService     authorService.ServiceInterface
	BlogService       blogService.ServiceInterface
	DraftService      draftService.ServiceInterface
	PublishService    publishService.ServiceInterface
	CategoryService   categoryService.ServiceInterface
	CommentService    commentService.ServiceInterface
	SubscriberService subscriberService.ServiceInterface
	MediaService      mediaService.ServiceInterface
	StatsService      adminService.ServiceInterface

	// ========================================
	// HANDLERS
	// ========================================
	UserHandler       *userHandler.UserHandler
	AuditHandler      *auditHandler.AuditHandler
	AuthorHandler     *authorHandler.AuthorHandler
	BlogHandler       *blogHandler.BlogHandler
	DraftHandler      *draftHandler.DraftHandler
	PublishHandler    *publishHandler.PublishHandler
	CategoryHandler   *categoryHandler.CategoryHandler
	CommentHandler    *commentHandler.CommentHandler
	SubscriberHandler *subscriberHandler.SubscriberHandler
	MediaHandler      *mediaHandler.MediaHandler
	AdminHandler      *adminHandler.AdminHandler
}

// NewContainer builds the graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("initializing container")

	c := &Container{Config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// ----------------------------------------
	// POSTGRES
	// ----------------------------------------
	db := database.NewPostgresDB(config.LoadDatabaseConfig(cfg.Database))
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	// ----------------------------------------
	// REDIS / CACHE
	// ----------------------------------------
	// Redis is optional; without it likes and identities use process memory.
	c.Cache = cache.NewMemoryCache()
	if cfg.Redis.Enabled {
		rc := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("[REDIS] unavailable, falling back to in-memory cache")
			_ = rc.Close()
		} else {
			c.Redis = rc
			c.Cache = infraCache.NewRedisCache(rc)
		}
	}

	// ----------------------------------------
	// QUEUE CLIENT
	// ----------------------------------------
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// ----------------------------------------
	// OBJECT STORAGE
	// ----------------------------------------
	if cfg.MinIO.Enabled {
		store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			log.Warn().Err(err).Msg("[MINIO] unavailable, uploads disabled")
		} else {
			c.Storage = store
		}
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	// ----------------------------------------
	// METRICS
	// ----------------------------------------
	c.Metrics = prometheus.NewRegistry()
	c.Metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.HTTPMetrics = middleware.NewHTTPMetrics(c.Metrics)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuditRepo = auditRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.BlogRepo = blogRepo.NewPostgresRepository(pool)
	c.DraftRepo = draftRepo.NewPostgresRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
	c.SubscriberRepo = subscriberRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.AuditService = auditService.NewAuditService(c.AuditRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.Cache, c.JWTManager, c.AuditService)

	// Authors read published blogs straight from the blog repository so the
	// blog service can depend on the author service without a cycle.
	c.AuthorService = authorService.NewAuthorService(
		c.AuthorRepo,
		c.UserRepo,
		c.BlogRepo,
		c.AuditService,
		c.UserService,
	)
	c.BlogService = blogService.NewBlogService(c.BlogRepo, c.AuthorService, c.Cache)
	c.DraftService = draftService.NewDraftService(c.DraftRepo, c.BlogRepo)
	c.PublishService = publishService.NewPublishService(c.BlogService, c.DraftService)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.BlogRepo)
	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.BlogRepo)

	c.SubscriberService = subscriberService.NewSubscriberService(c.SubscriberRepo, c.AsynqClient, subscriberService.Options{
		PublicURL:  c.Config.App.PublicURL,
		ConfirmTTL: c.Config.Newsletter.ConfirmTTL,
	})

	// a typed nil store must not reach the interface
	var store mediaService.ObjectStore
	if c.Storage != nil {
		store = c.Storage
	}
	c.MediaService = mediaService.NewMediaService(storage.NewImageProcessor(), store)

	published := blogModel.StatusPublished
	c.StatsService = adminService.NewStatsService(map[string]adminService.Counter{
		"users":       c.UserRepo.Count,
		"authors":     c.AuthorRepo.Count,
		"drafts":      c.DraftRepo.Count,
		"subscribers": c.SubscriberRepo.Count,
		"blogs": func(ctx context.Context) (int, error) {
			return c.BlogRepo.Count(ctx, nil)
		},
		"published": func(ctx context.Context) (int, error) {
			return c.BlogRepo.Count(ctx, &published)
		},
	}, c.DB)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AuditHandler = auditHandler.NewAuditHandler(c.AuditService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService)
	c.DraftHandler = draftHandler.NewDraftHandler(c.DraftService)
	c.PublishHandler = publishHandler.NewPublishHandler(c.PublishService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.SubscriberHandler = subscriberHandler.NewSubscriberHandler(c.SubscriberService)
	c.MediaHandler = mediaHandler.NewMediaHandler(c.MediaService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.StatsService)
}

// HealthCheck reports the first failing dependency.
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"database": "ok", "redis": "disabled", "storage": "disabled"}

	if err := c.DB.HealthCheck(ctx); err != nil {
		status["database"] = err.Error()
	}
	if c.Redis != nil {
		status["redis"] = "ok"
		if err := c.Redis.HealthCheck(ctx); err != nil {
			status["redis"] = err.Error()
		}
	}
	if c.Storage != nil {
		status["storage"] = "ok"
		if err := c.Storage.HealthCheck(ctx); err != nil {
			status["storage"] = err.Error()
		}
	}
	return status
}

// Cleanup releases connections; safe on a partially built container.
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close asynq client")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[REDIS] failed to close")
		}
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
