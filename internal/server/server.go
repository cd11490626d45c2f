package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/kursus/internal/bundle"
	bundledomain "github.com/smallbiznis/kursus/internal/bundle/domain"
	"github.com/smallbiznis/kursus/internal/config"
	"github.com/smallbiznis/kursus/internal/course"
	coursedomain "github.com/smallbiznis/kursus/internal/course/domain"
	"github.com/smallbiznis/kursus/internal/geoip"
	"github.com/smallbiznis/kursus/internal/pricing"
	"github.com/smallbiznis/kursus/internal/ratelimit"
	"github.com/smallbiznis/kursus/internal/telemetry"
	"github.com/smallbiznis/kursus/internal/user"
	userdomain "github.com/smallbiznis/kursus/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	geoip.Module,
	pricing.Module,
	ratelimit.Module,
	telemetry.Module,
	user.Module,
	course.Module,
	bundle.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *telemetry.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(telemetry.GinMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, metrics *telemetry.Metrics) *gin.Engine {
	return NewEngine(log, metrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	log       *zap.Logger
	db        *gorm.DB
	genID     *snowflake.Node
	userSvc   userdomain.Service
	courseSvc coursedomain.Service
	bundleSvc bundledomain.Service
	resolver  *pricing.Resolver
	limiter   *ratelimit.Limiter
	metrics   *telemetry.Metrics
}

type ServerParams struct {
	fx.In

	Gin       *gin.Engine
	Cfg       config.Config
	Log       *zap.Logger
	DB        *gorm.DB
	GenID     *snowflake.Node
	UserSvc   userdomain.Service
	CourseSvc coursedomain.Service
	BundleSvc bundledomain.Service
	Resolver  *pricing.Resolver
	Limiter   *ratelimit.Limiter
	Metrics   *telemetry.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:    p.Gin,
		cfg:       p.Cfg,
		log:       p.Log.Named("server"),
		db:        p.DB,
		genID:     p.GenID,
		userSvc:   p.UserSvc,
		courseSvc: p.CourseSvc,
		bundleSvc: p.BundleSvc,
		resolver:  p.Resolver,
		limiter:   p.Limiter,
		metrics:   p.Metrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.RateLimit())

	// -------- Users --------
	api.GET("/users", s.ListUsers)
	api.POST("/users", s.CreateUser)
	api.GET("/users/:id", s.GetUserByID)
	api.PATCH("/users/:id", s.UpdateUser)
	api.DELETE("/users/:id", s.DeleteUser)

	// Priced surfaces resolve the caller's region; user management does not.
	courses := api.Group("/courses", s.ResolveLocation())
	courses.GET("", s.ListCourses)
	courses.POST("", s.CreateCourse)
	courses.GET("/creator/:creatorId", s.ListCoursesByCreator)
	courses.GET("/:id", s.GetCourseByID)
	courses.PATCH("/:id", s.UpdateCourse)
	courses.DELETE("/:id", s.DeleteCourse)

	bundles := api.Group("/bundles", s.ResolveLocation())
	bundles.GET("", s.ListBundles)
	bundles.POST("/create", s.CreateBundle)
	bundles.POST("/auto-create", s.AutoCreateBundles)
	bundles.GET("/creator/:creatorId", s.ListBundlesByCreator)
	bundles.GET("/:id", s.GetBundleByID)
	bundles.PATCH("/:id", s.UpdateBundle)
	bundles.DELETE("/:id", s.DeleteBundle)
}
