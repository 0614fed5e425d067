package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-marks-api/internal/handler"
	"github.com/noah-isme/exam-marks-api/internal/middleware"
	"github.com/noah-isme/exam-marks-api/internal/models"
	"github.com/noah-isme/exam-marks-api/internal/service"
	"github.com/noah-isme/exam-marks-api/pkg/config"
	"github.com/noah-isme/exam-marks-api/pkg/logger"
	"github.com/noah-isme/exam-marks-api/pkg/middleware/requestid"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Marks   *handler.MarkHandler
	Lookup  *handler.LookupHandler
	Metrics *handler.MetricsHandler
}

// Setup configures the engine with the global middleware chain and every route.
func Setup(cfg *config.Config, log *zap.Logger, tokens middleware.TokenValidator, metrics *service.MetricsService, handlers *Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))
	r.Use(middleware.Metrics(metrics))

	r.GET("/metrics", handlers.Metrics.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", handlers.Metrics.Health)
	api.GET("/exam-types", handlers.Lookup.ExamTypes)

	user := api.Group("/user")
	user.POST("/check-mark", handlers.Lookup.CheckMark)
	user.POST("/report", handlers.Lookup.Report)
	user.POST("/report.pdf", handlers.Lookup.ReportPDF)

	api.POST("/admin/login", handlers.Auth.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminJWT(tokens), middleware.RequireScope(models.ScopeMarksAdmin))
	admin.POST("/add-mark", handlers.Marks.AddMark)
	admin.PUT("/update-mark/:id", handlers.Marks.UpdateMark)
	admin.GET("/all-marks", handlers.Marks.ListAll)
	admin.GET("/marks/:id", handlers.Marks.Get)
	admin.GET("/browse", handlers.Marks.Browse)
	admin.GET("/classes", handlers.Marks.Classes)
	admin.GET("/export.csv", handlers.Marks.ExportCSV)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found"})
	})

	return r
}

// An empty origin list allows every origin.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	cfg.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
