package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/nsubra/account-ledger/cmd/docs"
	"github.com/nsubra/account-ledger/internal/core/domain"
	"github.com/nsubra/account-ledger/internal/core/services"
	"github.com/nsubra/account-ledger/internal/middleware"
	"github.com/nsubra/account-ledger/pkg/config"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	ledgerService *services.LedgerService,
	rateLimiter *limiter.Limiter,
) {
	registerValidations()

	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, ledgerService, rateLimiter)
	setupSwaggerRoutes(r, cfg)
}

// registerValidations wires custom binding validators into gin's validator engine.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseDirection(fl.Field().String())
			return err == nil
		})
	}
}

func setupAPIV1Routes(r *gin.Engine, ledgerService *services.LedgerService, rateLimiter *limiter.Limiter) {
	v1 := r.Group("/api/v1")

	movementHandler := NewMovementHandler(ledgerService)
	movements := v1.Group("/movements", middleware.RateLimit(rateLimiter))
	movements.POST("/", movementHandler.SubmitMovement)

	accountHandler := NewAccountHandler(ledgerService)
	accounts := v1.Group("/accounts")
	accounts.GET("/:accountNumber/:productNumber/:currencyCode", accountHandler.GetAccount)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
