package bootstrap

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/profile-import/internal/application/profileimport"
	infrafile "github.com/mohammadpnp/profile-import/internal/infrastructure/file"
	"github.com/mohammadpnp/profile-import/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/profile-import/internal/interfaces/http/echo"
)

func NewHTTPServer(db *gorm.DB, source *infrafile.LocalSource, logger *zap.Logger) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("10M"))
	server.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	importJobRepo := repository.NewImportJobRepository(db)
	startImport := app.NewStartImport(importJobRepo, source)
	getImport := app.NewGetImport(importJobRepo)
	downloadReport := app.NewDownloadReport(importJobRepo)
	importHandler := httpecho.NewImportHandler(startImport, getImport, downloadReport)

	identityQueryRepo := repository.NewIdentityQueryRepository(db)
	getIdentity := app.NewGetIdentity(identityQueryRepo)
	identityHandler := httpecho.NewIdentityHandler(getIdentity)

	httpecho.RegisterRoutes(server, importHandler, identityHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	server.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return server
}
