package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// RouterConfig controls the optional parts of the router.
type RouterConfig struct {
	// ValidateRequests enables OpenAPI request validation on BaseURL.
	ValidateRequests bool
	// Swagger serves the interactive documentation under /swagger/.
	Swagger bool
}

// NewRouter builds the echo instance serving the API, the health check and
// the swagger UI.
func NewRouter(server ServerInterface, logger *slog.Logger, cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	if cfg.Swagger {
		registerSwaggerDoc()
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := e.Group(BaseURL)
	if cfg.ValidateRequests {
		doc, err := LoadOpenAPI()
		if err != nil {
			return nil, err
		}
		validator, err := RequestValidator(doc)
		if err != nil {
			return nil, err
		}
		api.Use(validator)
	}
	RegisterHandlers(api, server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
