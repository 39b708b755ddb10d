package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"go-todo/pkg/log"
	"go-todo/pkg/msg"
)

// SetupRequestLogger registers request id propagation, panic recovery and request logging.
func SetupRequestLogger(e *echo.Echo) {
	e.Use(echomw.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Request().URL.Path, "/health")
		},
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if warning := c.Response().Header().Get("Warning"); warning != "" {
				fields = append(fields, zap.String("warning", warning))
			}

			if v.Error == nil {
				log.Info(msg.GetMessage("app.req-end", v.Method, v.URI, v.Status, v.Latency.String(), v.RequestID), fields...)
			} else {
				log.Error(msg.GetMessage("app.req-fail", v.Method, v.URI, v.Status, v.Latency.String(), v.RequestID, v.Error),
					append(fields, zap.Error(v.Error))...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
}
