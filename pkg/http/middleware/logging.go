package middleware

import (
	"log"
	"time"

	applogger "TrendCast/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs each handled request with method, path, status and
// latency. Falls back to the standard logger when l is nil so the server
// stays usable before the application logger is wired.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)

			latency := time.Since(start)
			if l != nil {
				l.Info("request handled",
					applogger.String("method", req.Method),
					applogger.String("path", req.RequestURI),
					applogger.String("remote", req.RemoteAddr),
					applogger.Int("status", res.Status),
					applogger.Duration("latency", latency),
				)
				return err
			}
			log.Printf("[%s] %s %s - %d (%s)",
				req.Method,
				req.RequestURI,
				req.RemoteAddr,
				res.Status,
				latency,
			)
			return err
		}
	}
}
