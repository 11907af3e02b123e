package router

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"vscreens/internal/config"
	"vscreens/internal/handler"
	"vscreens/internal/logging"
	"vscreens/internal/service"
)

const bodyLimit = "1M"

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logging.Logger,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	screenHandler *handler.ScreenHandler,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(log)
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// Secured routes (require a valid credential)
	secured := e.Group("", RequireCredential(authService, log))

	secured.POST("/auth/logout", authHandler.Logout)

	secured.POST("/screens", screenHandler.List)
	secured.POST("/screens/create", screenHandler.Create)
	secured.POST("/screens/get", screenHandler.Get)
	secured.POST("/screens/update", screenHandler.Update)
	secured.POST("/screens/delete", screenHandler.Delete)
	secured.POST("/screens/clear", screenHandler.Clear)
	secured.POST("/screens/content/get", screenHandler.GetContent)
	secured.POST("/screens/content/update", screenHandler.UpdateContent)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// requestLogger logs one line per request. URIs carry no credentials since
// tokens travel in the body or the Authorization header.
func requestLogger(log logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if userID, ok := c.Get(handler.UserIDKey).(uint); ok {
				args = append(args, "user_id", userID)
			}
			log.Info(requestContext(c), "request", args...)
			return nil
		},
	})
}

func requestContext(c echo.Context) context.Context {
	return c.Request().Context()
}
