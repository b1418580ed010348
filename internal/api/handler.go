package api

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yakoovad/mergington-activities/internal/service"
	"github.com/yakoovad/mergington-activities/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	activities *service.ActivityService

	healthChecker HealthChecker
	staticDir     string

	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

func (h *Handler) WithHealthChecker(c HealthChecker) *Handler {
	h.healthChecker = c
	return h
}

func (h *Handler) WithActivityService(s *service.ActivityService) *Handler {
	h.activities = s
	return h
}

// WithStaticDir enables serving the signup web page from dir.
func (h *Handler) WithStaticDir(dir string) *Handler {
	h.staticDir = dir
	return h
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewValidator()
	e.Use(middleware.RequestID())
	e.Use(ZapLoggerMiddleware(h.logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if h.healthChecker != nil {
		e.GET("/health", h.healthChecker.HealthCheck())
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/activities", h.ListActivities)
	e.POST("/activities/:activity/signup", h.Signup)
	e.POST("/activities/:activity/unregister", h.Unregister)

	if h.staticDir != "" {
		e.Static("/static", h.staticDir)
		e.GET("/", func(c echo.Context) error {
			return c.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
		})
	}
}

func (h *Handler) ListActivities(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	directory, err := h.activities.ListActivities(e.Request().Context())
	if err != nil {
		l.Error("failed to list activities", zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, directory)
}

func (h *Handler) Signup(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	req, err := h.rosterRequest(e)
	if err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("signup request",
		zap.String("activity", req.Activity),
		zap.String("email", req.Email))

	result, err := h.activities.Signup(e.Request().Context(), req.Activity, req.Email)
	if err != nil {
		l.Error("failed to sign up",
			zap.String("activity", req.Activity),
			zap.String("email", req.Email),
			zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, result)
}

func (h *Handler) Unregister(e echo.Context) error {
	l := logger.FromContext(e.Request().Context())

	req, err := h.rosterRequest(e)
	if err != nil {
		l.Error("invalid request", zap.Any("error", err))
		return h.transportError(e, err)
	}

	l.Info("unregister request",
		zap.String("activity", req.Activity),
		zap.String("email", req.Email))

	result, err := h.activities.Unregister(e.Request().Context(), req.Activity, req.Email)
	if err != nil {
		l.Error("failed to unregister",
			zap.String("activity", req.Activity),
			zap.String("email", req.Email),
			zap.Any("error", err))
		return h.transportError(e, err)
	}

	return e.JSON(http.StatusOK, result)
}

type rosterRequest struct {
	Activity string `validate:"required"`
	Email    string `validate:"required"`
}

// rosterRequest pulls the activity name out of the path and the email out of
// the query string. Activity names contain spaces, so the path segment is
// unescaped before lookup; the email stays an opaque string (no format check).
func (h *Handler) rosterRequest(e echo.Context) (*rosterRequest, *service.Error) {
	activity, err := url.PathUnescape(e.Param("activity"))
	if err != nil {
		activity = e.Param("activity")
	}

	req := &rosterRequest{
		Activity: activity,
		Email:    e.QueryParam("email"),
	}

	if err := e.Validate(req); err != nil {
		return nil, service.NewError(service.ErrorCodeInvalidBody, "activity and email are required")
	}
	return req, nil
}

func (h *Handler) transportError(e echo.Context, err *service.Error) error {
	response := struct {
		Detail string `json:"detail"`
	}{Detail: err.Message}

	switch err.Code {
	case service.ErrorCodeNotFound:
		return e.JSON(http.StatusNotFound, response)
	case service.ErrorCodeAlreadySignedUp, service.ErrorCodeNotRegistered, service.ErrorCodeInvalidBody:
		return e.JSON(http.StatusBadRequest, response)
	default:
		return e.JSON(http.StatusInternalServerError, response)
	}
}
