// Package httpserver adapts the storefront service to HTTP with echo.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	slogecho "github.com/samber/slog-echo"

	"storefront/api/wire"
	"storefront/service"
)

type Server struct {
	echo  *echo.Echo
	httpd *http.Server
	svc   *service.Service
	log   *slog.Logger
}

func New(svc *service.Service, addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()

	var (
		httpTimeout        = 1 * time.Minute
		httpMaxHeaderBytes = 1 * (1024 * 1024)
	)

	srv := &Server{
		echo: e,
		svc:  svc,
		log:  logger.With("component", "http"),
	}
	srv.httpd = &http.Server{
		Handler:        srv,
		Addr:           addr,
		WriteTimeout:   httpTimeout,
		ReadTimeout:    httpTimeout,
		MaxHeaderBytes: httpMaxHeaderBytes,
	}

	e.HideBanner = true
	e.HidePort = true
	e.Use(slogecho.New(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	e.HTTPErrorHandler = srv.errorHandler

	e.GET("/_health", srv.HandleHealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/products", srv.HandleCreateProduct)
	api.GET("/products", srv.HandleListProducts)
	api.GET("/products/:id", srv.HandleGetProduct)
	api.POST("/orders", srv.HandleCreateOrder)
	api.GET("/orders", srv.HandleListOrders)
	api.GET("/orders/:id", srv.HandleGetOrder)
	api.PUT("/orders/:id", srv.HandleUpdateOrder)
	api.DELETE("/orders/:id", srv.HandleDeleteOrder)

	return srv
}

// Start blocks serving HTTP until Shutdown.
func (srv *Server) Start() error {
	srv.log.Info("starting server", "bind", srv.httpd.Addr)
	if err := srv.httpd.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (srv *Server) Shutdown(ctx context.Context) error {
	srv.log.Info("shutting down")
	return srv.httpd.Shutdown(ctx)
}

func (srv *Server) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	srv.echo.ServeHTTP(rw, req)
}

type GenericStatus struct {
	Daemon  string         `json:"daemon"`
	Status  string         `json:"status"`
	Message string         `json:"msg,omitempty"`
	Stats   *service.Stats `json:"stats,omitempty"`
}

func (srv *Server) HandleHealthCheck(c echo.Context) error {
	stats := srv.svc.Stats()
	return c.JSON(http.StatusOK, GenericStatus{Status: "ok", Daemon: "storefront", Stats: &stats})
}

type errorBody struct {
	Detail string `json:"detail"`
}

// errorHandler renders every failure as {"detail": ...}. Domain errors
// map to 400, 404 or 500; echo's own errors keep their code.
func (srv *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	case wire.IsValidation(err):
		code = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
		msg = err.Error()
	}

	if code >= 500 {
		srv.log.Warn("storefront-http-internal-error", "err", err, "path", c.Path())
	}
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorBody{Detail: msg})
}
