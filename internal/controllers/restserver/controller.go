// Package restserver serves the hydrogen calculator over HTTP.
package restserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/chrissnell/h2calc/internal/hydrogen"
	"github.com/chrissnell/h2calc/internal/log"
	"github.com/chrissnell/h2calc/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTData
	Server     http.Server
	calculator *hydrogen.Calculator
	session    *hydrogen.Session
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTData, calc *hydrogen.Calculator, session *hydrogen.Session, logger *zap.SugaredLogger) *Controller {
	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		calculator: calc,
		session:    session,
		logger:     logger,
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("rest.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = "0.0.0.0"
	}

	if rc.HTTPPort == 0 {
		logger.Info("rest.http_port not provided; defaulting to 8080")
		rc.HTTPPort = 8080
	}
	ctrl.restConfig = rc

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.HTTPPort)
	ctrl.Server.Handler = ctrl.Handler()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infof("Starting REST server on %s", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// Handler returns the router wrapped in logging, panic recovery and CORS
func (c *Controller) Handler() http.Handler {
	var h http.Handler = c.setupRouter()
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{c.logger}),
		handlers.PrintRecoveryStack(true),
	)(h)
	return handlers.CustomLoggingHandler(io.Discard, h, c.logRequest)
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", c.handlers.GetHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/cities", c.handlers.GetCities).Methods(http.MethodGet)

	api.HandleFunc("/parameters", c.handlers.GetParameters).Methods(http.MethodGet)
	api.HandleFunc("/parameters/wind", c.handlers.PutWindParameters).Methods(http.MethodPut)
	api.HandleFunc("/parameters/solar", c.handlers.PutSolarParameters).Methods(http.MethodPut)

	api.HandleFunc("/wind/{city}", c.handlers.GetWindSeries).Methods(http.MethodGet)
	api.HandleFunc("/wind/{city}/speeds", c.handlers.GetWindSpeeds).Methods(http.MethodGet)
	api.HandleFunc("/wind/{city}/distribution", c.handlers.GetWindDistribution).Methods(http.MethodGet)

	api.HandleFunc("/solar/{city}", c.handlers.GetSolarSeries).Methods(http.MethodGet)
	api.HandleFunc("/solar/{city}/humidity", c.handlers.GetHumidityDensity).Methods(http.MethodGet)

	return router
}

// logRequest writes one structured line per request
func (c *Controller) logRequest(_ io.Writer, p handlers.LogFormatterParams) {
	c.logger.Debugw("http request",
		"method", p.Request.Method,
		"path", p.URL.Path,
		"status", p.StatusCode,
		"size", p.Size,
		"duration", time.Since(p.TimeStamp),
		"remote_addr", p.Request.RemoteAddr,
	)
}

// recoveryLogger routes recovered panics to zap
type recoveryLogger struct {
	logger *zap.SugaredLogger
}

func (r recoveryLogger) Println(v ...any) {
	r.logger.Error(v...)
}
