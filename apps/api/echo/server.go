package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/Himethwe/Gradely-Webapp/core"
	"github.com/Himethwe/Gradely-Webapp/core/academic"
	"github.com/Himethwe/Gradely-Webapp/core/degree"
	"github.com/Himethwe/Gradely-Webapp/core/grade"
)

type Server struct {
	conf     *core.Config
	logger   core.Logger
	app      *echo.Echo
	gradeSvc grade.ServiceInterface
	errors   chan error
	shutdown chan os.Signal
}

func NewServer(
	conf *core.Config,
	logger core.Logger,
	degreeSvc degree.ServiceInterface,
	gradeSvc grade.ServiceInterface,
	validate *validator.Validate,
	translator ut.Translator,
) *Server {
	s := &Server{
		conf:     conf,
		logger:   logger,
		app:      echo.New(),
		gradeSvc: gradeSvc,
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{conf.FrontendBaseURL},
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(logger, translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	if conf.Debug {
		s.app.Logger.SetLevel(log.DEBUG)
	}

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	v1.GET("/grading-schema", gradingSchema)
	registerDegreeAPI(v1, degreeSvc)
	registerGradeAPI(v1, jwt, gradeSvc, validate)
	registerGuestAPI(v1, gradeSvc, validate)

	return s
}

// Start listens on the configured address; errors other than a closed server go to Errors.
func (s *Server) Start() {
	s.logger.Info(fmt.Sprintf("API listening on %s", s.conf.Server.Address))
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

// Shutdown stops accepting requests, then flushes pending grade edits.
func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	if err := s.app.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutting down http server")
	}
	return errors.Wrap(s.gradeSvc.Shutdown(ctx), "flushing auto savers")
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Gradely API!")
}

func gradingSchema(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, academic.GradingSchema)
}
