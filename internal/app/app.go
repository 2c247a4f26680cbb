package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/match3-server/internal/config"
	"github.com/vancomm/match3-server/internal/match3"
	"github.com/vancomm/match3-server/internal/middleware"
	"github.com/vancomm/match3-server/internal/repository"
)

// Config gathers everything the server reads from the environment.
type Config struct {
	Addr     string
	BasePath string
	Session  *config.Session
	Cookies  *config.Cookies
	WS       *config.WebSocket
	Store    *config.Store
	Defaults match3.GameParams
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Addr:     config.Addr(),
		BasePath: config.BasePath(),
	}
	var err error
	if cfg.Session, err = config.NewSession(); err != nil {
		return cfg, err
	}
	if cfg.Cookies, err = config.NewCookies(cfg.Session); err != nil {
		return cfg, err
	}
	if cfg.WS, err = config.NewWebSocket(); err != nil {
		return cfg, err
	}
	if cfg.Store, err = config.NewStore(); err != nil {
		return cfg, err
	}
	if cfg.Defaults, err = config.NewGameDefaults(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

type App struct {
	logger *logrus.Logger
	router *http.ServeMux
	store  *repository.Store
	cfg    Config
}

func New(logger *logrus.Logger, cfg Config) *App {
	router := http.NewServeMux()

	app := &App{
		logger: logger,
		router: router,
		store:  repository.New(),
		cfg:    cfg,
	}
	app.loadRoutes()

	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.logger, a.cfg.Cookies),
		middleware.Cors(),
		middleware.Logging(a.logger),
		middleware.StripBase(a.cfg.BasePath),
	)
}

// sweep evicts idle sessions until ctx is done.
func (a *App) sweep(ctx context.Context) error {
	ticker := time.NewTicker(a.cfg.Store.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := a.store.Sweep(now, a.cfg.Store.Idle); n > 0 {
				a.logger.WithFields(logrus.Fields{
					"removed": n,
					"left":    a.store.Len(),
				}).Info("idle sessions evicted")
			}
		}
	}
}

func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.cfg.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.logger.Infof("ready to serve @ %s", a.cfg.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.sweep(gCtx)
	})

	return g.Wait()
}
