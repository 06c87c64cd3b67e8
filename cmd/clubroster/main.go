// @title Club Roster API
// @version 1.0
// @description Members, events and per-event attendance for a club.
// @BasePath /
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"clubroster/config"
	_ "clubroster/docs"
	httpdelivery "clubroster/internal/delivery/http"
	"clubroster/internal/delivery/http/controllers"
	"clubroster/internal/delivery/http/middleware"
	"clubroster/internal/delivery/http/pages"
	"clubroster/internal/domain"
	"clubroster/internal/render"
	"clubroster/internal/repository"
	"clubroster/internal/services"
	"clubroster/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := slog.New(middleware.NewContextHandler(config.NewLogger(cfg).Handler()))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("close store", "err", err)
		}
	}()

	clock := domain.SystemClock{}
	club := services.NewClubService(store, clock, logger, cfg.StoreTimeout)
	if err := club.Load(ctx); err != nil {
		logger.Error("load club data", "err", err)
		os.Exit(1)
	}
	theme := services.NewThemeService(store, logger, cfg.StoreTimeout)

	renderer, err := render.NewRenderer()
	if err != nil {
		logger.Error("parse templates", "err", err)
		os.Exit(1)
	}
	ctrl := usecase.NewController(club, theme, clock, middleware.FlashNotifier{}, logger, cfg.AppTitle)

	router := httpdelivery.NewRouter(
		pages.NewPageHandler(logger, ctrl, renderer),
		controllers.NewMemberController(logger, club),
		controllers.NewEventController(logger, club, clock),
		controllers.NewAttendanceController(logger, club),
		promhttp.Handler(),
	)
	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, router)
	handler = metrics.Middleware(handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Port, "store", cfg.StoreDriver, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "err", err)
	}
}
