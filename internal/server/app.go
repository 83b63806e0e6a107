// Package server wires configuration, storage, lockout, provisioning and
// metrics into the gRPC mailbox service and runs it until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ajcloudsolutions/vmailapi/internal/dbx"
	"github.com/ajcloudsolutions/vmailapi/internal/logging"
	"github.com/ajcloudsolutions/vmailapi/internal/server/config"
	"github.com/ajcloudsolutions/vmailapi/internal/server/lockout"
	"github.com/ajcloudsolutions/vmailapi/internal/server/metrics"
	"github.com/ajcloudsolutions/vmailapi/internal/server/provision"
	"github.com/ajcloudsolutions/vmailapi/internal/server/repositories/repomanager"
	"github.com/ajcloudsolutions/vmailapi/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/ajcloudsolutions/vmailapi/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	redis          *redis.Client
	metrics        *metrics.Metrics
	mailboxService *services.MailboxService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	db, err := dbx.Open(ctx, repomanager.DriverName, c.DatabaseDSN, dbx.PoolOptions{
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db, metrics: metrics.New()}

	var limiter lockout.Limiter = lockout.Nop{}
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			app.close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		limiter = lockout.NewRedisLimiter(app.redis, lockout.Config{
			Threshold: c.LockoutThreshold,
			Window:    c.LockoutWindow,
		})
	}

	p, err := provision.New(ctx, c)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("provisioner init error: %w", err)
	}

	app.mailboxService = services.NewMailboxService(db, repomanager.NewPostgresRepositoryManager(), c, services.Deps{
		Limiter:     limiter,
		Provisioner: p,
		Metrics:     app.metrics,
		Logger:      logger,
	})

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.mailboxService, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) startMetricsServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.metrics.Serve(ctx, app.config.MetricsAddr, app.logger); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startMetricsServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(context.Background(), "closing redis", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Warn(context.Background(), "closing database", "error", err)
		}
	}
}
