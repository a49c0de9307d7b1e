package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "gonotes/internal/app"
	"gonotes/internal/config"
	mysqlClient "gonotes/internal/platform/mysql"
	rabbitmqClient "gonotes/internal/platform/rabbitmq"
	redisClient "gonotes/internal/platform/redis"
	sqliteClient "gonotes/internal/platform/sqlite"
	"gonotes/internal/repository"
	"gonotes/internal/session"
	"gonotes/internal/worker"
)

type App struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	Sessions    session.Store
	Events      appsvc.EventPublisher
	AuditWorker *worker.AuditPersistWorker

	StartedAt time.Time
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, StartedAt: time.Now()}
	if err := a.init(ctx); err != nil {
		if closeErr := a.Close(); closeErr != nil {
			slog.Warn("close partially initialized resources failed", "error", closeErr)
		}
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	db, err := openDatabase(ctx, a.Config)
	if err != nil {
		return err
	}
	a.DB = db
	if err := repository.Migrate(db); err != nil {
		return err
	}

	switch a.Config.Session.Store {
	case config.SessionStoreRedis:
		redisCli, err := redisClient.New(ctx, a.Config.Redis)
		if err != nil {
			return err
		}
		a.Redis = redisCli
		a.Sessions = session.NewRedisStore(redisCli)
	default:
		a.Sessions = session.NewMemoryStore()
	}

	if !a.Config.RabbitMQ.Enabled {
		a.Events = appsvc.NopPublisher{}
		return nil
	}

	mqConn, err := rabbitmqClient.New(ctx, a.Config.RabbitMQ.URL)
	if err != nil {
		return err
	}
	a.MQConn = mqConn
	a.Events = rabbitmqClient.NewEventPublisher(mqConn, a.Config.RabbitMQ.AuditQueue)

	auditWorker := worker.NewAuditPersistWorker(mqConn, repository.NewAuditEventRepository(db), a.Config.RabbitMQ.AuditQueue)
	if err := auditWorker.Start(ctx); err != nil {
		return fmt.Errorf("start audit worker failed: %w", err)
	}
	a.AuditWorker = auditWorker
	return nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return sqliteClient.New(ctx, cfg.SQLite.Path)
	default:
		return mysqlClient.New(ctx, cfg)
	}
}

func (a *App) Close() error {
	var errs []error
	if a.AuditWorker != nil {
		a.AuditWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close rabbitmq failed: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis failed: %w", err))
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close database failed: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}
