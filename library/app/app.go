package app

import (
	"context"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/curator-library/library/config"
	"github.com/Astemirdum/curator-library/library/internal/enricher"
	"github.com/Astemirdum/curator-library/library/internal/events"
	"github.com/Astemirdum/curator-library/library/internal/handler"
	"github.com/Astemirdum/curator-library/library/internal/repository"
	"github.com/Astemirdum/curator-library/library/internal/server"
	"github.com/Astemirdum/curator-library/library/internal/service"
	"github.com/Astemirdum/curator-library/library/migrations"
	cb "github.com/Astemirdum/curator-library/pkg/circuit_breaker"
	"github.com/Astemirdum/curator-library/pkg/kafka"
	"github.com/Astemirdum/curator-library/pkg/logger"
	"github.com/Astemirdum/curator-library/pkg/openlibrary"
	"github.com/Astemirdum/curator-library/pkg/postgres"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				log.Warn("close", zap.Error(err))
			}
		}
	}()

	repo, closer, err := newRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal("repository init", zap.Error(err))
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	enr, closer, err := newEnricher(ctx, cfg, log)
	if err != nil {
		log.Fatal("enricher init", zap.Error(err))
	}
	if closer != nil {
		closers = append(closers, closer)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		closers = append(closers, producer)
		publisher = events.NewPublisher(producer, kafka.LendingTopic)
	}

	svc := service.NewService(repo, enr, publisher, log)

	var g errgroup.Group
	if cfg.Kafka.Enabled() {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.LibraryConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		closers = append(closers, consumer)
		returns := events.NewReturnsConsumer(svc.RecordReturn, log)
		g.Go(func() error {
			kafka.Consume(ctx, consumer, returns, log, kafka.ReturnsTopic)
			return nil
		})
	}

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
		zap.String("storage", cfg.Storage))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	cancel()
	_ = g.Wait()
	log.Info("Graceful shutdown finished")
}

func newRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, io.Closer, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return repository.NewInMemoryRepository(), nil, nil
	case config.StoragePostgres:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repository.NewRepository(db, log)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, db, nil
	default:
		return nil, nil, errors.Errorf("unknown storage %q", cfg.Storage)
	}
}

func newEnricher(ctx context.Context, cfg *config.Config, log *zap.Logger) (*enricher.Enricher, io.Closer, error) {
	client := openlibrary.NewClient(cfg.OpenLibrary, cb.New(cfg.Breaker))
	if cfg.Metadata.RedisURL == "" {
		return enricher.New(client, enricher.NewMemoryCache(), cfg.Metadata.Timeout, log), nil, nil
	}
	rdb, err := enricher.NewRedisClient(ctx, cfg.Metadata.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	cache := enricher.NewRedisCache(rdb, cfg.Metadata.CacheTTL)
	return enricher.New(client, cache, cfg.Metadata.Timeout, log), rdb, nil
}
