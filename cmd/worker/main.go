// worker drena la cola de notificaciones (alertas de stock, avisos de entrada y salida)
// hacia la tabla messages. Requiere REDIS_ADDR y PostgreSQL.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/queue"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("el worker requiere REDIS_ADDR")
	}
	if cfg.App.Storage != config.StoragePostgres {
		log.Fatal().Str("storage", cfg.App.Storage).Msg("el worker solo persiste en PostgreSQL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	sink := notification.NewLogNotifier(log, notification.NewStoreNotifier(postgres.NewMessageRepository(pool)))
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	worker := queue.NewWorker(redisOpt, cfg.Worker.Concurrency, sink, log)

	log.Info().Str("redis", cfg.Redis.Addr).Int("concurrency", cfg.Worker.Concurrency).Msg("iniciando worker")
	if err := worker.Run(ctx); err != nil {
		log.Error().Err(err).Msg("worker finalizado con error")
		return
	}
	log.Info().Msg("worker detenido")
}
