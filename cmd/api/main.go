package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/application/purchase"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/queue"
	"github.com/jhoicas/almacen-api/internal/infrastructure/sheet"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/docno"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// storage lo que los casos de uso necesitan del backend elegido.
type storage struct {
	tx        inventory.TxRunner
	reads     repository.TxRepos // lecturas fuera de transacción (tablero)
	users     repository.UserRepository
	dashboard repository.DashboardRepository
	messages  repository.MessageRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
	}

	// Numeración: reloj salvo que se pida la secuencia en Redis.
	var numbers docno.Generator = docno.NewClockGenerator()
	if cfg.Docno.Strategy == config.DocnoRedis {
		numbers = docno.NewRedisSequenceGenerator(rdb, cfg.App.Name)
	}

	// Notificaciones post-commit: a la cola si hay Redis; si no, log + buzón directo.
	var notifier notification.Notifier
	if cfg.Redis.Enabled() {
		client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		notifier = queue.NewAsynqNotifier(client)
	} else {
		notifier = notification.NewLogNotifier(log, notification.NewStoreNotifier(st.messages))
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	pdfGenerator := infrapdf.NewOrderPDFGenerator(cfg.App.Name)
	reader, exporter := sheet.NewReader(), sheet.NewExporter()

	ledger := inventory.NewStockLedger(log, m)
	inboundSvc := inventory.NewInboundService(ledger, numbers, m)
	outboundSvc := inventory.NewOutboundService(ledger, numbers, notifier, log, m)
	stocktakingSvc := inventory.NewStocktakingService(inboundSvc, outboundSvc, numbers, m)

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // planillas de conteo
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere generar docs/ con swag)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Almacén API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		InboundUC:   inventory.NewInboundUseCase(st.tx, inboundSvc, pdfGenerator, log),
		OutboundUC:  inventory.NewOutboundUseCase(st.tx, outboundSvc, pdfGenerator, log),
		Stocktaking: inventory.NewStocktakingUseCase(st.tx, stocktakingSvc, notifier, reader, exporter, log, m),
		Ledger:      inventory.NewLedgerQuery(st.tx, exporter),
		PurchaseUC:  purchase.NewBridgeUseCase(st.tx, inboundSvc, numbers, notifier, log, m),
		DashboardUC: appanalytics.NewDashboardUseCase(st.reads.Products, st.reads.Inventory, st.reads.Logs, st.dashboard),
		Log:         log,
		AppName:     cfg.App.Name,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		store := memory.NewStore()
		if cfg.App.AdminPassword != "" {
			if _, err := store.SeedUser("admin", cfg.App.AdminPassword, "Administrador", httpRouter.RoleAdmin); err != nil {
				return nil, err
			}
		} else {
			log.Warn().Msg("almacenamiento en memoria sin APP_ADMIN_PASSWORD: nadie podrá iniciar sesión")
		}
		return &storage{
			tx:        store,
			reads:     store.Repos(),
			users:     store.Users(),
			dashboard: store.Dashboard(),
			messages:  store.Messages(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &storage{
		tx:        postgres.NewTxRunner(pool),
		reads:     postgres.NewTxRepos(pool),
		users:     postgres.NewUserRepository(pool),
		dashboard: postgres.NewDashboardRepository(pool),
		messages:  postgres.NewMessageRepository(pool),
		close:     pool.Close,
	}, nil
}
