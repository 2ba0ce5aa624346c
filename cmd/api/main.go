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

	"github.com/ecovia/carbon-market-api/internal/application/approval"
	"github.com/ecovia/carbon-market-api/internal/application/auth"
	"github.com/ecovia/carbon-market-api/internal/application/commute"
	"github.com/ecovia/carbon-market-api/internal/application/marketplace"
	"github.com/ecovia/carbon-market-api/internal/application/report"
	"github.com/ecovia/carbon-market-api/internal/domain/repository"
	"github.com/ecovia/carbon-market-api/internal/infrastructure/memory"
	infrapdf "github.com/ecovia/carbon-market-api/internal/infrastructure/pdf"
	"github.com/ecovia/carbon-market-api/internal/infrastructure/postgres"
	httpRouter "github.com/ecovia/carbon-market-api/internal/interfaces/http"
	"github.com/ecovia/carbon-market-api/pkg/config"
	"github.com/ecovia/carbon-market-api/pkg/logger"
)

// storage agrupa los adaptadores de persistencia del driver elegido.
type storage struct {
	userRepo    repository.UserRepository
	orgRepo     repository.OrganizationRepository
	logRepo     repository.CommuteLogRepository
	listingRepo repository.ListingRepository
	approvalTx  approval.TxRunner
	commuteTx   commute.TxRunner
	marketTx    marketplace.TxRunner
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	authUC := auth.NewAuthUseCase(store.userRepo, store.orgRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	approvalUC := approval.NewUseCase(store.approvalTx, store.orgRepo, store.userRepo)
	commuteUC := commute.NewUseCase(store.commuteTx, store.userRepo, store.logRepo)
	marketplaceUC := marketplace.NewUseCase(store.marketTx, store.listingRepo)
	reportUC := report.NewUseCase(store.orgRepo, infrapdf.NewMarotoCertificateGenerator())

	// Seed del system_admin con las credenciales de configuración
	if err := authUC.EnsureSystemAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("seed del system_admin")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Carbon Market API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ApprovalUC:    approvalUC,
		CommuteUC:     commuteUC,
		MarketplaceUC: marketplaceUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
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

// buildStorage arma los adaptadores del driver configurado:
// postgres para producción, memory para demos y desarrollo sin DB.
func buildStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		store := memory.NewStore()
		txRunner := memory.NewTxRunner(store)
		return &storage{
			userRepo:    memory.NewUserRepository(store),
			orgRepo:     memory.NewOrganizationRepository(store),
			logRepo:     memory.NewCommuteLogRepository(store),
			listingRepo: memory.NewListingRepository(store),
			approvalTx:  txRunner,
			commuteTx:   txRunner,
			marketTx:    txRunner,
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	txRunner := postgres.NewTxRunner(pool)
	return &storage{
		userRepo:    postgres.NewUserRepository(pool),
		orgRepo:     postgres.NewOrganizationRepository(pool),
		logRepo:     postgres.NewCommuteLogRepository(pool),
		listingRepo: postgres.NewListingRepository(pool),
		approvalTx:  txRunner,
		commuteTx:   txRunner,
		marketTx:    txRunner,
		close:       pool.Close,
	}, nil
}
