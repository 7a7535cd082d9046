package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Farmacia-portal/internal/application/analytics"
	"github.com/jhoicas/Farmacia-portal/internal/application/auth"
	"github.com/jhoicas/Farmacia-portal/internal/application/inventory"
	"github.com/jhoicas/Farmacia-portal/internal/application/pos"
	"github.com/jhoicas/Farmacia-portal/internal/application/usecase"
	"github.com/jhoicas/Farmacia-portal/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/Farmacia-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/Farmacia-portal/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Farmacia-portal/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-portal/pkg/config"
	"github.com/jhoicas/Farmacia-portal/pkg/logger"
	"github.com/jhoicas/Farmacia-portal/pkg/tokencrypt"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando portal")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	cipher, err := tokencrypt.New(cfg.Session.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("cifrado de sesiones")
	}
	sessionRepo := postgres.NewSessionRepository(pool, cipher)
	cartRepo := postgres.NewCartRepository(pool, postgres.NewTxRunner(pool))

	api := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	authUC := auth.NewAuthUseCase(api, sessionRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	threshold := cfg.Inventory.LowStockThreshold
	receipts := infrapdf.NewMarotoReceiptGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el resumen de inventario consulta varias colecciones del backend
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.ReplaceAll(cfg.HTTP.CORSOrigins, " ", ""),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs (generado con swag init)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Farmacia Portal API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		ProductUC:       usecase.NewProductUseCase(api, threshold),
		OrderUC:         usecase.NewOrderUseCase(api),
		PurchaseUC:      usecase.NewPurchaseUseCase(api),
		ReturnUC:        usecase.NewReturnUseCase(api),
		SupplierUC:      usecase.NewSupplierUseCase(api),
		SetupUC:         usecase.NewSetupUseCase(api),
		RequestedItemUC: usecase.NewRequestedItemUseCase(api),
		UserUC:          usecase.NewUserUseCase(api),
		InventoryUC:     inventory.NewUseCase(api, threshold),
		POSUC:           pos.NewUseCase(api, cartRepo, receipts, cfg.App.StoreName),
		DashboardUC:     appanalytics.NewDashboardUseCase(api, threshold),
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.SecureCookie,
			TTL:    time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
	})

	purgeCtx, stopPurge := context.WithCancel(context.Background())
	go purgeSessions(purgeCtx, authUC, cfg.Session.PurgeEvery, log.Named("sessions"))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopPurge()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("portal detenido")
}

// purgeSessions borra periódicamente las sesiones vencidas (y sus carritos, por cascada).
func purgeSessions(ctx context.Context, authUC *auth.AuthUseCase, every time.Duration, log *logger.Logger) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authUC.PurgeExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("purga de sesiones")
				continue
			}
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("sesiones vencidas eliminadas")
			}
		}
	}
}
