package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/cotizador-api/internal/application/analytics"
	"github.com/jhoicas/cotizador-api/internal/application/auth"
	"github.com/jhoicas/cotizador-api/internal/application/clients"
	"github.com/jhoicas/cotizador-api/internal/application/expenses"
	"github.com/jhoicas/cotizador-api/internal/application/quotes"
	"github.com/jhoicas/cotizador-api/internal/application/rates"
	infraexcel "github.com/jhoicas/cotizador-api/internal/infrastructure/excel"
	"github.com/jhoicas/cotizador-api/internal/infrastructure/nbp"
	infrapdf "github.com/jhoicas/cotizador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cotizador-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cotizador-api/internal/interfaces/http"
	"github.com/jhoicas/cotizador-api/pkg/config"
	"github.com/jhoicas/cotizador-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	rateCacheStore := postgres.NewRateCacheStore(pool)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoQuoteGenerator()
	xlsxGenerator := infraexcel.NewQuoteXLSXGenerator()
	quoteUC := quotes.NewUseCase(quoteRepo, expenseRepo, pdfGenerator, xlsxGenerator)
	expenseUC := expenses.NewUseCase(expenseRepo)
	clientUC := clients.NewUseCase(clientRepo)
	dashboardUC := analytics.NewUseCase(quoteRepo, expenseRepo)

	nbpClient := nbp.NewClient(cfg.NBP.BaseURL)
	ratesSvc := rates.NewService(rates.Config{
		BaseCurrency: cfg.NBP.BaseCurrency,
		LiveTTL:      cfg.NBP.LiveTTL,
		HistoryTTL:   cfg.NBP.HistoryTTL,
		FetchTimeout: cfg.NBP.FetchTimeout,
	}, nbpClient, rateCacheStore, log)

	// Calienta la tabla al arrancar sin bloquear el arranque.
	ratesSvc.RefreshAsync(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		QuoteUC:     quoteUC,
		ExpenseUC:   expenseUC,
		ClientUC:    clientUC,
		DashboardUC: dashboardUC,
		RatesSvc:    ratesSvc,
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

	log.Info().Msg("servidor cerrado")
}
