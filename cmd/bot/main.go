package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-character-sheet/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-character-sheet/internal/clients/sheetapi"
	"github.com/KirkDiggler/dnd-character-sheet/internal/config"
	"github.com/KirkDiggler/dnd-character-sheet/internal/dice"
	"github.com/KirkDiggler/dnd-character-sheet/internal/domain/rulebook"
	"github.com/KirkDiggler/dnd-character-sheet/internal/handlers/discord"
	"github.com/KirkDiggler/dnd-character-sheet/internal/logging"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/sheet"
	"github.com/KirkDiggler/dnd-character-sheet/internal/services/skillcheck"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}

	log := logging.CreateLogger("sheet-bot", cfg.LogLevel)
	if envErr != nil {
		log.Debug("No .env file found")
	}

	if err := cfg.ValidateBot(); err != nil {
		log.WithError(err).Fatal("Invalid bot config")
	}

	catalog, err := loadCatalog(cfg.Sheet.CatalogPath)
	if err != nil {
		log.WithError(err).WithField("path", cfg.Sheet.CatalogPath).Fatal("Failed to load catalog")
	}

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Discord session")
	}

	client, err := sheetapi.New(&sheetapi.Config{
		HttpClient: &http.Client{Timeout: cfg.Sheet.HTTPTimeout},
		Endpoint:   cfg.Sheet.APIURL,
		Logger:     log,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create character endpoint client")
	}

	notifiers := sheet.Notifiers{&sheet.LogNotifier{Log: log}}
	if cfg.Discord.NoticeChannelID != "" {
		notifiers = append(notifiers, discord.NewChannelNotifier(dg, cfg.Discord.NoticeChannelID, log))
	}

	service := sheet.NewService(&sheet.ServiceConfig{
		Client: client,
		SkillCheck: skillcheck.NewService(&skillcheck.ServiceConfig{
			Roller: dice.NewRandomRoller(),
		}),
		Catalog:  catalog,
		Notifier: notifiers,
		Logger:   log,
	})

	handler := discord.NewHandler(&discord.HandlerConfig{
		Service:        service,
		Catalog:        catalog,
		Logger:         log,
		RequestTimeout: cfg.Sheet.HTTPTimeout,
	})
	dg.AddHandler(handler.HandleInteraction)

	if err := dg.Open(); err != nil {
		log.WithError(err).Fatal("Failed to open Discord connection")
	}
	defer func() {
		if err := dg.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Discord connection")
		}
	}()

	if err := handler.RegisterCommands(dg, cfg.Discord.GuildID); err != nil {
		log.WithError(err).Error("Failed to register commands")
		return
	}
	if cfg.Discord.GuildID == "" {
		log.Info("Registered global commands (may take up to 1 hour to propagate)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Initial load; failures surface as a notice and leave the sheet empty
	g.Go(func() error {
		_, _ = service.Load(gctx)
		return nil
	})

	if cfg.DND5E.Verify {
		g.Go(func() error {
			return verifyCatalog(gctx, cfg, catalog, log)
		})
	}

	log.Info("Bot is now running. Press CTRL-C to exit.")
	<-ctx.Done()
	log.Info("Shutting down...")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Warn("Background task failed")
	}
}

func loadCatalog(path string) (*rulebook.Catalog, error) {
	if path == "" {
		return rulebook.DefaultCatalog(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return rulebook.LoadCatalog(f)
}

func verifyCatalog(ctx context.Context, cfg *config.Config, catalog *rulebook.Catalog, log logrus.FieldLogger) error {
	client, err := dnd5e.New(&dnd5e.Config{
		HttpClient: &http.Client{Timeout: cfg.Sheet.HTTPTimeout},
		BaseURL:    cfg.DND5E.BaseURL,
	})
	if err != nil {
		log.WithError(err).Warn("Skipping catalog verification")
		return nil
	}

	report, err := dnd5e.NewVerifier(&dnd5e.VerifierConfig{
		Client: client,
		Logger: log,
	}).Verify(ctx, catalog)
	if err != nil {
		return err
	}

	if !report.OK() {
		log.WithFields(logrus.Fields{
			"unknown":   report.Unknown,
			"not_skill": report.NotSkill,
		}).Warn("Catalog has skills the D&D 5e API does not know")
	}
	return nil
}
