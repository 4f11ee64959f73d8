package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gridbugs/gws/internal/agent"
	"github.com/gridbugs/gws/internal/engine"
	"github.com/gridbugs/gws/internal/infrastructure/storage"
	"github.com/gridbugs/gws/internal/server"
	"github.com/gridbugs/gws/internal/version"
	"github.com/gridbugs/gws/pkg/logger"
)

// snapshotStore - файлы в ./saves или слоты данных приложения (GWS_SAVE_APP)
type snapshotStore interface {
	Save(name string, snap engine.Snapshot) error
	Load(name string) (engine.Snapshot, error)
}

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed       int64
		configPath string
		withBot    bool
		loadName   string
		saveName   string
	)
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Initial world seed (0 for random)")
	flag.StringVar(&configPath, "config", "", "Path to engine YAML config")
	flag.BoolVar(&withBot, "bot", false, "Let a headless bot play")
	flag.StringVar(&loadName, "load", "", "Save to resume from")
	flag.StringVar(&saveName, "save", "", "Save name to write on shutdown")
	flag.Parse()

	log := logger.For("main")
	log.Info("Starting gws...")
	log.Info(version.String())

	// Формируем конфиг
	cfg := engine.NewConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			log.WithError(err).Fatal("Failed to load config")
		}
		cfg = loaded
	}
	if seed != 0 {
		cfg.Seed = seed
		log.Infof("Using explicit Master Seed: %d", seed)
	} else {
		log.Infof("Using Master Seed: %d", cfg.Seed)
	}

	port := os.Getenv("GWS_PORT")
	if port == "" {
		port = "8080"
	}

	saves, err := openStore()
	if err != nil {
		log.WithError(err).Fatal("Failed to open save storage")
	}

	// 2. Инициализация ядра с конфигом
	gameService := engine.NewService(cfg)
	if loadName != "" {
		snap, err := saves.Load(loadName)
		if err != nil {
			log.WithError(err).Fatal("Failed to load save")
		}
		gameService.Restore(snap)
		log.WithField("level", snap.Level).Infof("Resuming from %q", loadName)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := gameService.Run(ctx); err != nil {
			log.WithError(err).Fatal("Game service stopped")
		}
	}()

	if withBot {
		bot := agent.NewBot(gameService, cfg.Seed)
		go bot.Run(ctx)
	}

	// 3. Запуск сервера
	srv := server.New(gameService, saves, port)
	go func() {
		if err := srv.Run(ctx); err != nil {
			log.WithError(err).Fatal("Server start error")
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("Shutting down...")

	// Сохраняем уровень, пока цикл инстанса ещё жив
	if saveName != "" {
		saveCtx, saveCancel := context.WithTimeout(ctx, 2*time.Second)
		snap, err := gameService.Snapshot(saveCtx)
		saveCancel()
		if err != nil {
			log.WithError(err).Error("Failed to snapshot level")
		} else if err := saves.Save(saveName, snap); err != nil {
			log.WithError(err).Error("Failed to save level")
		}
	}

	cancel()
	log.Info("Done.")
}

func openStore() (snapshotStore, error) {
	if app := os.Getenv("GWS_SAVE_APP"); app != "" {
		return storage.OpenSlotStore(app)
	}
	return storage.NewFileStore("saves")
}
