package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/turjubaan/turjubaan/config"
	"github.com/turjubaan/turjubaan/events"
	"github.com/turjubaan/turjubaan/interfaces"
	logger "github.com/turjubaan/turjubaan/log"
	"github.com/turjubaan/turjubaan/prefs"
	"github.com/turjubaan/turjubaan/services"
	"github.com/turjubaan/turjubaan/session"
	"github.com/turjubaan/turjubaan/stt"
	"github.com/turjubaan/turjubaan/telegram"
	"github.com/turjubaan/turjubaan/worker"
)

type App struct {
	Config    *config.Config
	Bot       *tgbotapi.BotAPI
	Logger    logger.Logger
	Prefs     *prefs.Store
	STTClient interfaces.SpeechToText
	Status    *services.StatusServer
	Pool      *worker.Pool
	Handler   *events.Handler
}

func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("fatal error loading config: %w", err)
	}

	bot, err := session.NewSession(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Telegram session: %w", err)
	}

	appLogger := logger.NewLogger(bot, cfg.LogChatID)

	store := prefs.NewStore(cfg.PreferencesFile, appLogger)
	store.Load()

	sttClient, err := stt.New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize STT client: %w", err)
	}

	status := services.NewStatusServer(cfg.StatusPort, appLogger)
	transport := telegram.NewTransport(bot)
	pool := worker.New(cfg.WorkerCount, cfg.JobQueueSize, transport, sttClient, store, status, appLogger, cfg.DownloadsDir, cfg.TranscribeTimeout)
	handler := events.NewHandler(bot, pool, store, appLogger)

	return &App{
		Config:    cfg,
		Bot:       bot,
		Logger:    appLogger,
		Prefs:     store,
		STTClient: sttClient,
		Status:    status,
		Pool:      pool,
		Handler:   handler,
	}, nil
}

func (a *App) Run() {
	if err := os.MkdirAll(a.Config.DownloadsDir, 0o755); err != nil {
		a.Logger.Fatal("Error creating downloads directory", err)
	}

	a.Status.Start()
	a.Pool.Start()

	a.Logger.Infof("Starting Transcription Bot as @%s", a.Bot.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := a.Bot.GetUpdatesChan(updateConfig)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	for {
		select {
		case update := <-updates:
			a.Handler.HandleUpdate(update)
		case <-sc:
			a.Bot.StopReceivingUpdates()
			a.STTClient.Close()
			fmt.Println("\nBot shutting down.")
			return
		}
	}
}
