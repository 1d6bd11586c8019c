package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/getsentry/sentry-go"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/alexanderramin/matchday/internal/cli"
	"github.com/alexanderramin/matchday/internal/config"
	"github.com/alexanderramin/matchday/internal/db"
	"github.com/alexanderramin/matchday/internal/football"
	"github.com/alexanderramin/matchday/internal/intelligence"
	"github.com/alexanderramin/matchday/internal/llm"
	"github.com/alexanderramin/matchday/internal/logging"
	"github.com/alexanderramin/matchday/internal/metrics"
	"github.com/alexanderramin/matchday/internal/repository"
	"github.com/alexanderramin/matchday/internal/server"
	"github.com/alexanderramin/matchday/internal/service"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrQuestionFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.NewLogger("matchday", cfg.LogLevel, cfg.LogFormat)
	log.WithFields(logrus.Fields{
		"version":      version,
		"season":       cfg.Season,
		"llm_provider": cfg.LLM.Provider,
		"llm_model":    cfg.LLM.Model,
		"llm_api_key":  logging.RedactToken(cfg.LLM.APIKey),
		"football_key": logging.RedactToken(cfg.Football.APIKey),
		"history_db":   cfg.HistoryDB,
	}).Debug("configuration loaded")

	if err := logging.InitSentry(cfg.SentryDSN, cfg.Environment, version); err != nil {
		log.WithError(err).Warn("sentry disabled")
	}
	defer logging.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.OpenDB(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer database.Close()

	m := metrics.NewManager()
	questions := repository.NewSQLiteQuestionRepo(database)

	app := &cli.App{
		History: service.NewHistoryService(questions),
		Defaults: cli.Defaults{
			Season: cfg.Season,
			LastN:  cfg.Football.LastN,
			NextN:  cfg.Football.NextN,
		},
		ServeAddr: cfg.Server.Addr,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	gateway, err := football.NewClient(cfg.FootballClient(football.MultiObserver{
		football.NewLogObserver(log.WithField("component", "football")),
		m,
	}))
	if err != nil {
		app.GatewayErr = err
	} else {
		app.Gateway = gateway
	}

	var llmClient llm.LLMClient
	switch {
	case !cfg.LLM.Enabled:
		app.AskErr = errors.New("the language model is disabled (llm.enabled=false)")
	case app.Gateway == nil:
		app.AskErr = app.GatewayErr
	default:
		observers := llm.MultiObserver{m}
		if cfg.LLM.LogCalls {
			observers = append(observers, llm.NewLogObserver(log.WithField("component", "llm")))
		}
		llmClient, err = llm.NewClient(cfg.LLM, observers)
		if err != nil {
			app.AskErr = err
			break
		}
		app.Ask = service.NewAskService(service.AskDeps{
			Extractor:   intelligence.NewExtractorService(llmClient, cfg.Extractor(log.WithField("component", "extractor"))),
			Collector:   service.NewCollector(app.Gateway, cfg.Football.LastN),
			Synthesizer: intelligence.NewSynthesizerService(llmClient),
			Composer:    intelligence.NewComposerService(llmClient),
			History:     questions,
			Log:         log.WithField("component", "ask"),
			Clock:       cfg.Clock(),
		},
			service.NewLogUseCaseObserver(log.WithField("component", "service")),
			m,
			logging.NewSentryObserver(sentry.CurrentHub()),
		)
	}

	app.Serve = func(ctx context.Context, addr string) error {
		return server.New(server.Deps{
			Ask:          app.Ask,
			LLM:          llmClient,
			GatewayReady: app.Gateway != nil,
			Metrics:      m,
			Log:          log.WithField("component", "http"),
		}).Run(ctx, addr)
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
