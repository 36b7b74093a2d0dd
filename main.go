package main

import (
	"log"
	"os"
	"os/signal"

	"github.com/Orange-County-AI/clem/ai/clemchat"
	"github.com/Orange-County-AI/clem/config"
	"github.com/Orange-County-AI/clem/database"
	"github.com/Orange-County-AI/clem/discord"
	"github.com/Orange-County-AI/clem/logging"
	"github.com/Orange-County-AI/clem/metrics"
	"github.com/Orange-County-AI/clem/summarize"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	logger := logging.NewLogger(cfg.LoggerLevel(), os.Stdout)

	// listen and serve for metrics server.
	server := metrics.SetupServer(cfg.MetricsAddr)
	go server.Run()

	// setup postgres connection
	db, err := database.NewPostgres(cfg.PostgresURL, logger)
	if err != nil {
		log.Fatalln(err)
	}

	// setup llm connection
	llm, err := clemchat.Setup(cfg.Model, cfg.LLMBaseURL, logger)
	if err != nil {
		log.Fatalln(err)
	}

	var summarizer *summarize.Client
	if cfg.TranscriptAPIToken != "" || cfg.WebSummaryAPIToken != "" {
		summarizer = summarize.NewClient(cfg.TranscriptAPIToken, cfg.WebSummaryAPIToken, logger)
	} else {
		logger.Warn("no summarization tokens configured, link summaries disabled")
	}

	session, err := discord.Setup(cfg.BotToken, llm, db, summarizer, discord.Options{
		GuildName:      cfg.GuildName,
		WelcomeChannel: cfg.WelcomeChannel,
		AdminRole:      cfg.AdminRole,
		ModelName:      cfg.Model,
	}, logger)
	if err != nil {
		db.Close()
		log.Fatalln(err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	logger.Info("clem is running, press Ctrl+C to exit")

	<-stop
	if session.Session != nil {
		if err := session.Session.Close(); err != nil {
			logger.Error("error closing discord session", "error", err.Error())
		}
	}
	db.Close()
	logger.Info("shutting down")
}
