package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"bumpbot/internal/bot"
	"bumpbot/internal/config"
)

func main() {
	// A .env file is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn("Failed to read .env file:", "err", err)
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if errors.Is(err, config.ErrMissingToken) {
		log.Error("Discord bot token not found. Set DISCORD_TOKEN in the environment or a .env file.")
		return
	}
	if err != nil {
		log.Fatal("Failed to load configuration:", "err", err)
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			log.Warn("Failed to close log file:", "err", err)
		}
	}()

	// Create and start bot
	bumpBot, err := bot.New(cfg)
	if err != nil {
		cfg.Logger.Error("Failed to create bot:", "err", err)
		return
	}

	if err := bumpBot.Start(); err != nil {
		cfg.Logger.Error("Failed to start bot:", "err", err)
	}
}
