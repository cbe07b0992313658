package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/tripagent/tripagent/internal/agent"
	pkgconfig "github.com/tripagent/tripagent/internal/pkg/config"
	"github.com/tripagent/tripagent/internal/pkg/logging"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	_ = godotenv.Load()

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	var configPath string
	var token string
	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.StringVar(&token, "token", "", "Telegram bot token (overrides config and TELEGRAM_BOT_TOKEN env var)")
	flag.Parse()

	appConfig, err := pkgconfig.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if token != "" {
		appConfig.Telegram.Token = token
	}
	if appConfig.Telegram.Token == "" {
		log.Fatal("Telegram bot token is required. Set -token flag, telegram.token in config, or TELEGRAM_BOT_TOKEN env var")
	}

	logging.Setup(&appConfig.Logging, "telegram-bot")

	bot, err := tgbotapi.NewBotAPI(appConfig.Telegram.Token)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	bot.Debug = false
	log.Printf("Authorized on account %s", bot.Self.UserName)

	a := agent.New(appConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping bot...")
		cancel()
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = appConfig.Telegram.UpdateTimeout
	updates := bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				bot.StopReceivingUpdates()
				return
			case update := <-updates:
				if update.Message == nil {
					continue
				}

				if len(appConfig.Telegram.AllowedUserIDs) > 0 && !isAllowed(update.Message.From.ID, appConfig.Telegram.AllowedUserIDs) {
					reply(bot, update.Message.Chat.ID, "Access denied. You are not authorized to use this bot.")
					continue
				}

				handleMessage(ctx, bot, a, update.Message)
			}
		}
	}()

	<-ctx.Done()
	log.Println("Telegram bot stopped")
}

func handleMessage(ctx context.Context, bot *tgbotapi.BotAPI, a *agent.Agent, message *tgbotapi.Message) {
	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/") {
		switch strings.ToLower(strings.Fields(text)[0]) {
		case "/start", "/help":
			reply(bot, message.Chat.ID, helpMessage())
		default:
			reply(bot, message.Chat.ID, "Unknown command. Send a free-text query, or /help.")
		}
		return
	}

	// Every plain text message is one travel query.
	reply(bot, message.Chat.ID, "Searching for events, this can take a minute...")

	result, err := a.HandleQuery(ctx, text)
	if err != nil {
		reply(bot, message.Chat.ID, fmt.Sprintf("Sorry, that did not work: %v", err))
		return
	}

	reply(bot, message.Chat.ID, result.Recommendation)
}

func isAllowed(userID int64, allowed []int64) bool {
	for _, id := range allowed {
		if userID == id {
			return true
		}
	}
	return false
}

func reply(bot *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := bot.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func helpMessage() string {
	return `Travel event assistant.

Send me a free-text query and I will look up matching events and recommend the top picks.

Examples:
- I am looking for concerts in Lyon
- Sports events in Marseille
- Theatre shows in Paris`
}
