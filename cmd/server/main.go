package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/mklimuk/intent-pilot/pkg/ai"
	"github.com/mklimuk/intent-pilot/pkg/api"
	"github.com/mklimuk/intent-pilot/pkg/db"
	"github.com/mklimuk/intent-pilot/pkg/gitsync"
	"github.com/mklimuk/intent-pilot/pkg/integration/discord"
	"github.com/mklimuk/intent-pilot/pkg/integration/telegram"
	"github.com/mklimuk/intent-pilot/pkg/intention"
	"github.com/mklimuk/intent-pilot/pkg/notify"
	"github.com/mklimuk/intent-pilot/pkg/reminder"
	"github.com/mklimuk/intent-pilot/pkg/scope"
	"github.com/mklimuk/intent-pilot/pkg/widget"
)

func main() {
	dbPath := flag.String("db", "intent-pilot.db", "Path to SQLite DB")
	snapshotDir := flag.String("snapshot", "", "Directory for the intention snapshot note (optional)")
	port := flag.String("port", "8080", "HTTP Port")
	tz := flag.String("tz", "UTC", "Time zone reminders fire in")
	weekStart := flag.String("week-start", "sunday", "First day of the week: sunday or monday")
	aiProvider := flag.String("ai-provider", "gemini", "AI provider: gemini, openai or none")
	flag.Parse()

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		log.Fatalf("Unknown time zone %q: %v", *tz, err)
	}

	cal := scope.Config{FirstWeekday: time.Sunday, Location: loc}
	switch *weekStart {
	case "sunday":
	case "monday":
		cal.FirstWeekday = time.Monday
	default:
		log.Fatalf("Unknown week start %q, use sunday or monday", *weekStart)
	}

	// Initialize DB
	database, err := db.NewDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer database.Close()

	if err := database.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	repo := db.NewRepository(database, cal)
	resolver := intention.NewResolver(repo, cal)

	// Initialize AI Client
	var aiClient ai.Generator
	switch *aiProvider {
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			log.Fatal("OPENAI_API_KEY environment variable is required when using openai provider")
		}
		aiClient = ai.NewOpenAIClient(key)
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required when using gemini provider")
		}
		geminiClient, err := ai.NewClient(context.Background(), key)
		if err != nil {
			log.Fatalf("Failed to create AI client: %v", err)
		}
		defer geminiClient.Close()
		aiClient = geminiClient
	case "none":
	default:
		log.Fatalf("Unknown AI provider: %s", *aiProvider)
	}

	// Initialize reminder dispatcher
	runner := notify.NewRunner(loc, 30*time.Second)

	// Initialize widget snapshot (Optional)
	var widgetSync intention.WidgetSync
	if *snapshotDir != "" {
		gitManager := gitsync.NewManager(*snapshotDir)
		widgetSync = widget.NewWriter(*snapshotDir, resolver, gitManager)
	}

	responseRouter := intention.NewRouter(repo, runner, widgetSync, cal)

	// Initialize Telegram Bot (Optional)
	telegramToken := os.Getenv("TELEGRAM_TOKEN")
	if telegramToken != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("TELEGRAM_CHAT_ID must be a numeric chat id: %v", err)
		}
		tgBot, err := telegram.NewBot(telegramToken, chatID, responseRouter, resolver, aiClient)
		if err != nil {
			log.Printf("Failed to create Telegram bot: %v", err)
		} else {
			if err := tgBot.Start(); err != nil {
				log.Printf("Failed to start Telegram bot: %v", err)
			} else {
				log.Println("Telegram Bot started")
				runner.AddSender(tgBot)
				defer tgBot.Stop()
			}
		}
	}

	// Initialize Discord Bot (Optional)
	discordToken := os.Getenv("DISCORD_TOKEN")
	if discordToken != "" {
		channelID := os.Getenv("DISCORD_CHANNEL_ID")
		if channelID == "" {
			log.Fatal("DISCORD_CHANNEL_ID environment variable is required when DISCORD_TOKEN is set")
		}
		bot, err := discord.NewBot(discordToken, channelID, responseRouter, resolver)
		if err != nil {
			log.Printf("Failed to create Discord bot: %v", err)
		} else {
			if err := bot.Start(); err != nil {
				log.Printf("Failed to start Discord bot: %v", err)
			} else {
				log.Println("Discord Bot started")
				runner.AddSender(bot)
				defer bot.Stop()
			}
		}
	}

	// Install the stored reminder schedule before the first poll.
	settings, err := repo.LoadSettings(context.Background())
	if err != nil {
		log.Fatalf("Failed to load reminder settings: %v", err)
	}
	policy := reminder.NewPolicy()
	installed := 0
	for _, t := range policy.BuildSchedule(settings) {
		if err := runner.Schedule(t); err != nil {
			log.Printf("Trigger %s rejected: %v", t.ID, err)
			continue
		}
		installed++
	}
	log.Printf("Installed %d reminder triggers (%s)", installed, settings.Frequency)

	runner.Start()
	defer runner.Stop()

	// Write an initial snapshot so the widget has something to read.
	if widgetSync != nil {
		if err := widgetSync.Refresh(context.Background()); err != nil {
			log.Printf("Initial snapshot write failed: %v", err)
		}
	}

	router := api.NewRouter(repo, resolver, runner, policy, aiClient, widgetSync, cal)

	log.Printf("Starting server on :%s", *port)
	if err := http.ListenAndServe(":"+*port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
