package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mklimuk/intent-pilot/pkg/ai"
	"github.com/mklimuk/intent-pilot/pkg/intention"
	"github.com/mklimuk/intent-pilot/pkg/notify"
	"github.com/mklimuk/intent-pilot/pkg/reminder"
)

// Bot delivers fired reminders to a single chat and routes the user's
// replies back through the response router.
type Bot struct {
	API      *tgbotapi.BotAPI
	ChatID   int64
	Router   *intention.Router
	Resolver *intention.Resolver
	AI       ai.Generator

	stopCh chan struct{}

	// pendingCategory remembers which reminder the user tapped "Set
	// intention" on, so their next plain-text message lands in the
	// right scope. Single-user, so one slot is enough.
	mu              sync.Mutex
	pendingCategory string
}

var _ notify.Sender = (*Bot)(nil)

// NewBot creates a new Telegram bot. aiClient may be nil; /suggest is
// then disabled.
func NewBot(token string, chatID int64, router *intention.Router, resolver *intention.Resolver, aiClient ai.Generator) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating Telegram bot: %w", err)
	}

	return &Bot{
		API:      api,
		ChatID:   chatID,
		Router:   router,
		Resolver: resolver,
		AI:       aiClient,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins polling for updates in a goroutine
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.API.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-b.stopCh:
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.CallbackQuery != nil {
					b.handleCallback(update.CallbackQuery)
				}
				if update.Message != nil {
					b.handleMessage(update.Message)
				}
			}
		}
	}()

	return nil
}

// Stop stops polling for updates
func (b *Bot) Stop() {
	close(b.stopCh)
	b.API.StopReceivingUpdates()
}

// Send delivers a fired reminder. Reply-capable categories get inline
// set/skip buttons; everything else is a plain message.
func (b *Bot) Send(ctx context.Context, n notify.Notification) error {
	msg := tgbotapi.NewMessage(b.ChatID, n.Title+"\n"+n.Body)
	if reminder.ReplyCategory(n.CategoryID) {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Set intention", BuildCallback(reminder.ActionSetIntention, n.CategoryID)),
				tgbotapi.NewInlineKeyboardButtonData("Skip", BuildCallback(reminder.ActionSkip, n.CategoryID)),
			),
		)
	}
	if _, err := b.API.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	action, category := ParseCallback(cb.Data)

	ack := ""
	switch action {
	case reminder.ActionSetIntention:
		b.mu.Lock()
		b.pendingCategory = category
		b.mu.Unlock()

		s := intention.ScopeForCategory(category)
		prompt := tgbotapi.NewMessage(b.ChatID, fmt.Sprintf("What's your intention for the %s?", s))
		prompt.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true}
		if _, err := b.API.Send(prompt); err != nil {
			log.Printf("Failed to send Telegram prompt: %v", err)
		}
	case reminder.ActionSkip:
		if _, err := b.Router.HandleResponse(context.Background(), reminder.ActionSkip, category, ""); err != nil {
			log.Printf("Failed to route skip: %v", err)
		}
		ack = "Skipped"
	}

	if _, err := b.API.Request(tgbotapi.NewCallback(cb.ID, ack)); err != nil {
		log.Printf("Failed to answer Telegram callback: %v", err)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	cmd, args := ParseCommand(msg.Text)
	switch cmd {
	case "/set":
		b.routeSet(reminder.CategoryDailyIntention, args)
	case "/suggest":
		b.handleSuggest(args)
	case "/status":
		b.handleStatus()
	default:
		b.mu.Lock()
		pending := b.pendingCategory
		b.pendingCategory = ""
		b.mu.Unlock()

		if pending != "" {
			b.routeSet(pending, msg.Text)
			return
		}
		b.reply("Use /set <text> to set today's intention, /suggest for an idea, /status for the active one.")
	}
}

func (b *Bot) routeSet(category, text string) {
	res, err := b.Router.HandleResponse(context.Background(), reminder.ActionSetIntention, category, text)
	if err != nil {
		b.reply(fmt.Sprintf("Couldn't set that: %v", err))
		return
	}
	// Confirmation and error notifications arrive through the
	// dispatcher; only the silent no-op needs a hint here.
	if res.Created == nil && res.Trigger == nil {
		b.reply("Nothing set. Send some text with it next time.")
	}
}

func (b *Bot) handleSuggest(args string) {
	if b.AI == nil {
		b.reply("Suggestions are not configured.")
		return
	}
	scopeName := "day"
	if args != "" {
		scopeName = strings.ToLower(strings.TrimSpace(args))
	}

	suggestion, err := b.AI.GenerateText(context.Background(), ai.SuggestIntentionPrompt(scopeName, nil))
	if err != nil {
		b.reply(fmt.Sprintf("Suggestion failed: %v", err))
		return
	}
	b.reply(fmt.Sprintf("How about: %s\nReply /set %s to use it.", suggestion, suggestion))
}

func (b *Bot) handleStatus() {
	active, err := b.Resolver.ResolveActive(context.Background(), time.Now())
	if err != nil {
		b.reply(fmt.Sprintf("Status check failed: %v", err))
		return
	}
	if active == nil {
		b.reply("No active intention.")
		return
	}
	b.reply(fmt.Sprintf("Active %s intention: %s", active.Scope, active.Text))
}

func (b *Bot) reply(text string) {
	if _, err := b.API.Send(tgbotapi.NewMessage(b.ChatID, text)); err != nil {
		log.Printf("Failed to send Telegram reply: %v", err)
	}
}

// BuildCallback encodes an action and category into inline button
// callback data.
func BuildCallback(action, category string) string {
	return action + "|" + category
}

// ParseCallback splits callback data back into action and category.
// Data without a separator is an action with no category.
func ParseCallback(data string) (action, category string) {
	parts := strings.SplitN(data, "|", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return data, ""
}

// ParseCommand extracts a known command and its arguments from a
// message text. Non-command text comes back with an empty command.
func ParseCommand(text string) (command, args string) {
	for _, cmd := range []string{"/set", "/suggest", "/status"} {
		if text == cmd {
			return cmd, ""
		}
		if strings.HasPrefix(text, cmd+" ") {
			return cmd, strings.TrimSpace(strings.TrimPrefix(text, cmd+" "))
		}
	}
	return "", text
}
