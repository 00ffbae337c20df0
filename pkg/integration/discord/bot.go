package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mklimuk/intent-pilot/pkg/intention"
	"github.com/mklimuk/intent-pilot/pkg/notify"
	"github.com/mklimuk/intent-pilot/pkg/reminder"
)

// Bot mirrors fired reminders into a Discord channel and accepts
// simple set/status commands. Inline actions live on the Telegram
// side; here the set action is the !intent command.
type Bot struct {
	Session   *discordgo.Session
	ChannelID string
	Router    *intention.Router
	Resolver  *intention.Resolver
}

var _ notify.Sender = (*Bot)(nil)

// NewBot creates a new Discord bot posting into the given channel.
func NewBot(token, channelID string, router *intention.Router, resolver *intention.Resolver) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	bot := &Bot{
		Session:   dg,
		ChannelID: channelID,
		Router:    router,
		Resolver:  resolver,
	}

	dg.AddHandler(bot.messageCreate)

	return bot, nil
}

// Start opens the websocket connection
func (b *Bot) Start() error {
	return b.Session.Open()
}

// Stop closes the websocket connection
func (b *Bot) Stop() error {
	return b.Session.Close()
}

// Send delivers a fired reminder to the channel.
func (b *Bot) Send(ctx context.Context, n notify.Notification) error {
	text := "**" + n.Title + "**\n" + n.Body
	if reminder.ReplyCategory(n.CategoryID) {
		text += "\nReply with `!intent <text>` to set it."
	}
	if _, err := b.Session.ChannelMessageSend(b.ChannelID, text); err != nil {
		return fmt.Errorf("discord send: %w", err)
	}
	return nil
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	if strings.HasPrefix(m.Content, "!intent ") {
		b.handleIntent(m, strings.TrimPrefix(m.Content, "!intent "))
	} else if m.Content == "!status" {
		b.handleStatus(m)
	}
}

func (b *Bot) handleIntent(m *discordgo.MessageCreate, text string) {
	res, err := b.Router.HandleResponse(context.Background(), reminder.ActionSetIntention, reminder.CategoryDailyIntention, text)
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("Couldn't set that: %v", err))
		return
	}
	if res.Created == nil && res.Trigger == nil {
		b.reply(m.ChannelID, "Nothing set. Add some text after !intent.")
	}
}

func (b *Bot) handleStatus(m *discordgo.MessageCreate) {
	active, err := b.Resolver.ResolveActive(context.Background(), time.Now())
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("Status check failed: %v", err))
		return
	}
	if active == nil {
		b.reply(m.ChannelID, "No active intention.")
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Active %s intention: %s", active.Scope, active.Text))
}

func (b *Bot) reply(channelID, text string) {
	if _, err := b.Session.ChannelMessageSend(channelID, text); err != nil {
		log.Printf("Failed to send Discord reply: %v", err)
	}
}
