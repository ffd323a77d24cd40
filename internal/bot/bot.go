// Package bot is the Telegram presentation layer. It builds actions out of
// the owner's messages, hands them to the state container and renders the
// derived reports. No business rule lives here; rejections coming back from
// the core are shown as-is.
package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"torresapp/internal/dialog"
	"torresapp/internal/state"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	log    *slog.Logger
	store  *state.Store
	states *dialog.Repo
	owner  int64
	now    func() time.Time
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, store *state.Store, states *dialog.Repo, ownerChatID int64) *Bot {
	return &Bot{
		api:    api,
		log:    log,
		store:  store,
		states: states,
		owner:  ownerChatID,
		now:    time.Now,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	if _, err := b.api.Request(resp); err != nil {
		b.log.Error("callback answer failed", "err", err)
	}
}

// isOwner gates every interaction. The bot manages one person's business;
// this is a static gate, not a security boundary.
func (b *Bot) isOwner(chatID int64) bool {
	return chatID == b.owner
}
