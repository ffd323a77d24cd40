package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

// newID mints an opaque unique ID for a new entity. The operator is a single
// human; nanosecond timestamps cannot collide at that rate.
func newID(prefix string) string {
	return prefix + "-" + time.Now().UTC().Format("20060102150405.000000000")
}

// parseMoney accepts "12,50" or "12.50" and rounds to two decimals.
func parseMoney(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valor inválido: %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor não pode ser negativo")
	}
	return d.Round(2), nil
}

func fmtMoney(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}
