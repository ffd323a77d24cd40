package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"torresapp/internal/core"
	"torresapp/internal/dialog"
)

func (b *Bot) startPaymentFlow(chatID int64) {
	st := b.store.State()
	if len(st.Clients) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Cadastre um cliente antes de registrar pagamentos."))
		return
	}
	msg := tgbotapi.NewMessage(chatID, "Pagamento de qual cliente?")
	msg.ReplyMarkup = clientPickKeyboard(st.Clients, "pay:cl:")
	b.send(msg)
}

func (b *Bot) startPaymentForClient(chatID int64, clientID string) {
	st := b.store.State()
	c := st.ClientByID(clientID)
	if c == nil {
		b.send(tgbotapi.NewMessage(chatID, "Cliente não encontrado."))
		return
	}
	year := b.now().Year()
	b.states.Set(chatID, dialog.StateIdle, dialog.Payload{
		"pay_client": clientID,
		"pay_year":   year,
	})
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Mês de referência do pagamento de %s:", c.Name))
	msg.ReplyMarkup = monthKeyboard(year)
	b.send(msg)
}

func (b *Bot) paymentClientChosen(cb *tgbotapi.CallbackQuery, clientID string) {
	b.startPaymentForClient(cb.Message.Chat.ID, clientID)
	b.answerCallback(cb, "", false)
}

func (b *Bot) paymentMonthChosen(cb *tgbotapi.CallbackQuery, monthStr string) {
	chatID := cb.Message.Chat.ID
	conv := b.states.Get(chatID)
	clientID, _ := conv.Payload["pay_client"].(string)
	if clientID == "" {
		b.answerCallback(cb, "", false)
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		b.answerCallback(cb, "Mês inválido.", true)
		return
	}
	conv.Payload["pay_month"] = month
	b.states.Set(chatID, stPayAmount, conv.Payload)

	st := b.store.State()
	hint := ""
	if c := st.ClientByID(clientID); c != nil {
		hint = fmt.Sprintf(" (mensalidade: %s)", fmtMoney(c.MonthlyFee))
	}
	b.editTextAndClear(chatID, cb.Message.MessageID, fmt.Sprintf("Período: %02d/%d", month, conv.Payload["pay_year"]))
	b.send(tgbotapi.NewMessage(chatID, "Valor pago (R$)"+hint+":"))
	b.answerCallback(cb, "", false)
}

func (b *Bot) paymentAmountText(ctx context.Context, chatID int64, conv *dialog.Conversation, text string) {
	amount, err := parseMoney(text)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	clientID, _ := conv.Payload["pay_client"].(string)
	month, _ := conv.Payload["pay_month"].(int)
	year, _ := conv.Payload["pay_year"].(int)

	p := core.Payment{
		ID:       newID("pay"),
		ClientID: clientID,
		Amount:   amount,
		Date:     b.now().UTC(),
		Month:    month,
		Year:     year,
	}
	if err := b.store.Dispatch(ctx, core.AddPayment{Payment: p}); err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	b.states.Clear(chatID)

	name := clientID
	if c := b.store.State().ClientByID(clientID); c != nil {
		name = c.Name
	}
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Pagamento de %s registrado para %s (%02d/%d).", fmtMoney(amount), name, month, year)))
}
