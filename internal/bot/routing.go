package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"torresapp/internal/dialog"
)

// Dialog states of the multi-step flows.
const (
	stClientName    dialog.State = "client:name"
	stClientAddress dialog.State = "client:address"
	stClientPhone   dialog.State = "client:phone"
	stClientFee     dialog.State = "client:fee"
	stClientMats    dialog.State = "client:materials"
	stClientMatQty  dialog.State = "client:material_qty"

	stMatName      dialog.State = "material:name"
	stMatUnit      dialog.State = "material:unit"
	stMatCost      dialog.State = "material:cost"
	stMatStock     dialog.State = "material:stock"
	stMatEditStock dialog.State = "material:edit_stock"

	stPayAmount dialog.State = "payment:amount"
)

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	chatID := upd.Message.Chat.ID
	if !b.isOwner(chatID) {
		b.send(tgbotapi.NewMessage(chatID, "Acesso restrito."))
		return
	}
	text := strings.TrimSpace(upd.Message.Text)

	if upd.Message.IsCommand() {
		switch upd.Message.Command() {
		case "start":
			b.states.Clear(chatID)
			msg := tgbotapi.NewMessage(chatID, "Bem-vindo ao Gestor TorresApp. Use o menu abaixo.")
			msg.ReplyMarkup = mainReplyKeyboard()
			b.send(msg)
			b.sendDashboard(chatID)
		default:
			b.send(tgbotapi.NewMessage(chatID, "Comando desconhecido. Use /start."))
		}
		return
	}

	switch text {
	case "Clientes":
		b.states.Clear(chatID)
		msg := tgbotapi.NewMessage(chatID, "Clientes:")
		msg.ReplyMarkup = clientsMenuKeyboard()
		b.send(msg)
		return
	case "Materiais":
		b.states.Clear(chatID)
		msg := tgbotapi.NewMessage(chatID, "Materiais:")
		msg.ReplyMarkup = materialsMenuKeyboard()
		b.send(msg)
		return
	case "Pagamentos":
		b.states.Clear(chatID)
		b.startPaymentFlow(chatID)
		return
	case "Relatórios":
		b.states.Clear(chatID)
		b.sendDashboard(chatID)
		msg := tgbotapi.NewMessage(chatID, "Relatórios:")
		msg.ReplyMarkup = reportsMenuKeyboard()
		b.send(msg)
		return
	}

	conv := b.states.Get(chatID)
	switch conv.State {
	case stClientName, stClientAddress, stClientPhone, stClientFee:
		b.clientFlowText(ctx, chatID, conv, text)
	case stClientMatQty:
		b.installationQtyText(chatID, conv, text)
	case stMatName, stMatCost, stMatStock:
		b.materialFlowText(ctx, chatID, conv, text)
	case stMatEditStock:
		b.materialEditStockText(ctx, chatID, conv, text)
	case stPayAmount:
		b.paymentAmountText(ctx, chatID, conv, text)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Use o menu abaixo para navegar."))
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	chatID := cb.Message.Chat.ID
	if !b.isOwner(chatID) {
		b.answerCallback(cb, "Acesso restrito.", true)
		return
	}
	data := cb.Data

	switch {
	case data == "nav:cancel":
		b.states.Clear(chatID)
		b.editTextAndClear(chatID, cb.Message.MessageID, "Operação cancelada.")
		b.answerCallback(cb, "", false)

	case data == "cl:add":
		b.startClientFlow(chatID)
		b.answerCallback(cb, "", false)
	case data == "cl:list":
		b.sendClientList(chatID)
		b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "cl:del:"):
		b.confirmDeleteClient(chatID, strings.TrimPrefix(data, "cl:del:"))
		b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "cl:delok:"):
		b.deleteClient(ctx, cb, strings.TrimPrefix(data, "cl:delok:"))
	case strings.HasPrefix(data, "cl:pay:"):
		b.startPaymentForClient(chatID, strings.TrimPrefix(data, "cl:pay:"))
		b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "inst:t:"):
		b.installationToggle(cb, strings.TrimPrefix(data, "inst:t:"))
	case strings.HasPrefix(data, "inst:q:"):
		b.installationAskQty(cb, strings.TrimPrefix(data, "inst:q:"))
	case data == "inst:ok":
		b.installationConfirm(ctx, cb)

	case data == "mat:add":
		b.startMaterialFlow(chatID)
		b.answerCallback(cb, "", false)
	case data == "mat:list":
		b.sendMaterialList(chatID)
		b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "mat:unit:"):
		b.materialUnitChosen(cb, strings.TrimPrefix(data, "mat:unit:"))
	case strings.HasPrefix(data, "mat:stock:"):
		b.materialAskStock(cb, strings.TrimPrefix(data, "mat:stock:"))
	case strings.HasPrefix(data, "mat:del:"):
		b.deleteMaterial(ctx, cb, strings.TrimPrefix(data, "mat:del:"))

	case strings.HasPrefix(data, "pay:cl:"):
		b.paymentClientChosen(cb, strings.TrimPrefix(data, "pay:cl:"))
	case strings.HasPrefix(data, "pay:m:"):
		b.paymentMonthChosen(cb, strings.TrimPrefix(data, "pay:m:"))

	case data == "rep:overdue":
		b.sendOverdueReport(chatID)
		b.answerCallback(cb, "", false)
	case data == "rep:stock":
		b.sendLowStockReport(chatID)
		b.answerCallback(cb, "", false)
	case data == "rep:xlsx":
		b.sendExcelReport(chatID)
		b.answerCallback(cb, "", false)

	default:
		b.answerCallback(cb, "", false)
	}
}
