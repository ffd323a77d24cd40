package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"torresapp/internal/core"
	"torresapp/internal/dialog"
)

// catalogOrder is the display order of the installation material options in
// the new-client flow.
var catalogOrder = []string{
	core.MaterialCaboDrop,
	core.MaterialConector,
	core.MaterialONU,
	core.MaterialRoteador,
	core.MaterialONT,
}

func (b *Bot) startClientFlow(chatID int64) {
	b.states.Set(chatID, stClientName, dialog.Payload{})
	msg := tgbotapi.NewMessage(chatID, "Nome completo do cliente:")
	msg.ReplyMarkup = cancelKeyboard()
	b.send(msg)
}

func (b *Bot) clientFlowText(_ context.Context, chatID int64, conv *dialog.Conversation, text string) {
	switch conv.State {
	case stClientName:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "O nome é obrigatório."))
			return
		}
		conv.Payload["name"] = text
		b.states.Set(chatID, stClientAddress, conv.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Endereço:"))

	case stClientAddress:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "O endereço é obrigatório."))
			return
		}
		conv.Payload["address"] = text
		b.states.Set(chatID, stClientPhone, conv.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Telefone (ou - para pular):"))

	case stClientPhone:
		if text == "-" {
			text = ""
		}
		conv.Payload["phone"] = text
		b.states.Set(chatID, stClientFee, conv.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Mensalidade (R$):"))

	case stClientFee:
		fee, err := parseMoney(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		conv.Payload["fee"] = fee
		b.startInstallationSelection(chatID, conv)
	}
}

// startInstallationSelection moves the flow to the material-selection step,
// pre-checking the usual setup: Cabo Drop 50m, Conector 2, ONU 1,
// Roteador 1; ONT starts unchecked.
func (b *Bot) startInstallationSelection(chatID int64, conv *dialog.Conversation) {
	materials := b.installationOptions()
	items := make([]core.InstallationItem, 0, len(materials))
	for _, m := range materials {
		qty := 1
		switch m.Name {
		case core.MaterialCaboDrop:
			qty = 50
		case core.MaterialConector:
			qty = 2
		}
		items = append(items, core.InstallationItem{
			MaterialID: m.ID,
			Quantity:   qty,
			Selected:   m.Name != core.MaterialONT,
		})
	}
	conv.Payload["items"] = items
	b.states.Set(chatID, stClientMats, conv.Payload)

	msg := tgbotapi.NewMessage(chatID, "Materiais de instalação (ONT e ONU/Roteador são alternativas):")
	msg.ReplyMarkup = installationKeyboard(materials, items)
	b.send(msg)
}

// installationOptions returns the catalog-named materials in form order.
func (b *Bot) installationOptions() []core.Material {
	st := b.store.State()
	var out []core.Material
	for _, name := range catalogOrder {
		for _, m := range st.Materials {
			if m.Name == name {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func (b *Bot) installationItems(conv *dialog.Conversation) []core.InstallationItem {
	items, _ := conv.Payload["items"].([]core.InstallationItem)
	return items
}

func (b *Bot) installationToggle(cb *tgbotapi.CallbackQuery, materialID string) {
	chatID := cb.Message.Chat.ID
	conv := b.states.Get(chatID)
	if conv.State != stClientMats {
		b.answerCallback(cb, "", false)
		return
	}
	items := b.installationItems(conv)
	materials := b.installationOptions()
	nameByID := make(map[string]string, len(materials))
	for _, m := range materials {
		nameByID[m.ID] = m.Name
	}

	for i := range items {
		if items[i].MaterialID != materialID {
			continue
		}
		items[i].Selected = !items[i].Selected
		if items[i].Selected {
			// Mirror of the form rule: ONT replaces ONU+Roteador and
			// vice versa. The core validates this again on confirm.
			switch nameByID[materialID] {
			case core.MaterialONT:
				for j := range items {
					n := nameByID[items[j].MaterialID]
					if n == core.MaterialONU || n == core.MaterialRoteador {
						items[j].Selected = false
					}
				}
			case core.MaterialONU, core.MaterialRoteador:
				for j := range items {
					if nameByID[items[j].MaterialID] == core.MaterialONT {
						items[j].Selected = false
					}
				}
			}
		}
	}
	conv.Payload["items"] = items
	b.states.Set(chatID, stClientMats, conv.Payload)

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, installationKeyboard(materials, items))
	b.send(edit)
	b.answerCallback(cb, "", false)
}

func (b *Bot) installationAskQty(cb *tgbotapi.CallbackQuery, materialID string) {
	chatID := cb.Message.Chat.ID
	conv := b.states.Get(chatID)
	if conv.State != stClientMats {
		b.answerCallback(cb, "", false)
		return
	}
	conv.Payload["qty_for"] = materialID
	conv.Payload["mats_mid"] = cb.Message.MessageID
	b.states.Set(chatID, stClientMatQty, conv.Payload)
	b.send(tgbotapi.NewMessage(chatID, "Informe a quantidade:"))
	b.answerCallback(cb, "", false)
}

func (b *Bot) installationQtyText(chatID int64, conv *dialog.Conversation, text string) {
	qty, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || qty <= 0 {
		b.send(tgbotapi.NewMessage(chatID, "Quantidade inválida, informe um número inteiro positivo."))
		return
	}
	materialID, _ := conv.Payload["qty_for"].(string)
	items := b.installationItems(conv)
	for i := range items {
		if items[i].MaterialID == materialID {
			items[i].Quantity = qty
			items[i].Selected = true
		}
	}
	conv.Payload["items"] = items
	delete(conv.Payload, "qty_for")
	b.states.Set(chatID, stClientMats, conv.Payload)

	materials := b.installationOptions()
	if mid, ok := conv.Payload["mats_mid"].(int); ok {
		b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, mid, installationKeyboard(materials, items)))
	}
	b.send(tgbotapi.NewMessage(chatID, "Quantidade atualizada. Conclua a seleção no teclado acima."))
}

func (b *Bot) installationConfirm(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	conv := b.states.Get(chatID)
	if conv.State != stClientMats {
		b.answerCallback(cb, "", false)
		return
	}
	items := b.installationItems(conv)
	name, _ := conv.Payload["name"].(string)
	address, _ := conv.Payload["address"].(string)
	phone, _ := conv.Payload["phone"].(string)
	fee, _ := conv.Payload["fee"].(decimal.Decimal)

	now := b.now().UTC()
	client := core.Client{
		ID:               newID("cli"),
		Name:             name,
		Address:          address,
		Phone:            phone,
		InstallationDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		MonthlyFee:       fee,
	}

	cost := core.InstallationCost(b.store.State(), items)
	if err := b.store.CreateClientWithInstallation(ctx, client, items); err != nil {
		b.answerCallback(cb, err.Error(), true)
		return
	}
	b.states.Clear(chatID)
	b.editTextAndClear(chatID, cb.Message.MessageID,
		fmt.Sprintf("Cliente %s cadastrado. Custo da instalação: %s.", client.Name, fmtMoney(cost)))
	b.answerCallback(cb, "", false)
}

func (b *Bot) sendClientList(chatID int64) {
	st := b.store.State()
	if len(st.Clients) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Nenhum cliente cadastrado."))
		return
	}
	period := core.CurrentPeriod(b.now())
	overdue := make(map[string]bool)
	for _, c := range core.OverdueClients(st, period) {
		overdue[c.ID] = true
	}
	for _, c := range st.Clients {
		badge := "✅"
		if overdue[c.ID] {
			badge = "🚨"
		}
		phone := c.Phone
		if phone == "" {
			phone = "não informado"
		}
		text := fmt.Sprintf("%s %s\n%s\n📞 %s\nMensalidade: %s\nInstalação: %s",
			badge, c.Name, c.Address, phone, fmtMoney(c.MonthlyFee),
			c.InstallationDate.Format("02/01/2006"))
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("💰 Pagamento", "cl:pay:"+c.ID),
				tgbotapi.NewInlineKeyboardButtonData("🗑 Excluir", "cl:del:"+c.ID),
			),
		)
		b.send(msg)
	}
}

func (b *Bot) confirmDeleteClient(chatID int64, id string) {
	st := b.store.State()
	c := st.ClientByID(id)
	if c == nil {
		b.send(tgbotapi.NewMessage(chatID, "Cliente não encontrado."))
		return
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"Excluir %s? Os pagamentos e a ativação vinculados também serão removidos. O estoque consumido não retorna.", c.Name))
	msg.ReplyMarkup = confirmDeleteClientKeyboard(id)
	b.send(msg)
}

func (b *Bot) deleteClient(ctx context.Context, cb *tgbotapi.CallbackQuery, id string) {
	chatID := cb.Message.Chat.ID
	if err := b.store.Dispatch(ctx, core.DeleteClient{ID: id}); err != nil {
		b.answerCallback(cb, err.Error(), true)
		return
	}
	b.editTextAndClear(chatID, cb.Message.MessageID, "Cliente excluído.")
	b.answerCallback(cb, "", false)
}
