package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"torresapp/internal/core"
	"torresapp/internal/dialog"
)

func (b *Bot) startMaterialFlow(chatID int64) {
	b.states.Set(chatID, stMatName, dialog.Payload{})
	msg := tgbotapi.NewMessage(chatID, "Nome do material:")
	msg.ReplyMarkup = cancelKeyboard()
	b.send(msg)
}

func (b *Bot) materialFlowText(ctx context.Context, chatID int64, conv *dialog.Conversation, text string) {
	switch conv.State {
	case stMatName:
		if text == "" {
			b.send(tgbotapi.NewMessage(chatID, "O nome é obrigatório."))
			return
		}
		conv.Payload["name"] = text
		b.states.Set(chatID, stMatUnit, conv.Payload)
		msg := tgbotapi.NewMessage(chatID, "Unidade de medida:")
		msg.ReplyMarkup = unitKeyboard()
		b.send(msg)

	case stMatCost:
		cost, err := parseMoney(text)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		conv.Payload["cost"] = cost
		b.states.Set(chatID, stMatStock, conv.Payload)
		b.send(tgbotapi.NewMessage(chatID, "Quantidade em estoque:"))

	case stMatStock:
		stock, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Quantidade inválida, informe um número inteiro."))
			return
		}
		name, _ := conv.Payload["name"].(string)
		unit, _ := conv.Payload["unit"].(string)
		cost, _ := conv.Payload["cost"].(decimal.Decimal)
		m := core.Material{
			ID:          newID("mat"),
			Name:        name,
			Unit:        core.Unit(unit),
			CostPerUnit: cost,
			Stock:       stock,
		}
		if err := b.store.Dispatch(ctx, core.AddMaterial{Material: m}); err != nil {
			b.send(tgbotapi.NewMessage(chatID, err.Error()))
			return
		}
		b.states.Clear(chatID)
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Material %s cadastrado.", m.Name)))
	}
}

func (b *Bot) materialUnitChosen(cb *tgbotapi.CallbackQuery, unit string) {
	chatID := cb.Message.Chat.ID
	conv := b.states.Get(chatID)
	if conv.State != stMatUnit {
		b.answerCallback(cb, "", false)
		return
	}
	conv.Payload["unit"] = unit
	b.states.Set(chatID, stMatCost, conv.Payload)
	b.editTextAndClear(chatID, cb.Message.MessageID, "Unidade: "+unit)
	b.send(tgbotapi.NewMessage(chatID, "Custo por unidade (R$):"))
	b.answerCallback(cb, "", false)
}

func (b *Bot) sendMaterialList(chatID int64) {
	st := b.store.State()
	if len(st.Materials) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Nenhum material cadastrado."))
		return
	}
	for _, m := range st.Materials {
		badge := ""
		if m.Stock < core.LowStockThreshold {
			badge = " ⚠️"
		}
		tag := ""
		if m.IsDefault {
			tag = " (padrão)"
		}
		text := fmt.Sprintf("%s%s\nEstoque: %d %s%s\nCusto: %s",
			m.Name, tag, m.Stock, m.Unit, badge, fmtMoney(m.CostPerUnit))
		msg := tgbotapi.NewMessage(chatID, text)
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("✏️ Estoque", "mat:stock:"+m.ID),
		}
		if !m.IsDefault {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑 Excluir", "mat:del:"+m.ID))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
		b.send(msg)
	}
}

func (b *Bot) materialAskStock(cb *tgbotapi.CallbackQuery, id string) {
	chatID := cb.Message.Chat.ID
	st := b.store.State()
	m := st.MaterialByID(id)
	if m == nil {
		b.answerCallback(cb, "Material não encontrado.", true)
		return
	}
	b.states.Set(chatID, stMatEditStock, dialog.Payload{"mat_id": id})
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Novo estoque de %s (atual: %d):", m.Name, m.Stock))
	msg.ReplyMarkup = cancelKeyboard()
	b.send(msg)
	b.answerCallback(cb, "", false)
}

func (b *Bot) materialEditStockText(ctx context.Context, chatID int64, conv *dialog.Conversation, text string) {
	stock, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Quantidade inválida, informe um número inteiro."))
		return
	}
	id, _ := conv.Payload["mat_id"].(string)
	st := b.store.State()
	m := st.MaterialByID(id)
	if m == nil {
		b.states.Clear(chatID)
		b.send(tgbotapi.NewMessage(chatID, "Material não encontrado."))
		return
	}
	updated := *m
	updated.Stock = stock
	if err := b.store.Dispatch(ctx, core.UpdateMaterial{Material: updated}); err != nil {
		b.send(tgbotapi.NewMessage(chatID, err.Error()))
		return
	}
	b.states.Clear(chatID)
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Estoque de %s atualizado para %d.", m.Name, stock)))
}

func (b *Bot) deleteMaterial(ctx context.Context, cb *tgbotapi.CallbackQuery, id string) {
	chatID := cb.Message.Chat.ID
	if err := b.store.Dispatch(ctx, core.DeleteMaterial{ID: id}); err != nil {
		if errors.Is(err, core.ErrDefaultMaterial) {
			b.answerCallback(cb, "Não é possível excluir materiais padrão.", true)
			return
		}
		b.answerCallback(cb, err.Error(), true)
		return
	}
	b.editTextAndClear(chatID, cb.Message.MessageID, "Material excluído.")
	b.answerCallback(cb, "", false)
}
