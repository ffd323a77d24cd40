package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"torresapp/internal/core"
)

func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton("Clientes"), tgbotapi.NewKeyboardButton("Materiais")},
			{tgbotapi.NewKeyboardButton("Pagamentos"), tgbotapi.NewKeyboardButton("Relatórios")},
		},
	}
}

func cancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Cancelar", "nav:cancel"),
		),
	)
}

func clientsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Novo cliente", "cl:add"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Listar", "cl:list"),
		),
	)
}

func materialsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Novo material", "mat:add"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Listar", "mat:list"),
		),
	)
}

func reportsMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚨 Inadimplentes", "rep:overdue"),
			tgbotapi.NewInlineKeyboardButtonData("📦 Estoque baixo", "rep:stock"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Exportar Excel", "rep:xlsx"),
		),
	)
}

func unitKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("unidades", "mat:unit:unidades"),
			tgbotapi.NewInlineKeyboardButtonData("metros", "mat:unit:metros"),
		),
		cancelKeyboard().InlineKeyboard[0],
	)
}

func confirmDeleteClientKeyboard(id string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Confirmar exclusão", "cl:delok:"+id),
			tgbotapi.NewInlineKeyboardButtonData("✖️ Cancelar", "nav:cancel"),
		),
	)
}

// installationKeyboard renders the material-selection step of the new-client
// flow: one row per catalog material with its checked state and quantity.
func installationKeyboard(materials []core.Material, items []core.InstallationItem) tgbotapi.InlineKeyboardMarkup {
	byID := make(map[string]core.InstallationItem, len(items))
	for _, it := range items {
		byID[it.MaterialID] = it
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, m := range materials {
		it := byID[m.ID]
		check := "⬜"
		if it.Selected {
			check = "✅"
		}
		label := fmt.Sprintf("%s %s — %d %s", check, m.Name, it.Quantity, m.Unit)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "inst:t:"+m.ID),
			tgbotapi.NewInlineKeyboardButtonData("✏️ qtd", "inst:q:"+m.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✔️ Concluir", "inst:ok"),
		tgbotapi.NewInlineKeyboardButtonData("✖️ Cancelar", "nav:cancel"),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func clientPickKeyboard(clients []core.Client, prefix string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range clients {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Name, prefix+c.ID),
		))
	}
	rows = append(rows, cancelKeyboard().InlineKeyboard[0])
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func monthKeyboard(year int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for start := 1; start <= 12; start += 4 {
		var row []tgbotapi.InlineKeyboardButton
		for m := start; m < start+4; m++ {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%02d/%d", m, year), "pay:m:"+strconv.Itoa(m),
			))
		}
		rows = append(rows, row)
	}
	rows = append(rows, cancelKeyboard().InlineKeyboard[0])
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}
