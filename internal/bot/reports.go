package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"torresapp/internal/core"
	"torresapp/internal/export"
)

func (b *Bot) sendDashboard(chatID int64) {
	st := b.store.State()
	p := core.CurrentPeriod(b.now())
	sum := core.Summarize(st, p)
	text := fmt.Sprintf(
		"📊 Resumo %s\n\nClientes: %d\nReceita do mês: %s\nInadimplentes: %d\nEstoque baixo: %d",
		p.String(), sum.TotalClients, fmtMoney(sum.Revenue), sum.OverdueCount, sum.LowStockCount)
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendOverdueReport(chatID int64) {
	st := b.store.State()
	p := core.CurrentPeriod(b.now())
	overdue := core.OverdueClients(st, p)
	if len(overdue) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Nenhum cliente inadimplente este mês. Bom trabalho!"))
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚨 Inadimplentes em %s:\n", p.String())
	for _, c := range overdue {
		phone := c.Phone
		if phone == "" {
			phone = "não informado"
		}
		fmt.Fprintf(&sb, "\n%s\n%s\n📞 %s\nMensalidade: %s\n", c.Name, c.Address, phone, fmtMoney(c.MonthlyFee))
	}
	b.send(tgbotapi.NewMessage(chatID, sb.String()))
}

func (b *Bot) sendLowStockReport(chatID int64) {
	st := b.store.State()
	low := core.LowStock(st)
	if len(low) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "Nenhum material com estoque baixo."))
		return
	}
	var sb strings.Builder
	sb.WriteString("📦 Materiais com estoque baixo:\n")
	for _, m := range low {
		fmt.Fprintf(&sb, "\n%s: %d %s", m.Name, m.Stock, m.Unit)
	}
	b.send(tgbotapi.NewMessage(chatID, sb.String()))
}

func (b *Bot) sendExcelReport(chatID int64) {
	st := b.store.State()
	p := core.CurrentPeriod(b.now())
	data, err := export.MonthlyReport(st, p)
	if err != nil {
		b.log.Error("report export failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Falha ao gerar o relatório."))
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("relatorio-%02d-%d.xlsx", p.Month, p.Year),
		Bytes: data,
	})
	doc.Caption = "Relatório mensal " + p.String()
	b.send(doc)
}
