// Package export builds the monthly report workbook the bot sends as a
// document: period summary, overdue clients and current stock.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"torresapp/internal/core"
)

// MonthlyReport renders the report for one reference period as .xlsx bytes.
func MonthlyReport(state core.AppState, p core.Period) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sum := core.Summarize(state, p)

	resumo := "Resumo"
	if err := f.SetSheetName(f.GetSheetName(0), resumo); err != nil {
		return nil, err
	}
	setRow(f, resumo, 1, "Período", p.String())
	setRow(f, resumo, 2, "Total de clientes", sum.TotalClients)
	setRow(f, resumo, 3, "Receita do mês (R$)", sum.Revenue.StringFixed(2))
	setRow(f, resumo, 4, "Clientes inadimplentes", sum.OverdueCount)
	setRow(f, resumo, 5, "Itens com estoque baixo", sum.LowStockCount)

	overdue := "Inadimplentes"
	if _, err := f.NewSheet(overdue); err != nil {
		return nil, err
	}
	setRow(f, overdue, 1, "Nome", "Endereço", "Telefone", "Mensalidade (R$)")
	for i, c := range core.OverdueClients(state, p) {
		setRow(f, overdue, i+2, c.Name, c.Address, c.Phone, c.MonthlyFee.StringFixed(2))
	}

	estoque := "Estoque"
	if _, err := f.NewSheet(estoque); err != nil {
		return nil, err
	}
	setRow(f, estoque, 1, "Material", "Unidade", "Custo (R$)", "Estoque", "Baixo")
	for i, m := range state.Materials {
		low := ""
		if m.Stock < core.LowStockThreshold {
			low = "sim"
		}
		setRow(f, estoque, i+2, m.Name, string(m.Unit), m.CostPerUnit.StringFixed(2), m.Stock, low)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheet, cell, v)
	}
}
