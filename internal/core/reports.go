package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the fixed stock level under which a material shows up
// in the low-stock report.
const LowStockThreshold = 10

// Period is the (month, year) pair payment coverage is evaluated against.
type Period struct {
	Month int // 1..12
	Year  int
}

func CurrentPeriod(now time.Time) Period {
	return Period{Month: int(now.Month()), Year: now.Year()}
}

func (p Period) String() string {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).Format("01/2006")
}

// MonthlyRevenue sums the payments recorded for the given period.
func MonthlyRevenue(state AppState, p Period) decimal.Decimal {
	total := decimal.Zero
	for _, pay := range state.Payments {
		if pay.Month == p.Month && pay.Year == p.Year {
			total = total.Add(pay.Amount)
		}
	}
	return total
}

// OverdueClients returns the clients with no payment in the given period.
// Only the reference period is checked; gaps in past periods do not count.
func OverdueClients(state AppState, p Period) []Client {
	paid := make(map[string]bool)
	for _, pay := range state.Payments {
		if pay.Month == p.Month && pay.Year == p.Year {
			paid[pay.ClientID] = true
		}
	}
	var out []Client
	for _, c := range state.Clients {
		if !paid[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// LowStock returns the materials whose stock fell below the threshold.
func LowStock(state AppState) []Material {
	var out []Material
	for _, m := range state.Materials {
		if m.Stock < LowStockThreshold {
			out = append(out, m)
		}
	}
	return out
}

// Summary is the dashboard projection for one period.
type Summary struct {
	TotalClients  int
	Revenue       decimal.Decimal
	OverdueCount  int
	LowStockCount int
}

func Summarize(state AppState, p Period) Summary {
	return Summary{
		TotalClients:  len(state.Clients),
		Revenue:       MonthlyRevenue(state, p),
		OverdueCount:  len(OverdueClients(state, p)),
		LowStockCount: len(LowStock(state)),
	}
}
