package analytics

import (
	"math"
	"sort"
	"strings"

	"serenity-backend/models"
)

type ProfitAndLoss struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	ProfitMargin  float64 `json:"profitMargin"`
}

// PnL computes the period statement from materialized revenue and expense rows.
func PnL(revenues []models.RevenueRecord, expenses []models.Expense) ProfitAndLoss {
	var p ProfitAndLoss
	for _, r := range revenues {
		p.TotalRevenue += r.Total
	}
	for _, e := range expenses {
		p.TotalExpenses += e.Amount
	}
	p.TotalRevenue = models.Round2(p.TotalRevenue)
	p.TotalExpenses = models.Round2(p.TotalExpenses)
	p.NetProfit = models.Round2(p.TotalRevenue - p.TotalExpenses)
	if p.TotalRevenue != 0 {
		p.ProfitMargin = math.Round(p.NetProfit/p.TotalRevenue*1000) / 10
	}
	return p
}

type SubcategorySpend struct {
	Subcategory string  `json:"subcategory"`
	Amount      float64 `json:"amount"`
}

type CategorySpend struct {
	Category      string             `json:"category"`
	Amount        float64            `json:"amount"`
	Percentage    float64            `json:"percentage"`
	Subcategories []SubcategorySpend `json:"subcategories,omitempty"`
}

// ExpenseBreakdown groups spend by category with a subcategory drill-down,
// ranked by amount.
func ExpenseBreakdown(expenses []models.Expense) []CategorySpend {
	var total float64
	byCategory := make(map[string]float64)
	bySub := make(map[string]map[string]float64)
	for _, e := range expenses {
		total += e.Amount
		byCategory[e.Category] += e.Amount
		if e.Subcategory != "" {
			if bySub[e.Category] == nil {
				bySub[e.Category] = make(map[string]float64)
			}
			bySub[e.Category][e.Subcategory] += e.Amount
		}
	}

	out := make([]CategorySpend, 0, len(byCategory))
	for cat, amount := range byCategory {
		cs := CategorySpend{
			Category: cat,
			Amount:   models.Round2(amount),
		}
		if total > 0 {
			cs.Percentage = math.Round(amount/total*1000) / 10
		}
		for sub, subAmount := range bySub[cat] {
			cs.Subcategories = append(cs.Subcategories, SubcategorySpend{
				Subcategory: sub,
				Amount:      models.Round2(subAmount),
			})
		}
		sort.Slice(cs.Subcategories, func(i, j int) bool {
			return cs.Subcategories[i].Amount > cs.Subcategories[j].Amount
		})
		out = append(out, cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type VendorSpend struct {
	Vendor string  `json:"vendor"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// TopVendors ranks vendors by total spend. Expenses without a vendor are
// skipped.
func TopVendors(expenses []models.Expense, limit int) []VendorSpend {
	amounts := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range expenses {
		vendor := strings.TrimSpace(e.Vendor)
		if vendor == "" {
			continue
		}
		amounts[vendor] += e.Amount
		counts[vendor]++
	}
	out := make([]VendorSpend, 0, len(amounts))
	for vendor, amount := range amounts {
		out = append(out, VendorSpend{
			Vendor: vendor,
			Amount: models.Round2(amount),
			Count:  counts[vendor],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Vendor < out[j].Vendor
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type FinanceTrendPoint struct {
	Date     string  `json:"date"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// FinanceTrend produces a per-date revenue/expenses/profit series, sorted by
// date, for charting.
func FinanceTrend(revenues []models.RevenueRecord, expenses []models.Expense) []FinanceTrendPoint {
	byDate := make(map[string]*FinanceTrendPoint)
	point := func(date string) *FinanceTrendPoint {
		p, ok := byDate[date]
		if !ok {
			p = &FinanceTrendPoint{Date: date}
			byDate[date] = p
		}
		return p
	}
	for _, r := range revenues {
		point(r.Date).Revenue += r.Total
	}
	for _, e := range expenses {
		point(e.Date).Expenses += e.Amount
	}
	out := make([]FinanceTrendPoint, 0, len(byDate))
	for _, p := range byDate {
		p.Revenue = models.Round2(p.Revenue)
		p.Expenses = models.Round2(p.Expenses)
		p.Profit = models.Round2(p.Revenue - p.Expenses)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

type PnLComparison struct {
	Current        ProfitAndLoss `json:"current"`
	Previous       ProfitAndLoss `json:"previous"`
	RevenueChange  float64       `json:"revenueChange"`
	ExpensesChange float64       `json:"expensesChange"`
	ProfitChange   float64       `json:"profitChange"`
}

// ComparePnL compares a period's statement to the equal prior period.
func ComparePnL(current, previous ProfitAndLoss) PnLComparison {
	return PnLComparison{
		Current:        current,
		Previous:       previous,
		RevenueChange:  GrowthPercent(current.TotalRevenue, previous.TotalRevenue),
		ExpensesChange: GrowthPercent(current.TotalExpenses, previous.TotalExpenses),
		ProfitChange:   GrowthPercent(current.NetProfit, previous.NetProfit),
	}
}

// TaxDeductibleTotal sums deductible expenses across a calendar tax year.
func TaxDeductibleTotal(expenses []models.Expense, year string) float64 {
	var total float64
	for _, e := range expenses {
		if !e.TaxDeductible {
			continue
		}
		if !strings.HasPrefix(e.Date, year+"-") {
			continue
		}
		total += e.Amount
	}
	return models.Round2(total)
}
