package analytics

import (
	"testing"

	"serenity-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expense(date, category string, amount float64) models.Expense {
	return models.Expense{Date: date, Category: category, Amount: amount}
}

func revenue(date string, total float64) models.RevenueRecord {
	return models.RevenueRecord{Date: date, Total: total}
}

func TestPnL(t *testing.T) {
	expenses := []models.Expense{
		expense("2025-03-01", "supplies", 100),
		expense("2025-03-02", "rent", 50),
	}
	revenues := []models.RevenueRecord{revenue("2025-03-01", 500)}

	pnl := PnL(revenues, expenses)
	assert.Equal(t, 500.0, pnl.TotalRevenue)
	assert.Equal(t, 150.0, pnl.TotalExpenses)
	assert.Equal(t, 350.0, pnl.NetProfit)
	assert.InDelta(t, 70.0, pnl.ProfitMargin, 0.01)
}

func TestPnLZeroRevenue(t *testing.T) {
	pnl := PnL(nil, []models.Expense{expense("2025-03-01", "rent", 50)})
	assert.Equal(t, -50.0, pnl.NetProfit)
	assert.Zero(t, pnl.ProfitMargin)
}

func TestExpenseBreakdown(t *testing.T) {
	expenses := []models.Expense{
		expense("2025-03-01", "supplies", 60),
		expense("2025-03-02", "supplies", 40),
		expense("2025-03-03", "rent", 100),
	}
	expenses[0].Subcategory = "oils"
	expenses[1].Subcategory = "linens"

	breakdown := ExpenseBreakdown(expenses)
	require.Len(t, breakdown, 2)

	// Equal totals rank alphabetically.
	assert.Equal(t, "rent", breakdown[0].Category)
	assert.Equal(t, 100.0, breakdown[0].Amount)
	assert.InDelta(t, 50.0, breakdown[0].Percentage, 0.01)

	assert.Equal(t, "supplies", breakdown[1].Category)
	require.Len(t, breakdown[1].Subcategories, 2)
	assert.Equal(t, "oils", breakdown[1].Subcategories[0].Subcategory)
	assert.Equal(t, 60.0, breakdown[1].Subcategories[0].Amount)
}

func TestTopVendors(t *testing.T) {
	expenses := []models.Expense{
		expense("2025-03-01", "supplies", 80),
		expense("2025-03-02", "supplies", 20),
		expense("2025-03-03", "equipment", 50),
		expense("2025-03-04", "other", 10),
	}
	expenses[0].Vendor = "Massage Warehouse"
	expenses[1].Vendor = "Massage Warehouse"
	expenses[2].Vendor = "Earthlite"
	// expenses[3] has no vendor and must be skipped.

	vendors := TopVendors(expenses, 10)
	require.Len(t, vendors, 2)
	assert.Equal(t, "Massage Warehouse", vendors[0].Vendor)
	assert.Equal(t, 100.0, vendors[0].Amount)
	assert.Equal(t, 2, vendors[0].Count)

	vendors = TopVendors(expenses, 1)
	require.Len(t, vendors, 1)
}

func TestFinanceTrend(t *testing.T) {
	revenues := []models.RevenueRecord{
		revenue("2025-03-02", 200),
		revenue("2025-03-01", 100),
	}
	expenses := []models.Expense{
		expense("2025-03-01", "rent", 40),
		expense("2025-03-03", "supplies", 10),
	}

	trend := FinanceTrend(revenues, expenses)
	require.Len(t, trend, 3)
	assert.Equal(t, "2025-03-01", trend[0].Date)
	assert.Equal(t, 100.0, trend[0].Revenue)
	assert.Equal(t, 40.0, trend[0].Expenses)
	assert.Equal(t, 60.0, trend[0].Profit)
	assert.Equal(t, "2025-03-03", trend[2].Date)
	assert.Equal(t, -10.0, trend[2].Profit)
}

func TestComparePnL(t *testing.T) {
	current := PnL([]models.RevenueRecord{revenue("2025-03-01", 300)}, nil)
	previous := PnL([]models.RevenueRecord{revenue("2025-02-01", 200)}, nil)

	cmp := ComparePnL(current, previous)
	assert.InDelta(t, 50.0, cmp.RevenueChange, 0.01)
	assert.Zero(t, cmp.ExpensesChange)

	cmp = ComparePnL(current, ProfitAndLoss{})
	assert.InDelta(t, 100.0, cmp.RevenueChange, 0.01)
}

func TestTaxDeductibleTotal(t *testing.T) {
	expenses := []models.Expense{
		expense("2025-02-01", "education", 120),
		expense("2025-06-15", "supplies", 30),
		expense("2024-12-31", "education", 75),
	}
	expenses[0].TaxDeductible = true
	expenses[2].TaxDeductible = true

	assert.Equal(t, 120.0, TaxDeductibleTotal(expenses, "2025"))
	assert.Equal(t, 75.0, TaxDeductibleTotal(expenses, "2024"))
	assert.Zero(t, TaxDeductibleTotal(expenses, "2023"))
}
