// controllers/finance_reports.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"serenity-backend/analytics"
	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
)

// FinanceController handles the financial reporting endpoints
type FinanceController struct{}

func fetchExpenses(start, end string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := config.DB.Where("date BETWEEN ? AND ?", start, end).Find(&expenses).Error
	return expenses, err
}

func fetchRevenue(start, end string) ([]models.RevenueRecord, error) {
	var records []models.RevenueRecord
	err := config.DB.Where("date BETWEEN ? AND ?", start, end).Find(&records).Error
	return records, err
}

// GetFinanceReport returns the full P&L report for a period
func (fc *FinanceController) GetFinanceReport(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	expenses, err := fetchExpenses(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}
	revenues, err := fetchRevenue(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve revenue")
		return
	}

	prevStart, prevEnd := priorWindow(start, end)
	prevExpenses, err := fetchExpenses(prevStart, prevEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve prior expenses")
		return
	}
	prevRevenues, err := fetchRevenue(prevStart, prevEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve prior revenue")
		return
	}

	pnl := analytics.PnL(revenues, expenses)
	prevPnL := analytics.PnL(prevRevenues, prevExpenses)

	c.JSON(http.StatusOK, gin.H{
		"startDate":        start,
		"endDate":          end,
		"profitAndLoss":    pnl,
		"expenseBreakdown": analytics.ExpenseBreakdown(expenses),
		"topVendors":       analytics.TopVendors(expenses, 5),
		"trend":            analytics.FinanceTrend(revenues, expenses),
		"periodComparison": analytics.ComparePnL(pnl, prevPnL),
	})
}

// GetFinanceStats returns the compact finance stats card for a period,
// including the tax-deductible total for the requested (or current) tax year
func (fc *FinanceController) GetFinanceStats(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	expenses, err := fetchExpenses(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}
	revenues, err := fetchRevenue(start, end)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve revenue")
		return
	}

	year := c.DefaultQuery("taxYear", strconv.Itoa(time.Now().Year()))
	var yearExpenses []models.Expense
	if err := config.DB.Where("date >= ? AND date <= ?", year+"-01-01", year+"-12-31").
		Find(&yearExpenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tax year expenses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"startDate":          start,
		"endDate":            end,
		"profitAndLoss":      analytics.PnL(revenues, expenses),
		"taxYear":            year,
		"taxDeductibleTotal": analytics.TaxDeductibleTotal(yearExpenses, year),
	})
}
