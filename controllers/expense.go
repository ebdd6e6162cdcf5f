// controllers/expense.go
package controllers

import (
	"errors"
	"net/http"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateExpenseInput struct {
	Date          string  `json:"date" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Subcategory   string  `json:"subcategory"`
	Amount        float64 `json:"amount" binding:"required,min=0"`
	Vendor        string  `json:"vendor"`
	Description   string  `json:"description"`
	ReceiptURL    string  `json:"receiptUrl"`
	PaymentMethod string  `json:"paymentMethod"`
	TaxDeductible bool    `json:"taxDeductible"`
	Notes         string  `json:"notes"`
}

type UpdateExpenseInput struct {
	Date          *string  `json:"date"`
	Category      *string  `json:"category"`
	Subcategory   *string  `json:"subcategory"`
	Amount        *float64 `json:"amount" binding:"omitempty,min=0"`
	Vendor        *string  `json:"vendor"`
	Description   *string  `json:"description"`
	ReceiptURL    *string  `json:"receiptUrl"`
	PaymentMethod *string  `json:"paymentMethod"`
	TaxDeductible *bool    `json:"taxDeductible"`
	Notes         *string  `json:"notes"`
}

// GetExpenses lists expenses, newest first. Optional filters: category,
// startDate/endDate range.
func GetExpenses(c *gin.Context) {
	query := config.DB.Model(&models.Expense{}).Order("date DESC, created_at DESC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if start := c.Query("startDate"); start != "" {
		query = query.Where("date >= ?", start)
	}
	if end := c.Query("endDate"); end != "" {
		query = query.Where("date <= ?", end)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpense retrieves a specific expense by ID
func GetExpense(c *gin.Context) {
	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, "id = ?", expenseUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, expense)
}

// CreateExpense creates a new expense
func CreateExpense(c *gin.Context) {
	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.IsValidDate(input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if !models.IsValidExpenseCategory(input.Category) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense category")
		return
	}

	expense := models.Expense{
		Date:          input.Date,
		Category:      input.Category,
		Subcategory:   input.Subcategory,
		Amount:        models.Round2(input.Amount),
		Vendor:        input.Vendor,
		Description:   input.Description,
		ReceiptURL:    input.ReceiptURL,
		PaymentMethod: input.PaymentMethod,
		TaxDeductible: input.TaxDeductible,
		Notes:         input.Notes,
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense updates an existing expense
func UpdateExpense(c *gin.Context) {
	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var input UpdateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Date != nil && !utils.IsValidDate(*input.Date) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if input.Category != nil && !models.IsValidExpenseCategory(*input.Category) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense category")
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, "id = ?", expenseUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Subcategory != nil {
		expense.Subcategory = *input.Subcategory
	}
	if input.Amount != nil {
		expense.Amount = models.Round2(*input.Amount)
	}
	if input.Vendor != nil {
		expense.Vendor = *input.Vendor
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.ReceiptURL != nil {
		expense.ReceiptURL = *input.ReceiptURL
	}
	if input.PaymentMethod != nil {
		expense.PaymentMethod = *input.PaymentMethod
	}
	if input.TaxDeductible != nil {
		expense.TaxDeductible = *input.TaxDeductible
	}
	if input.Notes != nil {
		expense.Notes = *input.Notes
	}

	if err := config.DB.Save(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense
func DeleteExpense(c *gin.Context) {
	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	result := config.DB.Where("id = ?", expenseUUID).Delete(&models.Expense{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
