package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseCategories is the fixed set of bookkeeping categories.
var ExpenseCategories = []string{
	"rent",
	"utilities",
	"supplies",
	"equipment",
	"marketing",
	"insurance",
	"education",
	"software",
	"other",
}

type Expense struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date string    `gorm:"type:varchar(10);index;not null" json:"date"` // YYYY-MM-DD

	Category    string  `gorm:"type:varchar(20);index;not null" json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Amount      float64 `gorm:"type:decimal(10,2);not null" json:"amount"`

	Vendor        string `json:"vendor,omitempty"`
	Description   string `gorm:"type:text" json:"description,omitempty"`
	ReceiptURL    string `json:"receiptUrl,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	TaxDeductible bool   `gorm:"default:false" json:"taxDeductible"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

func IsValidExpenseCategory(s string) bool {
	for _, v := range ExpenseCategories {
		if v == s {
			return true
		}
	}
	return false
}
