package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PackageCategoryStandard  = "standard"
	PackageCategorySpecialty = "specialty"
)

type Package struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Duration    string    `json:"duration"` // display string, e.g. "60 minutes"

	BasePrice          float64 `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	CurrentPrice       float64 `gorm:"type:decimal(10,2)" json:"currentPrice"`
	DiscountPercentage float64 `gorm:"type:decimal(5,2);default:0.0" json:"discountPercentage"`
	DiscountLabel      string  `json:"discountLabel,omitempty"`

	Category  string `gorm:"type:varchar(20);default:'standard'" json:"category"`
	HasAddons bool   `gorm:"default:false" json:"hasAddons"`
	IsActive  bool   `gorm:"default:true" json:"isActive"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Package) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// BeforeSave keeps currentPrice derived from basePrice and discountPercentage.
func (p *Package) BeforeSave(tx *gorm.DB) (err error) {
	p.CurrentPrice = Round2(p.BasePrice * (1 - p.DiscountPercentage/100))
	return
}
