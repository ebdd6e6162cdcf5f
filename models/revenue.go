package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RevenueRecord is derived 1:1 from a completed appointment and snapshots the
// billed amounts at completion time.
type RevenueRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"appointmentId"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`

	Date         string  `gorm:"type:varchar(10);index;not null" json:"date"` // YYYY-MM-DD
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `gorm:"type:decimal(10,2)" json:"servicePrice"`
	AddonsTotal  float64 `gorm:"type:decimal(10,2);default:0.0" json:"addonsTotal"`

	Subtotal float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax      float64 `gorm:"type:decimal(10,2);default:0.0" json:"tax"`
	Discount float64 `gorm:"type:decimal(10,2);default:0.0" json:"discount"`
	Total    float64 `gorm:"type:decimal(10,2);not null" json:"total"`

	PaymentStatus string     `gorm:"type:varchar(10);default:'paid'" json:"paymentStatus"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (r *RevenueRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
