package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no-show"
)

// AppointmentStatuses lists every status an appointment can carry. Transitions
// are unconstrained: any status may move to any other.
var AppointmentStatuses = []string{
	AppointmentScheduled,
	AppointmentConfirmed,
	AppointmentCompleted,
	AppointmentCancelled,
	AppointmentNoShow,
}

// Appointment carries a denormalized snapshot of the customer contact fields
// and the booked package at booking time. Later edits to the customer or
// package must not change historical appointments.
type Appointment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customerId"`

	CustomerName  string `gorm:"not null" json:"customerName"`
	CustomerEmail string `gorm:"index" json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`

	ServiceID    *uuid.UUID `gorm:"type:uuid;index" json:"serviceId"`
	ServiceName  string     `gorm:"not null" json:"serviceName"`
	ServicePrice float64    `gorm:"type:decimal(10,2);not null" json:"servicePrice"`

	Addons      StringList `gorm:"type:jsonb;default:'[]'" json:"addons"`
	AddonsTotal float64    `gorm:"type:decimal(10,2);default:0.0" json:"addonsTotal"`

	Date     string `gorm:"type:varchar(10);index;not null" json:"date"` // YYYY-MM-DD
	Time     string `gorm:"type:varchar(10)" json:"time"`                // e.g. "9:00 AM"
	Duration int    `json:"duration"`                                    // minutes

	Status    string `gorm:"type:varchar(20);index;default:'scheduled'" json:"status"`
	Notes     string `gorm:"type:text" json:"notes"`
	CreatedBy string `gorm:"type:varchar(10);default:'admin'" json:"createdBy"` // customer | admin

	// Short code shown to the customer after booking through the public form.
	ConfirmationCode string `gorm:"type:varchar(8)" json:"confirmationCode,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

func IsValidAppointmentStatus(s string) bool {
	for _, v := range AppointmentStatuses {
		if v == s {
			return true
		}
	}
	return false
}
