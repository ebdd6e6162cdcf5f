package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessSettings is a single-row table (id = 1) loaded explicitly and passed
// into report and availability code rather than read from global state.
type BusinessSettings struct {
	ID uint `gorm:"primary_key" json:"id"`

	Name         string `json:"name"`
	Phone        string `json:"phone"` // raw digits
	PhoneDisplay string `json:"phoneDisplay"`
	Email        string `json:"email"`

	AddressStreet string `json:"addressStreet"`
	AddressCity   string `json:"addressCity"`
	AddressState  string `json:"addressState"`
	AddressZip    string `json:"addressZip"`
	AddressFull   string `json:"addressFull"`

	Timezone string  `gorm:"default:'America/New_York'" json:"timezone"`
	TaxRate  float64 `gorm:"type:decimal(5,2);default:0.0" json:"taxRate"`
	Currency string  `gorm:"type:varchar(3);default:'USD'" json:"currency"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// BusinessHours holds one row per weekday (0 = Sunday .. 6 = Saturday).
// Times are 12-hour display strings, e.g. "9:00 AM".
type BusinessHours struct {
	Weekday        int    `gorm:"primary_key;autoIncrement:false" json:"weekday"`
	IsOpen         bool   `gorm:"default:true" json:"isOpen"`
	OpenTime       string `gorm:"type:varchar(10)" json:"openTime"`
	CloseTime      string `gorm:"type:varchar(10)" json:"closeTime"`
	BreakStartTime string `gorm:"type:varchar(10)" json:"breakStartTime,omitempty"`
	BreakEndTime   string `gorm:"type:varchar(10)" json:"breakEndTime,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingSettings is a single-row table (id = 1) governing the public booking
// form.
type BookingSettings struct {
	ID uint `gorm:"primary_key" json:"id"`

	BufferMinutes         int  `gorm:"default:15" json:"bufferMinutes"`
	AdvanceBookingDays    int  `gorm:"default:30" json:"advanceBookingDays"`
	MinimumNoticeHours    int  `gorm:"default:4" json:"minimumNoticeHours"`
	AllowSameDayBooking   bool `gorm:"default:true" json:"allowSameDayBooking"`
	MaxAppointmentsPerDay int  `gorm:"default:8" json:"maxAppointmentsPerDay"`

	UpdatedAt time.Time `json:"updatedAt"`
}

type BlockedDate struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Date   string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	Reason string    `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (b *BlockedDate) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
