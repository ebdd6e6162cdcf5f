package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
	CustomerBlocked  = "blocked"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `gorm:"not null" json:"lastName"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `gorm:"type:varchar(10);default:'active'" json:"status"`

	// Cached aggregates over completed appointments, recomputed by
	// services.RecalculateCustomerStats whenever completion state changes.
	TotalVisits int     `gorm:"default:0" json:"totalVisits"`
	TotalSpent  float64 `gorm:"type:decimal(10,2);default:0.0" json:"totalSpent"`
	LastVisit   *string `gorm:"type:varchar(10)" json:"lastVisit"` // YYYY-MM-DD

	HealthInfo     *CustomerHealthInfo     `gorm:"foreignKey:CustomerID" json:"healthInfo,omitempty"`
	Preferences    *CustomerPreferences    `gorm:"foreignKey:CustomerID" json:"preferences,omitempty"`
	Appointments   []Appointment           `gorm:"foreignKey:CustomerID" json:"appointments,omitempty"`
	Communications []CustomerCommunication `gorm:"foreignKey:CustomerID" json:"communications,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// CustomerHealthInfo is a 1:1 extension record, created empty alongside the
// customer and filled in from the intake form.
type CustomerHealthInfo struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"customerId"`

	Allergies             string `gorm:"type:text" json:"allergies"`
	Medications           string `gorm:"type:text" json:"medications"`
	Conditions            string `gorm:"type:text" json:"conditions"`
	InjuryNotes           string `gorm:"type:text" json:"injuryNotes"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *CustomerHealthInfo) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return
}

type CustomerPreferences struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"customerId"`

	PreferredPressure     string     `gorm:"type:varchar(20);default:'medium'" json:"preferredPressure"`
	FocusAreas            StringList `gorm:"type:jsonb;default:'[]'" json:"focusAreas"`
	AvoidAreas            StringList `gorm:"type:jsonb;default:'[]'" json:"avoidAreas"`
	MusicPreference       string     `json:"musicPreference"`
	TemperaturePreference string     `json:"temperaturePreference"`
	ReminderOptIn         bool       `gorm:"default:true" json:"reminderOptIn"`

	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *CustomerPreferences) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
