package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CommunicationNote     = "note"
	CommunicationEmail    = "email"
	CommunicationPhone    = "phone"
	CommunicationSMS      = "sms"
	CommunicationInPerson = "in-person"
)

var CommunicationTypes = []string{
	CommunicationNote,
	CommunicationEmail,
	CommunicationPhone,
	CommunicationSMS,
	CommunicationInPerson,
}

// CustomerCommunication is a timeline entry on a customer: a note, a logged
// call, or an outbound message. Supersedes the old CustomerNote shape; the old
// "note" field maps onto Content.
type CustomerCommunication struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	Type      string     `gorm:"type:varchar(12);not null" json:"type"`
	Subject   string     `json:"subject,omitempty"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Direction string     `gorm:"type:varchar(10)" json:"direction,omitempty"` // inbound | outbound
	Tags      StringList `gorm:"type:jsonb;default:'[]'" json:"tags"`
	CreatedBy string     `json:"createdBy"`

	// Delivery outcome for outbound sms, empty otherwise.
	DeliveryStatus string `gorm:"type:varchar(10)" json:"deliveryStatus,omitempty"` // sent | failed
	DeliveryError  string `gorm:"type:text" json:"deliveryError,omitempty"`

	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (cc *CustomerCommunication) BeforeCreate(tx *gorm.DB) (err error) {
	if cc.ID == uuid.Nil {
		cc.ID = uuid.New()
	}
	return
}

func IsValidCommunicationType(s string) bool {
	for _, v := range CommunicationTypes {
		if v == s {
			return true
		}
	}
	return false
}
