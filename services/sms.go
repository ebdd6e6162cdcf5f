// services/sms.go
package services

import (
	"log"
	"os"

	"serenity-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// SMSService delivers outbound sms communications through Twilio. When the
// Twilio environment variables are absent the service is disabled and
// communications are stored without a delivery attempt.
type SMSService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewSMSService(db *gorm.DB) *SMSService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &SMSService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *SMSService) Enabled() bool {
	return os.Getenv("TWILIO_ACCOUNT_SID") != "" && os.Getenv("TWILIO_PHONE_NUMBER") != ""
}

// SendCommunication sends the communication content to the customer's phone
// and records the delivery outcome on the row.
func (s *SMSService) SendCommunication(comm *models.CustomerCommunication, to string) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	params.SetBody(comm.Content)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send SMS to %s: %v", to, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", to, *resp.Sid)
	}

	if err := s.db.Model(comm).Updates(map[string]interface{}{
		"delivery_status": status,
		"delivery_error":  errorMsg,
	}).Error; err != nil {
		log.Printf("Failed to record SMS delivery for communication %s: %v", comm.ID, err)
	}
}
