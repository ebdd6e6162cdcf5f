// controllers/communication.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/services"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreateCommunicationInput defines the expected JSON structure for logging a
// communication on a customer.
type CreateCommunicationInput struct {
	CustomerID uuid.UUID      `json:"customerId" binding:"required"`
	Type       string         `json:"type" binding:"required,oneof=note email phone sms in-person"`
	Subject    string         `json:"subject"`
	Content    string         `json:"content" binding:"required"`
	Direction  string         `json:"direction" binding:"omitempty,oneof=inbound outbound"`
	Tags       []string       `json:"tags"`
	CreatedBy  string         `json:"createdBy"`
	Metadata   datatypes.JSON `json:"metadata"`
}

// GetCommunications lists communications for a customer. Optional filters:
// type, tags (OR semantics across the requested tags), limit.
func GetCommunications(c *gin.Context) {
	customerID := c.Query("customerId")
	if customerID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "customerId is required")
		return
	}
	customerUUID, err := uuid.Parse(customerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	query := config.DB.Where("customer_id = ?", customerUUID).Order("created_at DESC")
	if commType := c.Query("type"); commType != "" {
		if !models.IsValidCommunicationType(commType) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid communication type")
			return
		}
		query = query.Where("type = ?", commType)
	}

	var comms []models.CustomerCommunication
	if err := query.Find(&comms).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve communications")
		return
	}

	// Tag membership is OR across the requested tags; the list column is a
	// JSON array, so filter after the fetch.
	if tagsParam := c.Query("tags"); tagsParam != "" {
		wanted := strings.Split(tagsParam, ",")
		filtered := comms[:0]
		for _, comm := range comms {
			for _, tag := range wanted {
				if comm.Tags.Contains(strings.TrimSpace(tag)) {
					filtered = append(filtered, comm)
					break
				}
			}
		}
		comms = filtered
	}

	if limitParam := c.Query("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		if len(comms) > limit {
			comms = comms[:limit]
		}
	}

	c.JSON(http.StatusOK, comms)
}

// CreateCommunication logs a communication. Outbound sms entries are handed to
// the SMS service when Twilio is configured.
func CreateCommunication(c *gin.Context) {
	var input CreateCommunicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		return
	}

	comm := models.CustomerCommunication{
		CustomerID: input.CustomerID,
		Type:       input.Type,
		Subject:    input.Subject,
		Content:    input.Content,
		Direction:  input.Direction,
		Tags:       models.StringList(input.Tags),
		CreatedBy:  input.CreatedBy,
		Metadata:   input.Metadata,
	}
	if comm.Tags == nil {
		comm.Tags = models.StringList{}
	}

	if err := config.DB.Create(&comm).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create communication")
		return
	}

	if comm.Type == models.CommunicationSMS && comm.Direction == "outbound" && customer.Phone != "" {
		sms := services.NewSMSService(config.DB)
		if sms.Enabled() {
			sms.SendCommunication(&comm, customer.Phone)
		}
	}

	c.JSON(http.StatusCreated, comm)
}

// DeleteCommunication removes a communication entry
func DeleteCommunication(c *gin.Context) {
	commUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid communication ID format")
		return
	}

	result := config.DB.Where("id = ?", commUUID).Delete(&models.CustomerCommunication{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete communication")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Communication not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Communication deleted successfully"})
}
