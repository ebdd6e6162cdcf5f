// controllers/customer.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"serenity-backend/config"
	"serenity-backend/models"
	"serenity-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Status    string `json:"status" binding:"omitempty,oneof=active inactive blocked"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Status    *string `json:"status" binding:"omitempty,oneof=active inactive blocked"`
}

var customerSortColumns = map[string]string{
	"firstName":   "first_name",
	"lastName":    "last_name",
	"email":       "email",
	"totalVisits": "total_visits",
	"totalSpent":  "total_spent",
	"lastVisit":   "last_visit",
	"createdAt":   "created_at",
}

// GetCustomers retrieves customers with substring search, status filter and
// sorting over any whitelisted column.
func GetCustomers(c *gin.Context) {
	query := config.DB.Model(&models.Customer{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like, "%"+search+"%",
		)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	column, ok := customerSortColumns[c.DefaultQuery("sortBy", "lastName")]
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sort field")
		return
	}
	direction := "ASC"
	if strings.EqualFold(c.DefaultQuery("sortOrder", "asc"), "desc") {
		direction = "DESC"
	}

	var customers []models.Customer
	if err := query.Order(column + " " + direction).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a customer with joined health info, preferences,
// appointments and communications.
func GetCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.
		Preload("HealthInfo").
		Preload("Preferences").
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC")
		}).
		Preload("Communications", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// reviveCustomer restores a soft-deleted customer row so the same email can
// sign up again, recreating the default health-info and preferences rows that
// were removed with it. Returns gorm.ErrRecordNotFound when no deleted row
// carries this email.
func reviveCustomer(tx *gorm.DB, email string, apply func(*models.Customer)) (*models.Customer, error) {
	var customer models.Customer
	if err := tx.Unscoped().Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, err
	}

	customer.DeletedAt = gorm.DeletedAt{}
	if apply != nil {
		apply(&customer)
	}
	if err := tx.Unscoped().Save(&customer).Error; err != nil {
		return nil, err
	}

	health := models.CustomerHealthInfo{CustomerID: customer.ID}
	if err := tx.Where("customer_id = ?", customer.ID).FirstOrCreate(&health).Error; err != nil {
		return nil, err
	}
	prefs := models.CustomerPreferences{CustomerID: customer.ID}
	if err := tx.Where("customer_id = ?", customer.ID).FirstOrCreate(&prefs).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// CreateCustomer creates a customer along with empty default health-info and
// preferences rows. A soft-deleted customer with the same email is restored
// instead of colliding with the unique email index.
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Email is the dedup key.
	var existing models.Customer
	if err := config.DB.Where("email = ?", strings.ToLower(input.Email)).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	status := input.Status
	if status == "" {
		status = models.CustomerActive
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	revived, err := reviveCustomer(tx, strings.ToLower(input.Email), func(cust *models.Customer) {
		cust.FirstName = input.FirstName
		cust.LastName = input.LastName
		cust.Phone = input.Phone
		cust.Status = status
	})
	if err == nil {
		tx.Commit()
		c.JSON(http.StatusCreated, revived)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     strings.ToLower(input.Email),
		Phone:     input.Phone,
		Status:    status,
	}

	if err := tx.Create(&customer).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}
	if err := tx.Create(&models.CustomerHealthInfo{CustomerID: customer.ID}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create health info")
		return
	}
	if err := tx.Create(&models.CustomerPreferences{CustomerID: customer.ID}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create preferences")
		return
	}

	tx.Commit()

	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Email != nil {
		email := strings.ToLower(*input.Email)
		if email != customer.Email {
			var existing models.Customer
			if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this email already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Email = email
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}
	if input.Status != nil {
		customer.Status = *input.Status
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer deletes a customer and cascades to health info, preferences
// and communications in one transaction. Appointments and revenue records keep
// their snapshots with the customer link cleared.
func DeleteCustomer(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Where("id = ?", customerUUID).Delete(&models.Customer{})
	if result.Error != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	for _, step := range []error{
		tx.Where("customer_id = ?", customerUUID).Delete(&models.CustomerHealthInfo{}).Error,
		tx.Where("customer_id = ?", customerUUID).Delete(&models.CustomerPreferences{}).Error,
		tx.Where("customer_id = ?", customerUUID).Delete(&models.CustomerCommunication{}).Error,
		tx.Model(&models.Appointment{}).Where("customer_id = ?", customerUUID).
			Update("customer_id", nil).Error,
		tx.Model(&models.RevenueRecord{}).Where("customer_id = ?", customerUUID).
			Update("customer_id", nil).Error,
	} {
		if step != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer records")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// UpdateHealthInfoInput mirrors the intake form fields.
type UpdateHealthInfoInput struct {
	Allergies             *string `json:"allergies"`
	Medications           *string `json:"medications"`
	Conditions            *string `json:"conditions"`
	InjuryNotes           *string `json:"injuryNotes"`
	EmergencyContactName  *string `json:"emergencyContactName"`
	EmergencyContactPhone *string `json:"emergencyContactPhone"`
}

// UpdateCustomerHealthInfo updates the customer's health record
func UpdateCustomerHealthInfo(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdateHealthInfoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var info models.CustomerHealthInfo
	if err := config.DB.Where("customer_id = ?", customerUUID).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Health info not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Allergies != nil {
		info.Allergies = *input.Allergies
	}
	if input.Medications != nil {
		info.Medications = *input.Medications
	}
	if input.Conditions != nil {
		info.Conditions = *input.Conditions
	}
	if input.InjuryNotes != nil {
		info.InjuryNotes = *input.InjuryNotes
	}
	if input.EmergencyContactName != nil {
		info.EmergencyContactName = *input.EmergencyContactName
	}
	if input.EmergencyContactPhone != nil {
		info.EmergencyContactPhone = *input.EmergencyContactPhone
	}

	if err := config.DB.Save(&info).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update health info")
		return
	}

	c.JSON(http.StatusOK, info)
}

// UpdatePreferencesInput mirrors the session preferences form.
type UpdatePreferencesInput struct {
	PreferredPressure     *string   `json:"preferredPressure"`
	FocusAreas            *[]string `json:"focusAreas"`
	AvoidAreas            *[]string `json:"avoidAreas"`
	MusicPreference       *string   `json:"musicPreference"`
	TemperaturePreference *string   `json:"temperaturePreference"`
	ReminderOptIn         *bool     `json:"reminderOptIn"`
}

// UpdateCustomerPreferences updates the customer's session preferences
func UpdateCustomerPreferences(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var input UpdatePreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var prefs models.CustomerPreferences
	if err := config.DB.Where("customer_id = ?", customerUUID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Preferences not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.PreferredPressure != nil {
		prefs.PreferredPressure = *input.PreferredPressure
	}
	if input.FocusAreas != nil {
		prefs.FocusAreas = models.StringList(*input.FocusAreas)
	}
	if input.AvoidAreas != nil {
		prefs.AvoidAreas = models.StringList(*input.AvoidAreas)
	}
	if input.MusicPreference != nil {
		prefs.MusicPreference = *input.MusicPreference
	}
	if input.TemperaturePreference != nil {
		prefs.TemperaturePreference = *input.TemperaturePreference
	}
	if input.ReminderOptIn != nil {
		prefs.ReminderOptIn = *input.ReminderOptIn
	}

	if err := config.DB.Save(&prefs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update preferences")
		return
	}

	c.JSON(http.StatusOK, prefs)
}
