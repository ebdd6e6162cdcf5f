package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"serenity-backend/config"
	"serenity-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest points config.DB at a fresh in-memory database and returns a
// router with the resource routes mounted, auth middleware omitted.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.CustomerHealthInfo{},
		&models.CustomerPreferences{},
		&models.CustomerCommunication{},
		&models.Appointment{},
		&models.Package{},
		&models.AddOnService{},
		&models.NoteTemplate{},
		&models.Expense{},
		&models.RevenueRecord{},
		&models.BusinessSettings{},
		&models.BookingSettings{},
		&models.BlockedDate{},
	))
	config.DB = db

	r := gin.New()
	r.POST("/api/booking", CreateBooking)
	r.GET("/api/admin/appointments", GetAppointments)
	r.POST("/api/admin/appointments", CreateAppointment)
	r.PATCH("/api/admin/appointments/:id", UpdateAppointment)
	r.DELETE("/api/admin/appointments/:id", DeleteAppointment)
	r.POST("/api/admin/customers", CreateCustomer)
	r.DELETE("/api/admin/customers/:id", DeleteCustomer)
	r.POST("/api/admin/communications", CreateCommunication)
	r.DELETE("/api/admin/note-templates/:id", DeleteNoteTemplate)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedPackage(t *testing.T, name string, price float64) models.Package {
	t.Helper()
	pkg := models.Package{
		Name:        name,
		Description: "test package",
		Duration:    "60 minutes",
		BasePrice:   price,
		Category:    models.PackageCategoryStandard,
		IsActive:    true,
	}
	require.NoError(t, config.DB.Create(&pkg).Error)
	return pkg
}

func TestCreateBookingLinksExistingCustomer(t *testing.T) {
	r := setupTest(t)
	pkg := seedPackage(t, "60 Minute Massage", 80)

	existing := models.Customer{
		FirstName: "Maya",
		LastName:  "Chen",
		Email:     "maya@example.com",
		Status:    models.CustomerActive,
	}
	require.NoError(t, config.DB.Create(&existing).Error)

	w := doJSON(t, r, http.MethodPost, "/api/booking", gin.H{
		"firstName": "Maya",
		"lastName":  "Chen",
		"email":     "Maya@Example.com",
		"serviceId": pkg.ID,
		"date":      "2025-05-01",
		"time":      "10:00 AM",
		"duration":  60,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var appt models.Appointment
	require.NoError(t, config.DB.First(&appt, "date = ?", "2025-05-01").Error)
	require.NotNil(t, appt.CustomerID)
	assert.Equal(t, existing.ID, *appt.CustomerID)
	assert.Equal(t, "customer", appt.CreatedBy)
	assert.Equal(t, "60 Minute Massage", appt.ServiceName)
	assert.Equal(t, 80.0, appt.ServicePrice)
	assert.Len(t, appt.ConfirmationCode, 6)
}

func TestCreateBookingCreatesCustomerWithDefaults(t *testing.T) {
	r := setupTest(t)
	pkg := seedPackage(t, "90 Minute Massage", 120)

	w := doJSON(t, r, http.MethodPost, "/api/booking", gin.H{
		"firstName": "Noor",
		"lastName":  "Haddad",
		"email":     "noor@example.com",
		"phone":     "5551234567",
		"serviceId": pkg.ID,
		"date":      "2025-05-02",
		"time":      "2:00 PM",
		"duration":  90,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var customer models.Customer
	require.NoError(t, config.DB.First(&customer, "email = ?", "noor@example.com").Error)

	var health models.CustomerHealthInfo
	assert.NoError(t, config.DB.First(&health, "customer_id = ?", customer.ID).Error)
	var prefs models.CustomerPreferences
	assert.NoError(t, config.DB.First(&prefs, "customer_id = ?", customer.ID).Error)
}

func TestCreateBookingBlockedDate(t *testing.T) {
	r := setupTest(t)
	pkg := seedPackage(t, "60 Minute Massage", 80)
	require.NoError(t, config.DB.Create(&models.BlockedDate{Date: "2025-05-03", Reason: "holiday"}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/booking", gin.H{
		"firstName": "Ira",
		"lastName":  "Bloom",
		"email":     "ira@example.com",
		"serviceId": pkg.ID,
		"date":      "2025-05-03",
		"time":      "10:00 AM",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateBookingFullDay(t *testing.T) {
	r := setupTest(t)
	pkg := seedPackage(t, "60 Minute Massage", 80)
	require.NoError(t, config.DB.Create(&models.BookingSettings{ID: 1, MaxAppointmentsPerDay: 1}).Error)
	require.NoError(t, config.DB.Create(&models.Appointment{
		CustomerName: "Booked Already",
		ServiceName:  "60 Minute Massage",
		ServicePrice: 80,
		Date:         "2025-05-04",
		Time:         "9:00 AM",
		Status:       models.AppointmentScheduled,
	}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/booking", gin.H{
		"firstName": "Omar",
		"lastName":  "Reyes",
		"email":     "omar@example.com",
		"serviceId": pkg.ID,
		"date":      "2025-05-04",
		"time":      "11:00 AM",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateAppointmentPricesAddons(t *testing.T) {
	r := setupTest(t)
	pkg := seedPackage(t, "60 Minute Massage", 80)
	require.NoError(t, config.DB.Create(&models.AddOnService{Name: "Hot Stones", Price: 15, IsActive: true}).Error)
	require.NoError(t, config.DB.Create(&models.AddOnService{Name: "CBD Oil", Price: 20, IsActive: true}).Error)

	w := doJSON(t, r, http.MethodPost, "/api/admin/appointments", gin.H{
		"customerName": "Walk In",
		"serviceId":    pkg.ID,
		"addons":       []string{"Hot Stones", "CBD Oil"},
		"date":         "2025-05-05",
		"time":         "1:00 PM",
		"duration":     60,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var appt models.Appointment
	require.NoError(t, config.DB.First(&appt, "date = ?", "2025-05-05").Error)
	assert.Equal(t, models.StringList{"Hot Stones", "CBD Oil"}, appt.Addons)
	assert.Equal(t, 35.0, appt.AddonsTotal)
}

func TestUpdateAppointmentEmptyBodyChangesNothing(t *testing.T) {
	r := setupTest(t)

	appt := models.Appointment{
		CustomerName: "Sam Ortiz",
		ServiceName:  "60 Minute Massage",
		ServicePrice: 80,
		Addons:       models.StringList{"Hot Stones"},
		AddonsTotal:  15,
		Date:         "2025-05-06",
		Time:         "3:00 PM",
		Duration:     60,
		Status:       models.AppointmentConfirmed,
		Notes:        "prefers firm pressure",
	}
	require.NoError(t, config.DB.Create(&appt).Error)

	w := doJSON(t, r, http.MethodPatch, "/api/admin/appointments/"+appt.ID.String(), gin.H{})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Appointment
	require.NoError(t, config.DB.First(&got, "id = ?", appt.ID).Error)
	assert.Equal(t, appt.CustomerName, got.CustomerName)
	assert.Equal(t, appt.ServicePrice, got.ServicePrice)
	assert.Equal(t, appt.Addons, got.Addons)
	assert.Equal(t, appt.Date, got.Date)
	assert.Equal(t, appt.Time, got.Time)
	assert.Equal(t, appt.Status, got.Status)
	assert.Equal(t, appt.Notes, got.Notes)
}

func TestCompleteAppointmentRecordsRevenueAndStats(t *testing.T) {
	r := setupTest(t)
	require.NoError(t, config.DB.Create(&models.BusinessSettings{ID: 1, TaxRate: 10}).Error)

	customer := models.Customer{FirstName: "Lee", LastName: "Park", Email: "lee@example.com", Status: models.CustomerActive}
	require.NoError(t, config.DB.Create(&customer).Error)

	appt := models.Appointment{
		CustomerID:   &customer.ID,
		CustomerName: "Lee Park",
		ServiceName:  "60 Minute Massage",
		ServicePrice: 80,
		AddonsTotal:  20,
		Date:         "2025-05-07",
		Time:         "9:00 AM",
		Status:       models.AppointmentScheduled,
	}
	require.NoError(t, config.DB.Create(&appt).Error)

	w := doJSON(t, r, http.MethodPatch, "/api/admin/appointments/"+appt.ID.String(), gin.H{
		"status": models.AppointmentCompleted,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var record models.RevenueRecord
	require.NoError(t, config.DB.First(&record, "appointment_id = ?", appt.ID).Error)
	assert.Equal(t, 100.0, record.Subtotal)
	assert.Equal(t, 110.0, record.Total)

	var got models.Customer
	require.NoError(t, config.DB.First(&got, "id = ?", customer.ID).Error)
	assert.Equal(t, 1, got.TotalVisits)
	assert.Equal(t, 100.0, got.TotalSpent)
	require.NotNil(t, got.LastVisit)
	assert.Equal(t, "2025-05-07", *got.LastVisit)

	// Revert to scheduled: the record and stats come back out.
	w = doJSON(t, r, http.MethodPatch, "/api/admin/appointments/"+appt.ID.String(), gin.H{
		"status": models.AppointmentScheduled,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.RevenueRecord{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	require.NoError(t, config.DB.First(&got, "id = ?", customer.ID).Error)
	assert.Equal(t, 0, got.TotalVisits)
	assert.Equal(t, 0.0, got.TotalSpent)
}

func TestCreateBookingRevivesDeletedCustomer(t *testing.T) {
	r := setupTest(t)
	pkg := seedPackage(t, "60 Minute Massage", 80)

	customer := models.Customer{FirstName: "Pia", LastName: "Novak", Email: "pia@example.com", Status: models.CustomerActive}
	require.NoError(t, config.DB.Create(&customer).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/customers/"+customer.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Rebooking with the deleted customer's email must restore the row, not
	// collide with the unique email index.
	w = doJSON(t, r, http.MethodPost, "/api/booking", gin.H{
		"firstName": "Pia",
		"lastName":  "Novak",
		"email":     "pia@example.com",
		"serviceId": pkg.ID,
		"date":      "2025-06-01",
		"time":      "10:00 AM",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, config.DB.Unscoped().Model(&models.Customer{}).Where("email = ?", "pia@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var restored models.Customer
	require.NoError(t, config.DB.First(&restored, "email = ?", "pia@example.com").Error)
	assert.Equal(t, customer.ID, restored.ID)

	var health models.CustomerHealthInfo
	assert.NoError(t, config.DB.First(&health, "customer_id = ?", restored.ID).Error)

	var appt models.Appointment
	require.NoError(t, config.DB.First(&appt, "date = ?", "2025-06-01").Error)
	require.NotNil(t, appt.CustomerID)
	assert.Equal(t, customer.ID, *appt.CustomerID)
}

func TestCreateCustomerRevivesDeletedEmail(t *testing.T) {
	r := setupTest(t)

	customer := models.Customer{FirstName: "Teo", LastName: "Marsh", Email: "teo@example.com", Status: models.CustomerActive}
	require.NoError(t, config.DB.Create(&customer).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/customers/"+customer.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/admin/customers", gin.H{
		"firstName": "Teo",
		"lastName":  "Marsh",
		"email":     "teo@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var count int64
	require.NoError(t, config.DB.Unscoped().Model(&models.Customer{}).Where("email = ?", "teo@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var restored models.Customer
	require.NoError(t, config.DB.First(&restored, "email = ?", "teo@example.com").Error)
	assert.Equal(t, customer.ID, restored.ID)
	assert.Equal(t, models.CustomerActive, restored.Status)
}

func TestCompletedAppointmentPriceEditRefreshesBilling(t *testing.T) {
	r := setupTest(t)
	require.NoError(t, config.DB.Create(&models.BusinessSettings{ID: 1, TaxRate: 0}).Error)

	customer := models.Customer{FirstName: "Gail", LastName: "Okafor", Email: "gail@example.com", Status: models.CustomerActive}
	require.NoError(t, config.DB.Create(&customer).Error)

	appt := models.Appointment{
		CustomerID:   &customer.ID,
		CustomerName: "Gail Okafor",
		ServiceName:  "60 Minute Massage",
		ServicePrice: 80,
		Date:         "2025-06-02",
		Time:         "9:00 AM",
		Status:       models.AppointmentScheduled,
	}
	require.NoError(t, config.DB.Create(&appt).Error)

	w := doJSON(t, r, http.MethodPatch, "/api/admin/appointments/"+appt.ID.String(), gin.H{
		"status": models.AppointmentCompleted,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Correct the billed price while the appointment stays completed: the
	// revenue record and cached stats must follow.
	w = doJSON(t, r, http.MethodPatch, "/api/admin/appointments/"+appt.ID.String(), gin.H{
		"servicePrice": 120,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var record models.RevenueRecord
	require.NoError(t, config.DB.First(&record, "appointment_id = ?", appt.ID).Error)
	assert.Equal(t, 120.0, record.Subtotal)
	assert.Equal(t, 120.0, record.Total)

	var got models.Customer
	require.NoError(t, config.DB.First(&got, "id = ?", customer.ID).Error)
	assert.Equal(t, 120.0, got.TotalSpent)

	var count int64
	require.NoError(t, config.DB.Model(&models.RevenueRecord{}).Where("appointment_id = ?", appt.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateAppointmentRequiresService(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/appointments", gin.H{
		"customerName": "Walk In",
		"date":         "2025-06-03",
		"time":         "9:00 AM",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAppointmentNormalizesTime(t *testing.T) {
	r := setupTest(t)
	pkg := seedPackage(t, "60 Minute Massage", 80)

	w := doJSON(t, r, http.MethodPost, "/api/admin/appointments", gin.H{
		"customerName": "Walk In",
		"serviceId":    pkg.ID,
		"date":         "2025-06-04",
		"time":         "2:30 pm",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var appt models.Appointment
	require.NoError(t, config.DB.First(&appt, "date = ?", "2025-06-04").Error)
	assert.Equal(t, "2:30 PM", appt.Time)
}

func TestGetAppointmentsRejectsUnknownStatus(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/api/admin/appointments?status=finished", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteNoteTemplateKeepsCommunications(t *testing.T) {
	r := setupTest(t)

	customer := models.Customer{FirstName: "Ava", LastName: "Stone", Email: "ava@example.com", Status: models.CustomerActive}
	require.NoError(t, config.DB.Create(&customer).Error)

	tmpl := models.NoteTemplate{
		Name:     "Post-session follow up",
		Category: "follow-up",
		Content:  "Thanks for coming in today!",
		IsActive: true,
	}
	require.NoError(t, config.DB.Create(&tmpl).Error)

	// Template content is copied into the communication, no back-reference.
	comm := models.CustomerCommunication{
		CustomerID: customer.ID,
		Type:       models.CommunicationNote,
		Content:    tmpl.Content,
		CreatedBy:  "admin",
	}
	require.NoError(t, config.DB.Create(&comm).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/note-templates/"+tmpl.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.CustomerCommunication
	require.NoError(t, config.DB.First(&got, "id = ?", comm.ID).Error)
	assert.Equal(t, "Thanks for coming in today!", got.Content)
}

func TestDeleteCustomerDetachesAppointments(t *testing.T) {
	r := setupTest(t)

	customer := models.Customer{FirstName: "Rui", LastName: "Tanaka", Email: "rui@example.com", Status: models.CustomerActive}
	require.NoError(t, config.DB.Create(&customer).Error)
	require.NoError(t, config.DB.Create(&models.CustomerHealthInfo{CustomerID: customer.ID}).Error)
	require.NoError(t, config.DB.Create(&models.CustomerPreferences{CustomerID: customer.ID}).Error)

	appt := models.Appointment{
		CustomerID:   &customer.ID,
		CustomerName: "Rui Tanaka",
		ServiceName:  "60 Minute Massage",
		ServicePrice: 80,
		Date:         "2025-05-08",
		Time:         "9:00 AM",
		Status:       models.AppointmentCompleted,
	}
	require.NoError(t, config.DB.Create(&appt).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/admin/customers/"+customer.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Appointment
	require.NoError(t, config.DB.First(&got, "id = ?", appt.ID).Error)
	assert.Nil(t, got.CustomerID)

	var healthCount int64
	require.NoError(t, config.DB.Model(&models.CustomerHealthInfo{}).Where("customer_id = ?", customer.ID).Count(&healthCount).Error)
	assert.Equal(t, int64(0), healthCount)
}
