package services

import (
	"testing"

	"serenity-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Customer{},
		&models.Appointment{},
		&models.RevenueRecord{},
		&models.BusinessSettings{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	customer := models.Customer{
		FirstName: "Dana",
		LastName:  "Whitfield",
		Email:     "dana@example.com",
		Status:    models.CustomerActive,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedAppointment(t *testing.T, db *gorm.DB, customerID uuid.UUID, date, status string, price, addons float64) models.Appointment {
	t.Helper()
	appt := models.Appointment{
		CustomerID:   &customerID,
		CustomerName: "Dana Whitfield",
		ServiceName:  "60 Minute Massage",
		ServicePrice: price,
		AddonsTotal:  addons,
		Date:         date,
		Time:         "9:00 AM",
		Duration:     60,
		Status:       status,
	}
	require.NoError(t, db.Create(&appt).Error)
	return appt
}

func TestRecalculateCustomerStats(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db)

	seedAppointment(t, db, customer.ID, "2025-03-01", models.AppointmentCompleted, 80, 15)
	seedAppointment(t, db, customer.ID, "2025-03-15", models.AppointmentCompleted, 120, 0)
	seedAppointment(t, db, customer.ID, "2025-03-20", models.AppointmentNoShow, 80, 0)
	seedAppointment(t, db, customer.ID, "2025-04-01", models.AppointmentScheduled, 80, 0)

	require.NoError(t, RecalculateCustomerStats(db, customer.ID))

	var got models.Customer
	require.NoError(t, db.First(&got, "id = ?", customer.ID).Error)
	assert.Equal(t, 2, got.TotalVisits)
	assert.Equal(t, 215.0, got.TotalSpent)
	require.NotNil(t, got.LastVisit)
	assert.Equal(t, "2025-03-15", *got.LastVisit)
}

func TestRecalculateCustomerStatsAfterUncomplete(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db)

	appt := seedAppointment(t, db, customer.ID, "2025-03-01", models.AppointmentCompleted, 100, 0)
	require.NoError(t, RecalculateCustomerStats(db, customer.ID))

	appt.Status = models.AppointmentCancelled
	require.NoError(t, db.Save(&appt).Error)
	require.NoError(t, RecalculateCustomerStats(db, customer.ID))

	var got models.Customer
	require.NoError(t, db.First(&got, "id = ?", customer.ID).Error)
	assert.Equal(t, 0, got.TotalVisits)
	assert.Equal(t, 0.0, got.TotalSpent)
	assert.Nil(t, got.LastVisit)
}

func TestEnsureRevenueRecord(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.BusinessSettings{ID: 1, TaxRate: 8}).Error)
	customer := seedCustomer(t, db)
	appt := seedAppointment(t, db, customer.ID, "2025-03-01", models.AppointmentCompleted, 80, 20)

	require.NoError(t, EnsureRevenueRecord(db, &appt))

	var record models.RevenueRecord
	require.NoError(t, db.First(&record, "appointment_id = ?", appt.ID).Error)
	assert.Equal(t, 100.0, record.Subtotal)
	assert.Equal(t, 8.0, record.Tax)
	assert.Equal(t, 108.0, record.Total)
	assert.Equal(t, "2025-03-01", record.Date)
}

func TestEnsureRevenueRecordIdempotent(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db)
	appt := seedAppointment(t, db, customer.ID, "2025-03-01", models.AppointmentCompleted, 80, 0)

	require.NoError(t, EnsureRevenueRecord(db, &appt))
	require.NoError(t, EnsureRevenueRecord(db, &appt))

	var count int64
	require.NoError(t, db.Model(&models.RevenueRecord{}).Where("appointment_id = ?", appt.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureRevenueRecordSkipsIncomplete(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db)
	appt := seedAppointment(t, db, customer.ID, "2025-03-01", models.AppointmentScheduled, 80, 0)

	require.NoError(t, EnsureRevenueRecord(db, &appt))

	var count int64
	require.NoError(t, db.Model(&models.RevenueRecord{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRemoveRevenueRecord(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db)
	appt := seedAppointment(t, db, customer.ID, "2025-03-01", models.AppointmentCompleted, 80, 0)

	require.NoError(t, EnsureRevenueRecord(db, &appt))
	require.NoError(t, RemoveRevenueRecord(db, appt.ID))

	var count int64
	require.NoError(t, db.Model(&models.RevenueRecord{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRevenueSyncBackfills(t *testing.T) {
	db := openTestDB(t)
	customer := seedCustomer(t, db)
	seedAppointment(t, db, customer.ID, "2025-03-01", models.AppointmentCompleted, 90, 10)
	seedAppointment(t, db, customer.ID, "2025-03-10", models.AppointmentCompleted, 90, 0)

	NewRevenueSyncService(db).Sync()

	var count int64
	require.NoError(t, db.Model(&models.RevenueRecord{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var got models.Customer
	require.NoError(t, db.First(&got, "id = ?", customer.ID).Error)
	assert.Equal(t, 2, got.TotalVisits)
	assert.Equal(t, 190.0, got.TotalSpent)
}
