// services/revenue.go
package services

import (
	"errors"
	"log"
	"time"

	"serenity-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// EnsureRevenueRecord creates the revenue record for a completed appointment
// if one does not exist yet. Amounts are snapshotted from the appointment; tax
// comes from the business settings at completion time.
func EnsureRevenueRecord(tx *gorm.DB, appt *models.Appointment) error {
	if appt.Status != models.AppointmentCompleted {
		return nil
	}

	var existing models.RevenueRecord
	err := tx.Where("appointment_id = ?", appt.ID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var settings models.BusinessSettings
	if err := tx.First(&settings, 1).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	subtotal := models.Round2(appt.ServicePrice + appt.AddonsTotal)
	tax := models.Round2(subtotal * settings.TaxRate / 100)
	now := time.Now()

	record := models.RevenueRecord{
		AppointmentID: appt.ID,
		CustomerID:    appt.CustomerID,
		Date:          appt.Date,
		ServiceName:   appt.ServiceName,
		ServicePrice:  appt.ServicePrice,
		AddonsTotal:   appt.AddonsTotal,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         models.Round2(subtotal + tax),
		PaymentStatus: "paid",
		PaidAt:        &now,
	}
	return tx.Create(&record).Error
}

// RemoveRevenueRecord drops the derived record when an appointment leaves the
// completed state.
func RemoveRevenueRecord(tx *gorm.DB, appointmentID uuid.UUID) error {
	return tx.Where("appointment_id = ?", appointmentID).Delete(&models.RevenueRecord{}).Error
}

// RevenueSyncService backfills revenue records and re-audits customer stats on
// a nightly schedule, as a safety net behind the in-transaction bookkeeping.
type RevenueSyncService struct {
	db *gorm.DB
}

func NewRevenueSyncService(db *gorm.DB) *RevenueSyncService {
	return &RevenueSyncService{db: db}
}

func (s *RevenueSyncService) StartScheduler() {
	c := cron.New()

	// Run daily at 2 AM
	c.AddFunc("0 2 * * *", func() {
		s.Sync()
	})

	c.Start()
	log.Println("Revenue sync scheduler started")
}

func (s *RevenueSyncService) Sync() {
	log.Println("Starting nightly revenue sync...")

	var completed []models.Appointment
	if err := s.db.Where("status = ?", models.AppointmentCompleted).Find(&completed).Error; err != nil {
		log.Printf("Revenue sync: failed to fetch completed appointments: %v", err)
		return
	}

	touched := make(map[uuid.UUID]bool)
	for i := range completed {
		appt := &completed[i]
		if err := EnsureRevenueRecord(s.db, appt); err != nil {
			log.Printf("Revenue sync: appointment %s: %v", appt.ID, err)
			continue
		}
		if appt.CustomerID != nil {
			touched[*appt.CustomerID] = true
		}
	}

	for customerID := range touched {
		if err := RecalculateCustomerStats(s.db, customerID); err != nil {
			log.Printf("Revenue sync: stats for customer %s: %v", customerID, err)
		}
	}

	log.Printf("Nightly revenue sync completed (%d appointments, %d customers)", len(completed), len(touched))
}
