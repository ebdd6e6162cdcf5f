// services/stats.go
package services

import (
	"serenity-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecalculateCustomerStats recomputes the cached aggregates on a customer from
// its completed appointments. It is a full recomputation, not incremental, and
// must run inside the same transaction as any appointment write that changes
// completion state.
func RecalculateCustomerStats(tx *gorm.DB, customerID uuid.UUID) error {
	var appts []models.Appointment
	if err := tx.Where("customer_id = ? AND status = ?", customerID, models.AppointmentCompleted).
		Find(&appts).Error; err != nil {
		return err
	}

	var spent float64
	var lastVisit *string
	for _, a := range appts {
		spent += a.ServicePrice + a.AddonsTotal
		if lastVisit == nil || a.Date > *lastVisit {
			d := a.Date
			lastVisit = &d
		}
	}

	return tx.Model(&models.Customer{}).Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"total_visits": len(appts),
			"total_spent":  models.Round2(spent),
			"last_visit":   lastVisit,
		}).Error
}
