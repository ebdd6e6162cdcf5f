package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Package{}, &Appointment{}, &WebsiteContent{}))
	return db
}

func TestPackageCurrentPriceDerived(t *testing.T) {
	db := openTestDB(t)

	pkg := Package{
		Name:               "60 Minute Massage",
		Description:        "Full body",
		Duration:           "60 minutes",
		BasePrice:          100,
		DiscountPercentage: 20,
		Category:           PackageCategoryStandard,
	}
	require.NoError(t, db.Create(&pkg).Error)
	assert.Equal(t, 80.0, pkg.CurrentPrice)

	pkg.BasePrice = 90
	require.NoError(t, db.Save(&pkg).Error)
	assert.Equal(t, 72.0, pkg.CurrentPrice)

	pkg.DiscountPercentage = 0
	require.NoError(t, db.Save(&pkg).Error)
	assert.Equal(t, 90.0, pkg.CurrentPrice)

	var reread Package
	require.NoError(t, db.First(&reread, "id = ?", pkg.ID).Error)
	assert.Equal(t, 90.0, reread.CurrentPrice)
}

func TestPackageCurrentPriceRounded(t *testing.T) {
	db := openTestDB(t)

	pkg := Package{
		Name:               "90 Minute Massage",
		Description:        "Extended session",
		Duration:           "90 minutes",
		BasePrice:          95,
		DiscountPercentage: 15,
		Category:           PackageCategorySpecialty,
	}
	require.NoError(t, db.Create(&pkg).Error)
	assert.Equal(t, 80.75, pkg.CurrentPrice)
}

func TestAppointmentAddonsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	appt := Appointment{
		CustomerName: "Jamie Soto",
		ServiceName:  "60 Minute Massage",
		ServicePrice: 80,
		Addons:       StringList{"Hot Stones", "CBD Oil"},
		Date:         "2025-04-01",
		Time:         "9:00 AM",
		Duration:     60,
		Status:       AppointmentScheduled,
	}
	require.NoError(t, db.Create(&appt).Error)

	var reread Appointment
	require.NoError(t, db.First(&reread, "id = ?", appt.ID).Error)
	assert.Equal(t, StringList{"Hot Stones", "CBD Oil"}, reread.Addons)
}

func TestStringListContains(t *testing.T) {
	tags := StringList{"follow-up", "injury"}
	assert.True(t, tags.Contains("injury"))
	assert.False(t, tags.Contains("billing"))
}

func TestWebsiteContentDecodePayload(t *testing.T) {
	content := WebsiteContent{
		Section: SectionHomepageHero,
		Content: []byte(`{"heading":"Relax","subheading":"Unwind","ctaLabel":"Book now","imageUrl":"/img/hero.jpg"}`),
	}

	payload, err := content.DecodePayload()
	require.NoError(t, err)
	hero, ok := payload.(*HomepageHeroContent)
	require.True(t, ok)
	assert.Equal(t, "Relax", hero.Heading)
	assert.Equal(t, "Book now", hero.CTALabel)
}

func TestWebsiteContentUnknownSection(t *testing.T) {
	content := WebsiteContent{
		Section: "seasonal_banner",
		Content: []byte(`{"text":"Holiday hours"}`),
	}

	payload, err := content.DecodePayload()
	require.NoError(t, err)
	m, ok := payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Holiday hours", m["text"])
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 80.75, Round2(80.745000001))
	assert.Equal(t, 0.0, Round2(0))
}
