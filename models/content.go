package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Known website content sections. Each section stores its own payload shape in
// the Content JSON column; DecodePayload gives back the typed variant.
const (
	SectionHomepageHero  = "homepage_hero"
	SectionAbout         = "about"
	SectionServicesIntro = "services_intro"
	SectionContact       = "contact"
	SectionTestimonials  = "testimonials"
)

type WebsiteContent struct {
	ID      uint           `gorm:"primary_key" json:"id"`
	Section string         `gorm:"uniqueIndex;not null" json:"section"`
	Content datatypes.JSON `gorm:"type:jsonb" json:"content"`

	UpdatedAt time.Time `json:"updatedAt"`
}

type HomepageHeroContent struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	CTALabel   string `json:"ctaLabel"`
	ImageURL   string `json:"imageUrl"`
}

type AboutContent struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	PhotoURL   string   `json:"photoUrl"`
}

type ServicesIntroContent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type ContactContent struct {
	Blurb    string `json:"blurb"`
	MapEmbed string `json:"mapEmbed"`
}

type Testimonial struct {
	Author string `json:"author"`
	Quote  string `json:"quote"`
}

type TestimonialsContent struct {
	Items []Testimonial `json:"items"`
}

// DecodePayload unmarshals the raw content into the typed struct for the
// section. Unknown sections decode to a generic map so new sections can be
// stored before the backend learns their shape.
func (w *WebsiteContent) DecodePayload() (interface{}, error) {
	switch w.Section {
	case SectionHomepageHero:
		var v HomepageHeroContent
		return &v, json.Unmarshal(w.Content, &v)
	case SectionAbout:
		var v AboutContent
		return &v, json.Unmarshal(w.Content, &v)
	case SectionServicesIntro:
		var v ServicesIntroContent
		return &v, json.Unmarshal(w.Content, &v)
	case SectionContact:
		var v ContactContent
		return &v, json.Unmarshal(w.Content, &v)
	case SectionTestimonials:
		var v TestimonialsContent
		return &v, json.Unmarshal(w.Content, &v)
	default:
		var v map[string]interface{}
		if err := json.Unmarshal(w.Content, &v); err != nil {
			return nil, fmt.Errorf("section %s: %w", w.Section, err)
		}
		return v, nil
	}
}
