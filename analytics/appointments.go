// Package analytics holds the pure report functions. Everything here operates
// on already-fetched rows, keeps no state, and is safe to call concurrently.
package analytics

import (
	"math"
	"sort"

	"serenity-backend/models"
	"serenity-backend/utils"
)

// Percent returns part/total as a percentage rounded to one decimal place,
// with 0 for an empty total.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// GrowthPercent compares a current value against an equal prior window.
func GrowthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

type AppointmentRates struct {
	Total            int     `json:"total"`
	Completed        int     `json:"completed"`
	NoShows          int     `json:"noShows"`
	Cancelled        int     `json:"cancelled"`
	CompletionRate   float64 `json:"completionRate"`
	NoShowRate       float64 `json:"noShowRate"`
	CancellationRate float64 `json:"cancellationRate"`
	ConfirmationRate float64 `json:"confirmationRate"` // confirmed vs scheduled
}

// Rates computes the terminal-status percentages over a period's appointments.
func Rates(appts []models.Appointment) AppointmentRates {
	counts := StatusDistribution(appts)
	r := AppointmentRates{
		Total:     len(appts),
		Completed: counts[models.AppointmentCompleted],
		NoShows:   counts[models.AppointmentNoShow],
		Cancelled: counts[models.AppointmentCancelled],
	}
	r.CompletionRate = Percent(r.Completed, r.Total)
	r.NoShowRate = Percent(r.NoShows, r.Total)
	r.CancellationRate = Percent(r.Cancelled, r.Total)
	r.ConfirmationRate = Percent(counts[models.AppointmentConfirmed], counts[models.AppointmentScheduled])
	return r
}

func StatusDistribution(appts []models.Appointment) map[string]int {
	counts := make(map[string]int)
	for _, a := range appts {
		counts[a.Status]++
	}
	return counts
}

type ServiceShare struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ServiceDistribution ranks services by booking count.
func ServiceDistribution(appts []models.Appointment) []ServiceShare {
	counts := make(map[string]int)
	for _, a := range appts {
		counts[a.ServiceName]++
	}
	shares := make([]ServiceShare, 0, len(counts))
	for name, n := range counts {
		shares = append(shares, ServiceShare{
			Name:       name,
			Count:      n,
			Percentage: Percent(n, len(appts)),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}

// WeekdayDistribution buckets appointments by weekday, 0 = Sunday.
func WeekdayDistribution(appts []models.Appointment) [7]int {
	var buckets [7]int
	for _, a := range appts {
		d, err := utils.ParseDate(a.Date)
		if err != nil {
			continue
		}
		buckets[int(d.Weekday())]++
	}
	return buckets
}

type TimeOfDayDistribution struct {
	Morning   int `json:"morning"`   // before 12:00 PM
	Afternoon int `json:"afternoon"` // 12:00 PM up to 5:00 PM
	Evening   int `json:"evening"`   // 5:00 PM onward
}

// TimeOfDay buckets appointments by their display time. Boundaries are
// half-open on the hour: 12:00 PM counts as afternoon, 5:00 PM as evening.
func TimeOfDay(appts []models.Appointment) TimeOfDayDistribution {
	var dist TimeOfDayDistribution
	for _, a := range appts {
		hour, _, err := utils.ParseClock(a.Time)
		if err != nil {
			continue
		}
		switch {
		case hour < 12:
			dist.Morning++
		case hour < 17:
			dist.Afternoon++
		default:
			dist.Evening++
		}
	}
	return dist
}

// HourDistribution counts appointments per starting hour (0-23).
func HourDistribution(appts []models.Appointment) map[int]int {
	counts := make(map[int]int)
	for _, a := range appts {
		hour, _, err := utils.ParseClock(a.Time)
		if err != nil {
			continue
		}
		counts[hour]++
	}
	return counts
}

type TrendPoint struct {
	Date     string         `json:"date"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// DailyTrend produces per-date counts split by status, sorted by date, for
// charting.
func DailyTrend(appts []models.Appointment) []TrendPoint {
	byDate := make(map[string]*TrendPoint)
	for _, a := range appts {
		p, ok := byDate[a.Date]
		if !ok {
			p = &TrendPoint{Date: a.Date, ByStatus: make(map[string]int)}
			byDate[a.Date] = p
		}
		p.Total++
		p.ByStatus[a.Status]++
	}
	points := make([]TrendPoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

type PeakTimes struct {
	PeakWeekday      int `json:"peakWeekday"`
	PeakWeekdayCount int `json:"peakWeekdayCount"`
	PeakHour         int `json:"peakHour"`
	PeakHourCount    int `json:"peakHourCount"`
}

// Peaks identifies the busiest weekday and starting hour.
func Peaks(appts []models.Appointment) PeakTimes {
	var peaks PeakTimes
	weekdays := WeekdayDistribution(appts)
	for day, n := range weekdays {
		if n > peaks.PeakWeekdayCount {
			peaks.PeakWeekday = day
			peaks.PeakWeekdayCount = n
		}
	}
	hours := HourDistribution(appts)
	for hour := 0; hour < 24; hour++ {
		if n := hours[hour]; n > peaks.PeakHourCount {
			peaks.PeakHour = hour
			peaks.PeakHourCount = n
		}
	}
	return peaks
}

// AverageLeadTimeDays is the mean gap between booking and appointment date.
func AverageLeadTimeDays(appts []models.Appointment) float64 {
	var total, counted int
	for _, a := range appts {
		d, err := utils.ParseDate(a.Date)
		if err != nil {
			continue
		}
		total += utils.DaysBetween(a.CreatedAt, d)
		counted++
	}
	if counted == 0 {
		return 0
	}
	return float64(total) / float64(counted)
}

type PeriodComparison struct {
	Current       int     `json:"current"`
	Previous      int     `json:"previous"`
	ChangePercent float64 `json:"changePercent"`
}

// ComparePeriods is a naive count comparison between two equal-length windows.
func ComparePeriods(current, previous []models.Appointment) PeriodComparison {
	return PeriodComparison{
		Current:       len(current),
		Previous:      len(previous),
		ChangePercent: GrowthPercent(float64(len(current)), float64(len(previous))),
	}
}

// UtilizationRate is booked hours over available business hours for the
// inclusive date range, as a percentage.
func UtilizationRate(appts []models.Appointment, hours []models.BusinessHours, startDate, endDate string) float64 {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return 0
	}
	end, err := utils.ParseDate(endDate)
	if err != nil || end.Before(start) {
		return 0
	}

	openMinutes := make(map[int]int, 7)
	for _, h := range hours {
		if !h.IsOpen {
			continue
		}
		open, err1 := utils.ClockMinutes(h.OpenTime)
		closeM, err2 := utils.ClockMinutes(h.CloseTime)
		if err1 != nil || err2 != nil || closeM <= open {
			continue
		}
		minutes := closeM - open
		if h.BreakStartTime != "" && h.BreakEndTime != "" {
			bs, err1 := utils.ClockMinutes(h.BreakStartTime)
			be, err2 := utils.ClockMinutes(h.BreakEndTime)
			if err1 == nil && err2 == nil && be > bs {
				minutes -= be - bs
			}
		}
		openMinutes[h.Weekday] = minutes
	}

	var availableMinutes int
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		availableMinutes += openMinutes[int(d.Weekday())]
	}
	if availableMinutes == 0 {
		return 0
	}

	var bookedMinutes int
	for _, a := range appts {
		if a.Status == models.AppointmentCancelled || a.Status == models.AppointmentNoShow {
			continue
		}
		bookedMinutes += a.Duration
	}
	return math.Round(float64(bookedMinutes)/float64(availableMinutes)*1000) / 10
}
