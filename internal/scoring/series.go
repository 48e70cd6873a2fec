// ABOUTME: Dense series builder projecting sparse check-ins onto a gap-free year.
// ABOUTME: Keeps the true cumulative; display clamping lives in DisplayCumulative.
package scoring

import (
	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/models"
)

const (
	// SeriesLength is the number of days in a dense series.
	SeriesLength = 365

	// DefaultDisplayBand bounds the charted cumulative to +/- this value.
	DefaultDisplayBand = 36.5
)

// BuildDenseSeries returns SeriesLength consecutive days starting at journeyStart.
// Days without a record score 0. If records share a date the last one wins.
func BuildDenseSeries(journeyStart civil.Date, checkins []*models.CheckinRecord) []models.DensePoint {
	byDate := make(map[civil.Date]*models.CheckinRecord, len(checkins))
	for _, r := range checkins {
		if r != nil {
			byDate[r.Date] = r
		}
	}

	points := make([]models.DensePoint, SeriesLength)
	cumulative := 0
	for i := range SeriesLength {
		date := journeyStart.AddDays(i)
		r, ok := byDate[date]
		score := 0
		if ok {
			score = r.DailyScore
		}
		cumulative += score
		points[i] = models.DensePoint{
			Date:       date,
			DayNumber:  i + 1,
			Score:      score,
			Cumulative: cumulative,
			HasCheckin: ok,
		}
	}
	return points
}

// DayNumber returns the 1-based day of the journey for date.
func DayNumber(journeyStart, date civil.Date) int {
	return date.DaysSince(journeyStart) + 1
}

// DisplayCumulative clamps a cumulative total to [-band, band] for charting.
func DisplayCumulative(cumulative int, band float64) float64 {
	return max(-band, min(float64(cumulative), band))
}

// SeriesThrough trims a dense series to the days up to and including last.
func SeriesThrough(points []models.DensePoint, last civil.Date) []models.DensePoint {
	for i, p := range points {
		if p.Date.After(last) {
			return points[:i]
		}
	}
	return points
}
