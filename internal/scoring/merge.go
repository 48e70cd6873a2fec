// ABOUTME: Date-keyed merge for persisted check-in collections.
// ABOUTME: Later writes for the same date replace earlier ones.
package scoring

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/harperreed/journey/internal/models"
)

// MergeByDate merges incoming records into existing ones keyed by date.
// Incoming records win over existing ones, and within a slice the later entry
// wins. The result is sorted by date ascending.
func MergeByDate(existing, incoming []*models.CheckinRecord) []*models.CheckinRecord {
	byDate := make(map[civil.Date]*models.CheckinRecord, len(existing)+len(incoming))
	for _, r := range existing {
		if r != nil {
			byDate[r.Date] = r
		}
	}
	for _, r := range incoming {
		if r != nil {
			byDate[r.Date] = r
		}
	}

	merged := make([]*models.CheckinRecord, 0, len(byDate))
	for _, r := range byDate {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}
