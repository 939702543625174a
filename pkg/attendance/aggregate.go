// Package attendance derives cross-row statistics from an imported record
// session: per-student totals with screening flags, and hourly occupancy
// projections for capacity planning.
package attendance

import (
	"math"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
)

// groupKey identifies a student within a class. A struct key avoids the
// collisions a concatenated string key would allow when a name contains the
// separator character.
type groupKey struct {
	Name      string
	ClassName string
}

// Aggregate groups records by student+class and computes total minutes, days
// attended, and the rounded average stay, evaluating the screening criteria
// against each aggregate. Output order follows first appearance in the input.
func Aggregate(records []models.StudentRecord, criteria []models.ScreeningCriterion) []models.StudentStat {
	index := make(map[groupKey]int)
	stats := make([]models.StudentStat, 0)

	for _, r := range records {
		key := groupKey{Name: r.StudentName, ClassName: r.ClassName}
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, models.StudentStat{Name: r.StudentName, ClassName: r.ClassName})
		}
		stats[i].TotalMinutes += r.ActualCareMinutes
		stats[i].DaysCount++
	}

	for i := range stats {
		stats[i].AvgStay = int(math.Round(float64(stats[i].TotalMinutes) / float64(stats[i].DaysCount)))
		stats[i].IsScreeningTarget = matchesAny(stats[i], criteria)
	}
	return stats
}

// matchesAny reports whether any configured criterion flags the aggregate.
// Criteria are OR-ed and evaluation stops at the first match.
func matchesAny(stat models.StudentStat, criteria []models.ScreeningCriterion) bool {
	for _, c := range criteria {
		if matches(stat, c) {
			return true
		}
	}
	return false
}

func matches(stat models.StudentStat, c models.ScreeningCriterion) bool {
	switch c.Type {
	case models.CriterionAvgStay:
		if c.Operator == models.OperatorLess {
			return stat.AvgStay < c.Value
		}
		return stat.AvgStay > c.Value
	case models.CriterionAbsenceDays:
		// Days attended is used as a proxy for absences, so the comparison
		// is inverted relative to the operator label: "greater" flags
		// students with FEWER attended days. Kept exactly as the dashboards
		// in production expect it.
		if c.Operator == models.OperatorGreater {
			return stat.DaysCount < c.Value
		}
		return stat.DaysCount > c.Value
	}
	return false
}
