package attendance

import (
	"fmt"
	"strings"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
	"github.com/jaekwan3-bit/care-class-manager-main/pkg/timeparse"
)

// AllClasses selects records from every class in a projection. Capacity is a
// per-class setting, so overflow is not evaluated in this mode.
const AllClasses = "all"

// Working-hour fallbacks when the configured bounds are missing or
// unparsable.
const (
	DefaultWorkStart = 780  // 13:00
	DefaultWorkEnd   = 1080 // 18:00
)

const probeStepMinutes = 10

// Projection holds the settings snapshot for one occupancy run.
type Projection struct {
	ClassName string
	Weekday   string
	WorkStart string
	WorkEnd   string
	Capacity  int
}

// Project buckets the records into hourly slots between the working-hour
// bounds and computes peak concurrent occupancy per slot. Concurrency is
// sampled at 10-minute points within each hour and the slot count is the
// maximum across those probes; a true peak can fall between probes, which is
// accepted in exchange for linear cost over slots and records.
func Project(records []models.StudentRecord, p Projection) []models.OccupancySlot {
	workStart := timeparse.ParseText(p.WorkStart)
	if workStart == 0 {
		workStart = DefaultWorkStart
	}
	workEnd := timeparse.ParseText(p.WorkEnd)
	if workEnd == 0 {
		workEnd = DefaultWorkEnd
	}

	capacity := p.Capacity
	if p.ClassName == AllClasses {
		capacity = 999
	}

	type interval struct {
		start, end int
	}
	var intervals []interval
	for _, r := range records {
		if p.ClassName != AllClasses && r.ClassName != p.ClassName {
			continue
		}
		if !strings.Contains(r.DayOfWeek, p.Weekday) {
			continue
		}
		intervals = append(intervals, interval{
			start: timeparse.ParseText(r.StartTime),
			end:   timeparse.ParseText(r.EndTime),
		})
	}

	slots := make([]models.OccupancySlot, 0)
	for t := workStart; t < workEnd; t += 60 {
		peak := 0
		for probe := t; probe < t+60; probe += probeStepMinutes {
			count := 0
			for _, iv := range intervals {
				if probe >= iv.start && probe < iv.end {
					count++
				}
			}
			if count > peak {
				peak = count
			}
		}
		slots = append(slots, models.OccupancySlot{
			Time:   fmt.Sprintf("%02d:%02d", (t/60)%24, t%60),
			Count:  peak,
			IsOver: peak > capacity,
		})
	}
	return slots
}
