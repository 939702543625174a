package models

// Cell is a raw spreadsheet cell value. Imports hand the core either text or
// a numeric spreadsheet time encoding, so the two are kept apart explicitly
// instead of sniffing types downstream.
type Cell struct {
	Text   string
	Number float64
	IsNum  bool
}

// TextCell returns a text-typed cell.
func TextCell(s string) Cell {
	return Cell{Text: s}
}

// NumberCell returns a number-typed cell.
func NumberCell(n float64) Cell {
	return Cell{Number: n, IsNum: true}
}

// StudentRecord is one attendance row: one student on one attended day.
// Built once at import and never mutated afterwards.
type StudentRecord struct {
	ID                string `json:"id"`
	StudentName       string `json:"student_name"`
	ClassName         string `json:"class_name"`
	DayOfWeek         string `json:"day_of_week"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	OutingTime        string `json:"outing_time"`
	ActualCareMinutes int    `json:"actual_care_minutes"`
}

// StudentStat is the per-student aggregate over all rows sharing a
// student+class pair.
type StudentStat struct {
	Name              string `json:"name"`
	ClassName         string `json:"class_name"`
	TotalMinutes      int    `json:"total_minutes"`
	DaysCount         int    `json:"days_count"`
	AvgStay           int    `json:"avg_stay"`
	IsScreeningTarget bool   `json:"is_screening_target"`
}

// Screening criterion types and operators.
const (
	CriterionAvgStay     = "average-stay-time"
	CriterionAbsenceDays = "absence-days"

	OperatorGreater = "greater"
	OperatorLess    = "less"
)

// ScreeningCriterion is one operator-configured rule; a student matching any
// configured criterion is flagged for review.
type ScreeningCriterion struct {
	ID       uint   `json:"id"`
	Type     string `json:"type"`
	Operator string `json:"operator"`
	Value    int    `json:"value"`
}

// OccupancySlot is one hour-wide bucket of the working-hours window with its
// peak concurrent headcount.
type OccupancySlot struct {
	Time   string `json:"time"`
	Count  int    `json:"count"`
	IsOver bool   `json:"is_over"`
}

// ImportResponse summarizes an import that replaced the record session.
type ImportResponse struct {
	RecordCount int             `json:"record_count"`
	SkippedRows int             `json:"skipped_rows"`
	Records     []StudentRecord `json:"records"`
}
