// Package timeparse converts the time representations found in care-class
// attendance spreadsheets (clock times, durations, ranges, Korean time
// phrases, spreadsheet serial numbers) into minute counts. Every function is
// total: unrecognized input resolves to 0 rather than an error, because one
// bad cell must not drop a student from the statistics.
package timeparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
)

const minutesPerDay = 1440

var (
	clockRe      = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)
	hourPhraseRe = regexp.MustCompile(`(\d+(?:\.\d+)?)시간`)
	minPhraseRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)분`)
	koreanTimeRe = regexp.MustCompile(`(\d{1,2})시(?:\s*(\d{1,2})분)?`)
	bareIntRe    = regexp.MustCompile(`^\d+$`)
)

// ParseCell converts a raw cell into minutes.
//
// A numeric cell below 1 or above 1000 is taken as a spreadsheet fractional
// day; anything in [1,1000] is taken as a literal minute count. The threshold
// is a heuristic carried over from the production data and must not change:
// real serial times are fractions of a day and real minute counts never
// reached four digits.
func ParseCell(c models.Cell) int {
	if c.IsNum {
		if c.Number < 1 || c.Number > 1000 {
			return int(math.Round(c.Number * minutesPerDay))
		}
		return int(math.Round(c.Number))
	}
	return ParseText(c.Text)
}

// ParseText converts a raw string into minutes. Patterns are tried in a fixed
// order and the first match wins; a string matching nothing parses to 0.
func ParseText(raw string) int {
	s := stripSpace(raw)
	if s == "" || s == "-" {
		return 0
	}

	if v, ok := parseRange(s); ok {
		return v
	}
	if v, ok := parseDurationPhrase(s); ok {
		return v
	}
	if v, ok := parseClock(s); ok {
		return v
	}
	if v, ok := parseKoreanClock(s); ok {
		return v
	}
	if bareIntRe.MatchString(s) {
		n, err := strconv.Atoi(s)
		if err == nil {
			return n
		}
	}
	return 0
}

// parseRange handles "14:00~15:00" style intervals, returning the duration
// between the two endpoints. A "-" only counts as a range separator when it
// is not a leading sign. Ranges that do not yield a forward, nonzero interval
// fall through to the remaining patterns.
func parseRange(s string) (int, bool) {
	sep := ""
	if strings.Contains(s, "~") {
		sep = "~"
	} else if strings.Index(s, "-") > 0 {
		sep = "-"
	}
	if sep == "" {
		return 0, false
	}

	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return 0, false
	}
	start := ParseText(parts[0])
	end := ParseText(parts[1])
	if start == 0 || end == 0 || end <= start {
		return 0, false
	}
	return end - start, true
}

// parseDurationPhrase handles "1시간 30분" / "30분" duration phrases. A bare
// 분 count only qualifies when no clock-hour marker 시 is present; otherwise
// "2시30분" would be misread as a 30-minute duration instead of a clock time.
func parseDurationPhrase(s string) (int, bool) {
	hm := hourPhraseRe.FindStringSubmatch(s)
	mm := minPhraseRe.FindStringSubmatch(s)
	if hm == nil && (mm == nil || strings.Contains(s, "시")) {
		return 0, false
	}

	var total float64
	if hm != nil {
		h, _ := strconv.ParseFloat(hm[1], 64)
		total += h * 60
	}
	if mm != nil {
		m, _ := strconv.ParseFloat(mm[1], 64)
		total += m
	}
	return int(math.Round(total)), true
}

// parseClock handles digital H:MM / HH:MM / HH:MM:SS times, seconds ignored.
// Meridiem markers in the surrounding text ("오후 2:30", "2:30 PM") shift the
// hour onto the 24-hour clock.
func parseClock(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	hour = applyMeridiem(s, hour)
	return hour*60 + min, true
}

// parseKoreanClock handles "2시 30분" / "오후 2시" clock phrases, minutes
// optional.
func parseKoreanClock(s string) (int, bool) {
	m := koreanTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	min := 0
	if m[2] != "" {
		min, _ = strconv.Atoi(m[2])
	}
	hour = applyMeridiem(s, hour)
	return hour*60 + min, true
}

func applyMeridiem(s string, hour int) int {
	upper := strings.ToUpper(s)
	if strings.Contains(s, "오후") || strings.Contains(upper, "PM") {
		if hour < 12 {
			return hour + 12
		}
	} else if strings.Contains(s, "오전") || strings.Contains(upper, "AM") {
		if hour == 12 {
			return 0
		}
	}
	return hour
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// Normalize converts any accepted raw time representation into a zero-padded
// HH:MM string. Input that parses to 0 without being a recognizable zero is
// returned unchanged so that garbled operator input stays visible in tables
// instead of being coerced to "00:00".
func Normalize(c models.Cell) string {
	v := ParseCell(c)
	if v == 0 && !isRecognizedZero(c) {
		if c.IsNum {
			return strconv.FormatFloat(c.Number, 'f', -1, 64)
		}
		return c.Text
	}
	return fmt.Sprintf("%02d:%02d", (v/60)%24, v%60)
}

// NormalizeText is Normalize over a text cell.
func NormalizeText(raw string) string {
	return Normalize(models.TextCell(raw))
}

func isRecognizedZero(c models.Cell) bool {
	if c.IsNum {
		return c.Number == 0
	}
	s := stripSpace(c.Text)
	return s == "0" || s == "00:00"
}

// ActualCareMinutes computes the supervised-care duration for one row:
// end minus start, wrapping across midnight when the exit time is earlier
// than the entry time, minus any outing interval or duration. The result is
// clamped at 0 so an outing longer than the attendance window reports zero
// care time rather than a negative one.
func ActualCareMinutes(start, end, outing models.Cell) int {
	s := ParseCell(start)
	e := ParseCell(end)

	d := e - s
	if e < s {
		d = (minutesPerDay - s) + e
	}
	d -= ParseCell(outing)
	if d < 0 {
		return 0
	}
	return d
}

// ActualCareMinutesText is ActualCareMinutes over text cells.
func ActualCareMinutesText(start, end, outing string) int {
	return ActualCareMinutes(models.TextCell(start), models.TextCell(end), models.TextCell(outing))
}
