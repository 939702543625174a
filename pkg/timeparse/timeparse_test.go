package timeparse

import (
	"testing"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
)

func TestParseText_Clock(t *testing.T) {
	if got := ParseText("13:00"); got != 780 {
		t.Errorf("Expected 13:00 to parse to 780, got %d", got)
	}
	if got := ParseText("9:05"); got != 545 {
		t.Errorf("Expected 9:05 to parse to 545, got %d", got)
	}
	if got := ParseText("14:30:45"); got != 870 {
		t.Errorf("Expected seconds to be ignored, got %d", got)
	}
}

func TestParseText_DurationPhrase(t *testing.T) {
	if got := ParseText("1시간 30분"); got != 90 {
		t.Errorf("Expected 1시간 30분 to parse to 90, got %d", got)
	}
	if got := ParseText("30분"); got != 30 {
		t.Errorf("Expected 30분 to parse to 30, got %d", got)
	}
	if got := ParseText("2시간"); got != 120 {
		t.Errorf("Expected 2시간 to parse to 120, got %d", got)
	}
	if got := ParseText("1.5시간"); got != 90 {
		t.Errorf("Expected 1.5시간 to parse to 90, got %d", got)
	}
}

func TestParseText_KoreanClock(t *testing.T) {
	if got := ParseText("2시 30분"); got != 150 {
		t.Errorf("Expected 2시 30분 to be a clock time (150), got %d", got)
	}
	if got := ParseText("14시"); got != 840 {
		t.Errorf("Expected 14시 to parse to 840, got %d", got)
	}
}

func TestParseText_Meridiem(t *testing.T) {
	if got := ParseText("오후 2시 30분"); got != 870 {
		t.Errorf("Expected 오후 2시 30분 to parse to 870, got %d", got)
	}
	if got := ParseText("오후 2:30"); got != 870 {
		t.Errorf("Expected 오후 2:30 to parse to 870, got %d", got)
	}
	if got := ParseText("2:30 PM"); got != 870 {
		t.Errorf("Expected 2:30 PM to parse to 870, got %d", got)
	}
	if got := ParseText("오후 12시"); got != 720 {
		t.Errorf("Expected 오후 12시 to stay at 720, got %d", got)
	}
	if got := ParseText("오전 12시 30분"); got != 30 {
		t.Errorf("Expected 오전 12시 30분 to parse to 30, got %d", got)
	}
}

func TestParseText_Range(t *testing.T) {
	if got := ParseText("14:00~15:00"); got != 60 {
		t.Errorf("Expected 14:00~15:00 to yield a 60 minute duration, got %d", got)
	}
	if got := ParseText("13:00-14:30"); got != 90 {
		t.Errorf("Expected 13:00-14:30 to yield 90, got %d", got)
	}
	// A reversed range fails the heuristic and falls through to the clock
	// pattern on the original string.
	if got := ParseText("15:00~14:00"); got != 900 {
		t.Errorf("Expected reversed range to fall through to 15:00 (900), got %d", got)
	}
}

func TestParseText_BareInteger(t *testing.T) {
	if got := ParseText("90"); got != 90 {
		t.Errorf("Expected bare 90 to parse to 90, got %d", got)
	}
}

func TestParseText_Unrecognized(t *testing.T) {
	for _, raw := range []string{"", "-", "없음", "휴가"} {
		if got := ParseText(raw); got != 0 {
			t.Errorf("Expected %q to parse to 0, got %d", raw, got)
		}
	}
}

func TestParseCell_NumberHeuristic(t *testing.T) {
	// Spreadsheet serial: a fraction of a day.
	if got := ParseCell(models.NumberCell(0.5416666667)); got != 780 {
		t.Errorf("Expected serial 0.5416666667 to parse to 780, got %d", got)
	}
	if got := ParseCell(models.NumberCell(0.5)); got != 720 {
		t.Errorf("Expected serial 0.5 to parse to 720, got %d", got)
	}
	// Values in [1,1000] are literal minute counts.
	if got := ParseCell(models.NumberCell(90)); got != 90 {
		t.Errorf("Expected 90 to stay 90 minutes, got %d", got)
	}
	if got := ParseCell(models.NumberCell(1000)); got != 1000 {
		t.Errorf("Expected 1000 to stay 1000 minutes, got %d", got)
	}
	// Above 1000 the fractional-day interpretation applies again.
	if got := ParseCell(models.NumberCell(1001)); got != 1001*1440 {
		t.Errorf("Expected 1001 to be treated as days, got %d", got)
	}
	if got := ParseCell(models.NumberCell(0)); got != 0 {
		t.Errorf("Expected 0 to parse to 0, got %d", got)
	}
}

func TestNormalize_IdempotentOnCanonical(t *testing.T) {
	for _, v := range []string{"00:01", "09:30", "13:00", "23:59"} {
		if got := NormalizeText(v); got != v {
			t.Errorf("Expected %q to normalize to itself, got %q", v, got)
		}
	}
}

func TestNormalize_Formats(t *testing.T) {
	if got := NormalizeText("9:5"); got != "9:5" {
		t.Errorf("Expected 9:5 to pass through unparsed, got %q", got)
	}
	if got := NormalizeText("오후 2시 30분"); got != "14:30" {
		t.Errorf("Expected 오후 2시 30분 to normalize to 14:30, got %q", got)
	}
	if got := NormalizeText("25:00"); got != "01:00" {
		t.Errorf("Expected hour to wrap modulo 24, got %q", got)
	}
	if got := Normalize(models.NumberCell(0.5416666667)); got != "13:00" {
		t.Errorf("Expected serial cell to normalize to 13:00, got %q", got)
	}
}

func TestNormalize_PreservesUnparseable(t *testing.T) {
	for _, raw := range []string{"미등원", "???", "결석"} {
		if got := NormalizeText(raw); got != raw {
			t.Errorf("Expected %q to pass through unchanged, got %q", raw, got)
		}
	}
	if got := NormalizeText(""); got != "" {
		t.Errorf("Expected empty input to stay empty, got %q", got)
	}
}

func TestNormalize_RecognizedZero(t *testing.T) {
	if got := NormalizeText("0"); got != "00:00" {
		t.Errorf("Expected \"0\" to normalize to 00:00, got %q", got)
	}
	if got := NormalizeText("00:00"); got != "00:00" {
		t.Errorf("Expected 00:00 to normalize to itself, got %q", got)
	}
	if got := Normalize(models.NumberCell(0)); got != "00:00" {
		t.Errorf("Expected numeric zero to normalize to 00:00, got %q", got)
	}
}

func TestActualCareMinutes(t *testing.T) {
	if got := ActualCareMinutesText("13:00", "17:00", ""); got != 240 {
		t.Errorf("Expected 240 care minutes, got %d", got)
	}
	if got := ActualCareMinutesText("13:00", "17:00", "14:00~15:00"); got != 180 {
		t.Errorf("Expected 180 care minutes after outing range, got %d", got)
	}
	if got := ActualCareMinutesText("13:00", "17:00", "1시간 30분"); got != 150 {
		t.Errorf("Expected 150 care minutes after outing duration, got %d", got)
	}
}

func TestActualCareMinutes_Overnight(t *testing.T) {
	if got := ActualCareMinutesText("23:00", "01:00", ""); got != 120 {
		t.Errorf("Expected overnight stay to wrap to 120, got %d", got)
	}
}

func TestActualCareMinutes_ClampedAtZero(t *testing.T) {
	if got := ActualCareMinutesText("13:00", "14:00", "3시간"); got != 0 {
		t.Errorf("Expected outing longer than the window to clamp to 0, got %d", got)
	}
	if got := ActualCareMinutesText("", "", ""); got != 0 {
		t.Errorf("Expected empty times to yield 0, got %d", got)
	}
}
