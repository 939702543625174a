package attendance

import (
	"testing"

	"github.com/jaekwan3-bit/care-class-manager-main/pkg/models"
)

func attends(name, class, day, start, end string) models.StudentRecord {
	return models.StudentRecord{
		StudentName: name,
		ClassName:   class,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
	}
}

func TestProject_PeakIsMaxSimultaneousOverlap(t *testing.T) {
	// Three records in the 13:00 slot, but at no sampled instant do all
	// three overlap: the slot peak must be 2, not 3.
	records := []models.StudentRecord{
		attends("a", "1반", "월", "13:00", "13:20"),
		attends("b", "1반", "월", "13:10", "13:30"),
		attends("c", "1반", "월", "13:40", "14:00"),
	}

	slots := Project(records, Projection{
		ClassName: "1반",
		Weekday:   "월",
		WorkStart: "13:00",
		WorkEnd:   "18:00",
		Capacity:  20,
	})

	if len(slots) != 5 {
		t.Fatalf("Expected 5 hourly slots between 13:00 and 18:00, got %d", len(slots))
	}
	if slots[0].Time != "13:00" {
		t.Errorf("Expected first slot at 13:00, got %s", slots[0].Time)
	}
	if slots[0].Count != 2 {
		t.Errorf("Expected peak of 2 concurrent students, got %d", slots[0].Count)
	}
	if slots[1].Count != 0 {
		t.Errorf("Expected empty 14:00 slot, got %d", slots[1].Count)
	}
}

func TestProject_CapacityOverflow(t *testing.T) {
	records := []models.StudentRecord{
		attends("a", "1반", "월", "13:00", "14:00"),
		attends("b", "1반", "월", "13:00", "14:00"),
	}

	slots := Project(records, Projection{
		ClassName: "1반",
		Weekday:   "월",
		WorkStart: "13:00",
		WorkEnd:   "14:00",
		Capacity:  1,
	})

	if len(slots) != 1 {
		t.Fatalf("Expected a single slot, got %d", len(slots))
	}
	if !slots[0].IsOver {
		t.Errorf("Expected count %d over capacity 1 to be flagged", slots[0].Count)
	}
}

func TestProject_AllClassesUnbounded(t *testing.T) {
	records := []models.StudentRecord{
		attends("a", "1반", "월", "13:00", "14:00"),
		attends("b", "2반", "월", "13:00", "14:00"),
	}

	slots := Project(records, Projection{
		ClassName: AllClasses,
		Weekday:   "월",
		WorkStart: "13:00",
		WorkEnd:   "14:00",
		Capacity:  1, // ignored when all classes are selected
	})

	if slots[0].Count != 2 {
		t.Errorf("Expected both classes counted, got %d", slots[0].Count)
	}
	if slots[0].IsOver {
		t.Errorf("Expected no overflow flag when all classes are selected")
	}
}

func TestProject_FiltersClassAndWeekday(t *testing.T) {
	records := []models.StudentRecord{
		attends("a", "1반", "월,수", "13:00", "14:00"),
		attends("b", "1반", "화", "13:00", "14:00"),
		attends("c", "2반", "수", "13:00", "14:00"),
	}

	slots := Project(records, Projection{
		ClassName: "1반",
		Weekday:   "수",
		WorkStart: "13:00",
		WorkEnd:   "14:00",
		Capacity:  20,
	})

	if slots[0].Count != 1 {
		t.Errorf("Expected only the 1반 수요일 record counted, got %d", slots[0].Count)
	}
}

func TestProject_DefaultWorkHours(t *testing.T) {
	slots := Project(nil, Projection{
		ClassName: AllClasses,
		Weekday:   "월",
		WorkStart: "대기",
		WorkEnd:   "",
	})

	if len(slots) != 5 {
		t.Fatalf("Expected 13:00-18:00 fallback to yield 5 slots, got %d", len(slots))
	}
	if slots[0].Time != "13:00" || slots[4].Time != "17:00" {
		t.Errorf("Expected slots from 13:00 to 17:00, got %s..%s", slots[0].Time, slots[4].Time)
	}
}

func TestProject_RecordEndExclusive(t *testing.T) {
	records := []models.StudentRecord{
		attends("a", "1반", "월", "13:00", "13:10"),
	}

	slots := Project(records, Projection{
		ClassName: "1반",
		Weekday:   "월",
		WorkStart: "13:00",
		WorkEnd:   "14:00",
		Capacity:  20,
	})

	// Present at the 13:00 probe only; the 13:10 probe falls on the exit
	// minute and must not count.
	if slots[0].Count != 1 {
		t.Errorf("Expected exit minute to be exclusive, got count %d", slots[0].Count)
	}
}
