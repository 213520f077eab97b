package schedule

import (
	"testing"
	"time"

	"gaon/backend/internal/entity"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func item(id int, dayOfWeek, start, end string) entity.ScheduleTemplateItem {
	it := entity.ScheduleTemplateItem{
		DayOfWeek: dayOfWeek,
		Type:      entity.BlockStudy,
		StartTime: start,
		EndTime:   end,
	}
	it.ID = id
	return it
}

func TestExpandItemsTwoMondays(t *testing.T) {
	items := []entity.ScheduleTemplateItem{
		item(7, "MONDAY", "14:00:00", "16:00:00"),
	}

	// 2025-03-10 and 2025-03-17 are Mondays.
	rows := expandItems(1, 3, items, day(2025, 3, 9), day(2025, 3, 18))

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	expDates := []string{"2025-03-10", "2025-03-17"}
	for i, row := range rows {
		if row.Date != expDates[i] {
			t.Fatalf("row %d: expected date %s, got %s", i, expDates[i], row.Date)
		}
		if row.StartTime != "14:00:00" || row.EndTime != "16:00:00" {
			t.Fatalf("row %d: unexpected times %s-%s", i, row.StartTime, row.EndTime)
		}
		if row.Status != entity.ScheduleNormal {
			t.Fatalf("row %d: expected NORMAL, got %s", i, row.Status)
		}
		if row.VersionID != 3 || row.ItemID == nil || *row.ItemID != 7 {
			t.Fatalf("row %d: source references lost", i)
		}
	}
}

func TestExpandItemsInclusiveBounds(t *testing.T) {
	items := []entity.ScheduleTemplateItem{
		item(1, "MONDAY", "09:00:00", "10:00:00"),
	}

	rows := expandItems(1, 1, items, day(2025, 3, 10), day(2025, 3, 10))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row for a single matching day, got %d", len(rows))
	}
}

func TestExpandItemsMultiplePerDay(t *testing.T) {
	items := []entity.ScheduleTemplateItem{
		item(1, "TUESDAY", "09:00:00", "11:00:00"),
		item(2, "TUESDAY", "13:00:00", "15:00:00"),
		item(3, "SUNDAY", "10:00:00", "12:00:00"),
	}

	// 2025-03-11 is a Tuesday, the range holds no Sunday.
	rows := expandItems(1, 1, items, day(2025, 3, 11), day(2025, 3, 14))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestExpandItemsNoMatch(t *testing.T) {
	items := []entity.ScheduleTemplateItem{
		item(1, "SATURDAY", "09:00:00", "10:00:00"),
	}

	// Monday through Friday only.
	rows := expandItems(1, 1, items, day(2025, 3, 10), day(2025, 3, 14))
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestExpandItemsRegenerationDropsRemovedItem(t *testing.T) {
	first := []entity.ScheduleTemplateItem{
		item(1, "MONDAY", "09:00:00", "11:00:00"),
		item(2, "WEDNESDAY", "14:00:00", "16:00:00"),
	}

	// Week of 2025-03-10: one Monday, one Wednesday.
	from, to := day(2025, 3, 10), day(2025, 3, 16)

	if rows := expandItems(1, 1, first, from, to); len(rows) != 2 {
		t.Fatalf("expected 2 rows before the change, got %d", len(rows))
	}

	// The replaced window holds exactly the new item set, nothing from the
	// removed Wednesday block survives.
	second := expandItems(1, 2, first[:1], from, to)
	if len(second) != 1 {
		t.Fatalf("expected 1 row after the change, got %d", len(second))
	}
	for _, row := range second {
		if row.ItemID != nil && *row.ItemID == 2 {
			t.Fatalf("removed item still materialized: %+v", row)
		}
		if row.VersionID != 2 {
			t.Fatalf("expected rows sourced from version 2, got %d", row.VersionID)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		expErr bool
	}{
		{name: "valid range", from: "2025-03-01", to: "2025-03-31"},
		{name: "single day", from: "2025-03-01", to: "2025-03-01"},
		{name: "from after to", from: "2025-04-01", to: "2025-03-01", expErr: true},
		{name: "malformed from", from: "01-03-2025", to: "2025-03-31", expErr: true},
		{name: "malformed to", from: "2025-03-01", to: "soon", expErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseRange(tc.from, tc.to)
			if tc.expErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.expErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
