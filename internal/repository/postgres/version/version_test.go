package version

import "testing"

func itemReq(day, start, end string) ItemRequest {
	return ItemRequest{
		DayOfWeek: day,
		Type:      "STUDY",
		StartTime: start,
		EndTime:   end,
	}
}

func TestBuildItems(t *testing.T) {
	tests := []struct {
		name   string
		item   ItemRequest
		expErr bool
	}{
		{name: "valid block", item: itemReq("MONDAY", "14:00", "16:00")},
		{name: "seconds layout", item: itemReq("SUNDAY", "09:00:00", "10:30:00")},
		{name: "lowercase weekday", item: itemReq("monday", "14:00", "16:00"), expErr: true},
		{name: "misspelled weekday", item: itemReq("MONDY", "14:00", "16:00"), expErr: true},
		{name: "blank weekday", item: itemReq("", "14:00", "16:00"), expErr: true},
		{name: "end before start", item: itemReq("FRIDAY", "16:00", "14:00"), expErr: true},
		{name: "zero length block", item: itemReq("FRIDAY", "14:00", "14:00"), expErr: true},
		{name: "garbage start", item: itemReq("FRIDAY", "noon", "14:00"), expErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			items, err := buildItems([]ItemRequest{tc.item})
			if tc.expErr {
				if err == nil {
					t.Fatalf("expected error for %+v", tc.item)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != 1 {
				t.Fatalf("expected 1 item, got %d", len(items))
			}
		})
	}
}

func TestBuildItemsNormalizesTimes(t *testing.T) {
	items, err := buildItems([]ItemRequest{itemReq("MONDAY", "14:00", "16:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if items[0].StartTime != "14:00:00" || items[0].EndTime != "16:00:00" {
		t.Fatalf("expected normalized times, got %s-%s", items[0].StartTime, items[0].EndTime)
	}
}

func TestBuildItemsDefaultsBlockType(t *testing.T) {
	req := itemReq("MONDAY", "14:00", "16:00")
	req.Type = ""

	items, err := buildItems([]ItemRequest{req})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(items[0].Type) != "OTHER" {
		t.Fatalf("expected OTHER, got %s", items[0].Type)
	}
}
