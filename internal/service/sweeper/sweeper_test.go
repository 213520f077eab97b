package sweeper

import "testing"

func TestStopBeforeStart(t *testing.T) {
	s := New(nil, nil, nil, "23:00")
	// Must not panic when the scheduler never started.
	s.Stop()
}

func TestCronSpec(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		exp    string
		expErr bool
	}{
		{name: "evening", in: "23:00", exp: "0 23 * * *"},
		{name: "with minutes", in: "09:30", exp: "30 9 * * *"},
		{name: "midnight", in: "00:00", exp: "0 0 * * *"},
		{name: "garbage", in: "eleven pm", expErr: true},
		{name: "out of range", in: "25:00", expErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			spec, err := cronSpec(tc.in)
			if tc.expErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec != tc.exp {
				t.Fatalf("expected %q, got %q", tc.exp, spec)
			}
		})
	}
}
