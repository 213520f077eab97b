package entity

import "testing"

func pendingVersion() ScheduleTemplateVersion {
	return ScheduleTemplateVersion{
		TemplateID: 1,
		VersionNo:  1,
		Status:     TemplatePending,
	}
}

func TestNewVersion(t *testing.T) {
	tests := []struct {
		name          string
		submit        bool
		pendingExists bool
		expStatus     TemplateStatus
		expErr        error
	}{
		{
			name:      "draft",
			expStatus: TemplateDraft,
		},
		{
			name:          "draft while another is pending",
			pendingExists: true,
			expStatus:     TemplateDraft,
		},
		{
			name:      "submit",
			submit:    true,
			expStatus: TemplatePending,
		},
		{
			name:          "submit while another is pending",
			submit:        true,
			pendingExists: true,
			expErr:        ErrPendingVersionExists,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			v, err := NewVersion(1, 2, nil, tc.submit, tc.pendingExists)
			if err != tc.expErr {
				t.Fatalf("expected %v, got %v", tc.expErr, err)
			}
			if tc.expErr != nil {
				return
			}
			if v.Status != tc.expStatus {
				t.Fatalf("expected %s, got %s", tc.expStatus, v.Status)
			}
			if v.TemplateID != 1 || v.VersionNo != 2 {
				t.Fatalf("template/version numbers lost: %+v", v)
			}
		})
	}
}

func TestCanGenerate(t *testing.T) {
	for _, status := range []TemplateStatus{TemplateDraft, TemplatePending, TemplateRejected} {
		v := pendingVersion()
		v.Status = status
		if err := v.CanGenerate(); err != ErrNotApproved {
			t.Fatalf("status %s: expected ErrNotApproved, got %v", status, err)
		}
	}

	v := pendingVersion()
	v.Status = TemplateApproved
	if err := v.CanGenerate(); err != nil {
		t.Fatalf("approved version: %v", err)
	}
}

func TestApprove(t *testing.T) {
	v := pendingVersion()
	reason := "needs more study blocks"
	v.RejectReason = &reason

	if err := v.Approve(); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if v.Status != TemplateApproved {
		t.Fatalf("expected APPROVED, got %s", v.Status)
	}
	if v.RejectReason != nil {
		t.Fatalf("expected reject reason cleared")
	}
}

func TestApproveTwice(t *testing.T) {
	v := pendingVersion()

	if err := v.Approve(); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if err := v.Approve(); err != ErrNotPending {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestApproveFromDraft(t *testing.T) {
	v := pendingVersion()
	v.Status = TemplateDraft

	if err := v.Approve(); err != ErrNotPending {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestReject(t *testing.T) {
	tests := []struct {
		name   string
		status TemplateStatus
		reason string
		expErr error
	}{
		{
			name:   "pending with reason",
			status: TemplatePending,
			reason: "overlapping blocks",
		},
		{
			name:   "blank reason",
			status: TemplatePending,
			reason: "   ",
			expErr: ErrBlankRejectReason,
		},
		{
			name:   "already approved",
			status: TemplateApproved,
			reason: "too late",
			expErr: ErrNotPending,
		},
		{
			name:   "already rejected",
			status: TemplateRejected,
			reason: "again",
			expErr: ErrNotPending,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			v := pendingVersion()
			v.Status = tc.status

			err := v.Reject(tc.reason)
			if err != tc.expErr {
				t.Fatalf("expected %v, got %v", tc.expErr, err)
			}
			if tc.expErr == nil {
				if v.Status != TemplateRejected {
					t.Fatalf("expected REJECTED, got %s", v.Status)
				}
				if v.RejectReason == nil || *v.RejectReason != tc.reason {
					t.Fatalf("expected reason stored, got %v", v.RejectReason)
				}
			}
		})
	}
}
