package mgerr

import "testing"

func TestImmutable(t *testing.T) {
	e := New(400, "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Detail == "changed" {
		t.Errorf("Expected immutable error with detail not equal to 'changed', got '%s'", e.Detail)
	}
	if changedE.Detail != "changed" {
		t.Errorf("Expected immutable error with detail equal to 'changed', got '%s'", changedE.Detail)
	}
}

func TestWithExtrasLeavesSentinelUntouched(t *testing.T) {
	e := New(404, "Activity not found")
	changedE := e.WithExtras(Extras{"activity": "Chess Club"})
	if e.Extras != nil {
		t.Errorf("Expected base error to carry no extras, got %v", *e.Extras)
	}
	if changedE.Extras == nil {
		t.Fatal("Expected derived error to carry extras")
	}
	if (*changedE.Extras)["activity"] != "Chess Club" {
		t.Errorf("Expected derived error extras to carry activity, got %v", *changedE.Extras)
	}
}
