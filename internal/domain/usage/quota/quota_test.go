package quota

import "testing"

func TestNew(t *testing.T) {
	q := New(10000, 6158, false, 1700000000000)
	if q.Limit() != 10000 {
		t.Errorf("Limit() = %d", q.Limit())
	}
	if q.Remaining() != 6158 {
		t.Errorf("Remaining() = %d", q.Remaining())
	}
	if q.IsExhausted() {
		t.Error("IsExhausted() = true, want false")
	}
	if q.ResetsAt() != 1700000000000 {
		t.Errorf("ResetsAt() = %d", q.ResetsAt())
	}
}

func TestNew_Exhausted(t *testing.T) {
	q := New(1000, 0, true, 0)
	if !q.IsExhausted() {
		t.Error("IsExhausted() = false, want true")
	}
	if q.Remaining() != 0 {
		t.Errorf("Remaining() = %d", q.Remaining())
	}
}
