package profiling

import (
	"strings"
	"testing"
)

func TestTrackAccumulates(t *testing.T) {
	ResetFrame()
	for i := 0; i < 3; i++ {
		Track("test.Op")()
	}
	if got := Calls("test.Op"); got != 3 {
		t.Fatalf("got %d calls, want 3", got)
	}
	if _, ok := Snapshot()["test.Op"]; !ok {
		t.Fatalf("snapshot missing tracked name")
	}
	Track("other.Op")()
	if SumWithPrefix("test.") != Snapshot()["test.Op"] {
		t.Fatalf("SumWithPrefix should only count matching names")
	}
	if s := TopN(5); !strings.Contains(s, "test.Op:") || !strings.Contains(s, "(3)") {
		t.Fatalf("TopN: got %q", s)
	}
	ResetFrame()
	if got := Calls("test.Op"); got != 0 {
		t.Fatalf("after reset: got %d calls, want 0", got)
	}
}
