package langton

import (
	"testing"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/core"
)

func record(d core.Direction) core.StepRecord {
	dx, dy := d.Vector()
	return core.StepRecord{Facing: d, DX: dx, DY: dy}
}

func TestDetectorCollectsUntilOnePeriodSeen(t *testing.T) {
	det := NewDetector(10, 0)
	for i := 0; i < 10; i++ {
		det.Observe(record(core.North))
		if det.Status() != StatusCollecting {
			t.Fatalf("status = %s after %d records, want collecting", det.Status(), i+1)
		}
	}
	if det.Streak() != 0 {
		t.Fatalf("streak = %d before any comparison was possible", det.Streak())
	}
}

func TestMatchingStreakBuildsAndConfirms(t *testing.T) {
	det := NewDetector(2, 4)
	// Alternating E, N repeats with period 2 and drifts northeast.
	seq := []core.Direction{core.East, core.North}
	step := 0
	for det.Status() != StatusConfirmed {
		if step > 100 {
			t.Fatal("detector never confirmed a perfectly periodic stream")
		}
		det.Observe(record(seq[step%2]))
		step++
	}
	if det.Heading() != HeadingNE {
		t.Fatalf("heading = %s, want NE", det.Heading())
	}
	if det.Ambiguous() {
		t.Fatal("strictly diagonal drift must not be flagged ambiguous")
	}
}

func TestClassifyAllDiagonals(t *testing.T) {
	cases := []struct {
		name string
		seq  []core.Direction
		want Heading
	}{
		{"northeast", []core.Direction{core.East, core.North}, HeadingNE},
		{"northwest", []core.Direction{core.West, core.North}, HeadingNW},
		{"southeast", []core.Direction{core.East, core.South}, HeadingSE},
		{"southwest", []core.Direction{core.West, core.South}, HeadingSW},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			det := NewDetector(2, 4)
			for i := 0; i < 12; i++ {
				det.Observe(record(tc.seq[i%2]))
			}
			if det.Status() != StatusConfirmed {
				t.Fatalf("status = %s, want confirmed", det.Status())
			}
			if det.Heading() != tc.want {
				t.Fatalf("heading = %s, want %s", det.Heading(), tc.want)
			}
		})
	}
}

func TestAmbiguousClassificationReportsNoHeading(t *testing.T) {
	det := NewDetector(2, 4)
	// Constant north drifts straight up: net dx over a period is zero.
	for i := 0; i < 12; i++ {
		det.Observe(record(core.North))
	}
	if det.Status() != StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", det.Status())
	}
	if det.Heading() != HeadingNone {
		t.Fatalf("heading = %s, want none for degenerate drift", det.Heading())
	}
	if !det.Ambiguous() {
		t.Fatal("degenerate classification must be flagged ambiguous")
	}
}

// A run of matches shorter than the confirmation threshold followed by a
// single mismatch must start over from zero: transient repeats during the
// chaotic phase never carry credit across a break.
func TestBrokenMatchResetsStreak(t *testing.T) {
	const period = 10
	det := NewDetector(period, 0) // confirm defaults to 2*period = 20

	// One full period of history, then period+5 clean matches.
	for i := 0; i < period; i++ {
		det.Observe(record(core.North))
	}
	for i := 0; i < period+5; i++ {
		det.Observe(record(core.North))
	}
	if det.Status() != StatusMatching {
		t.Fatalf("status = %s mid-streak, want matching", det.Status())
	}
	if det.Streak() != period+5 {
		t.Fatalf("streak = %d, want %d", det.Streak(), period+5)
	}

	det.Observe(record(core.East))
	if det.Status() != StatusCollecting {
		t.Fatalf("status = %s after mismatch, want collecting", det.Status())
	}
	if det.Streak() != 0 {
		t.Fatalf("streak = %d after mismatch, want 0", det.Streak())
	}

	// The mismatch record sits in the ring for one more period, so the
	// stream needs a second reset plus a full fresh threshold before it
	// may confirm.
	observed := 0
	for det.Status() != StatusConfirmed {
		if observed > 100 {
			t.Fatal("detector never re-confirmed after the break")
		}
		det.Observe(record(core.North))
		observed++
		if det.Status() == StatusConfirmed && observed < period+2*period {
			t.Fatalf("confirmed after only %d post-break records, full fresh streak required", observed)
		}
	}
}

func TestConfirmedDetectorIsImmutable(t *testing.T) {
	det := NewDetector(2, 4)
	seq := []core.Direction{core.East, core.North}
	for i := 0; i < 12; i++ {
		det.Observe(record(seq[i%2]))
	}
	if det.Status() != StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", det.Status())
	}
	heading := det.Heading()

	for i := 0; i < 20; i++ {
		det.Observe(record(core.South))
	}
	if det.Status() != StatusConfirmed || det.Heading() != heading {
		t.Fatalf("confirmed detector changed state: status %s, heading %s", det.Status(), det.Heading())
	}
}
