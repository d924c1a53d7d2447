package langton

import "github.com/rodgzilla/langton-ant-machine-learning/internal/core"

// Status is the detector's tri-state outcome, polled by the engine after
// every step.
type Status uint8

const (
	// StatusCollecting means no candidate period is currently matching.
	StatusCollecting Status = iota
	// StatusMatching means a candidate period is being confirmed.
	StatusMatching
	// StatusConfirmed is terminal; the detector holds its classification.
	StatusConfirmed
)

func (s Status) String() string {
	switch s {
	case StatusCollecting:
		return "collecting"
	case StatusMatching:
		return "matching"
	case StatusConfirmed:
		return "confirmed"
	}
	return "unknown"
}

// Heading labels the diagonal the highway travels. HeadingNone doubles as
// "no highway" and as the ambiguous classification where the net
// displacement over one period is not strictly diagonal.
type Heading uint8

const (
	HeadingNone Heading = iota
	HeadingNE
	HeadingNW
	HeadingSE
	HeadingSW
)

var headingNames = [...]string{"none", "NE", "NW", "SE", "SW"}

func (h Heading) String() string {
	if int(h) >= len(headingNames) {
		return "none"
	}
	return headingNames[h]
}

// ParseHeading maps a label back to its Heading. Unrecognized labels map to
// HeadingNone.
func ParseHeading(s string) Heading {
	for i, name := range headingNames {
		if name == s {
			return Heading(i)
		}
	}
	return HeadingNone
}

// Detector recognizes the highway online from the per-step record stream.
// It keeps the last 2*period records in a ring and compares each new facing
// against the facing one period earlier. A run of `confirm` consecutive
// matches locks the detector; a single mismatch resets the streak to zero,
// so coincidental repeats during the chaotic phase never accumulate credit.
// Space is O(period) and per-step work is O(1); the classification sum runs
// once, at confirmation.
type Detector struct {
	period  int
	confirm int

	ring   []core.StepRecord
	seen   int
	streak int

	status    Status
	heading   Heading
	ambiguous bool
}

// NewDetector creates a detector for the given period and confirmation
// threshold. Non-positive arguments select the canonical defaults.
func NewDetector(period, confirm int) *Detector {
	if period <= 0 {
		period = DefaultPeriod
	}
	if confirm <= 0 {
		confirm = 2 * period
	}
	return &Detector{
		period:  period,
		confirm: confirm,
		ring:    make([]core.StepRecord, 2*period),
	}
}

// Status returns the current detector state.
func (d *Detector) Status() Status { return d.status }

// Heading returns the classification; meaningful once Status is confirmed.
func (d *Detector) Heading() Heading { return d.heading }

// Ambiguous reports a degenerate confirmation whose net displacement was not
// strictly diagonal. Such records are flagged for downstream filtering
// instead of guessing a label.
func (d *Detector) Ambiguous() bool { return d.ambiguous }

// Streak returns the current consecutive-match count.
func (d *Detector) Streak() int { return d.streak }

// Observe consumes the record of the step just taken. Once confirmed the
// detector is immutable and further records are ignored.
func (d *Detector) Observe(rec core.StepRecord) {
	if d.status == StatusConfirmed {
		return
	}
	d.ring[d.seen%len(d.ring)] = rec
	d.seen++

	// The comparison needs the facing one full period back.
	if d.seen <= d.period {
		return
	}
	prev := d.ring[(d.seen-1-d.period)%len(d.ring)]
	if rec.Facing == prev.Facing {
		d.streak++
		d.status = StatusMatching
	} else {
		d.streak = 0
		d.status = StatusCollecting
	}
	if d.streak >= d.confirm {
		d.classify()
	}
}

// classify sums the displacement over the most recent full period and maps
// the net vector's sign pair to a diagonal. Screen coordinates: y grows
// downward, so dy < 0 is north.
func (d *Detector) classify() {
	var dx, dy int
	for i := 0; i < d.period; i++ {
		r := d.ring[(d.seen-1-i)%len(d.ring)]
		dx += r.DX
		dy += r.DY
	}
	switch {
	case dx > 0 && dy < 0:
		d.heading = HeadingNE
	case dx < 0 && dy < 0:
		d.heading = HeadingNW
	case dx > 0 && dy > 0:
		d.heading = HeadingSE
	case dx < 0 && dy > 0:
		d.heading = HeadingSW
	default:
		d.heading = HeadingNone
		d.ambiguous = true
	}
	d.status = StatusConfirmed
}
