package watch

import "streamNotify/internal/domain"

// WarnThreshold is how many consecutive failures of one kind escalate to a warning.
const WarnThreshold = 3

// FailureReport describes one failed tick. Count is the number of consecutive
// failures of Kind so far, including this one.
type FailureReport struct {
	Kind  domain.ErrorKind
	Count int
	Err   error
	Warn  bool
}

type failureCounter struct {
	kind  domain.ErrorKind
	count int
}

func (c *failureCounter) record(err error) FailureReport {
	kind := domain.KindOf(err)
	if kind != c.kind {
		c.kind = kind
		c.count = 0
	}
	c.count++
	return FailureReport{
		Kind:  kind,
		Count: c.count,
		Err:   err,
		Warn:  c.count%WarnThreshold == 0,
	}
}

func (c *failureCounter) reset() {
	c.kind = ""
	c.count = 0
}
