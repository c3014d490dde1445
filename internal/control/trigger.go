package control

import "sync/atomic"

// triggers counts pending trigger events. Any number of events fired
// between two polls collapse into a single trigger.
type triggers struct {
	pending atomic.Int32
}

// Fire queues a trigger for the next poll.
func (t *triggers) Fire() { t.pending.Add(1) }

func (t *triggers) PollTrigger() bool { return t.pending.Swap(0) > 0 }
