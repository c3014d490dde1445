package sim

import "time"

// TriggerHandler is a pure time gate: a trigger arriving less than Cooldown
// after the last accepted one is dropped, not queued. The first trigger is
// always accepted.
type TriggerHandler struct {
	Cooldown time.Duration

	last  time.Time
	armed bool
}

func NewTriggerHandler(cooldown time.Duration) *TriggerHandler {
	return &TriggerHandler{Cooldown: cooldown}
}

// Accept reports whether a trigger at now passes the gate and, if so,
// records now as the last accepted trigger.
func (h *TriggerHandler) Accept(now time.Time) bool {
	if h.armed && now.Sub(h.last) < h.Cooldown {
		return false
	}
	h.last = now
	h.armed = true
	return true
}

// Last returns the time of the last accepted trigger.
func (h *TriggerHandler) Last() (time.Time, bool) {
	return h.last, h.armed
}

func (h *TriggerHandler) Reset() {
	h.last = time.Time{}
	h.armed = false
}
