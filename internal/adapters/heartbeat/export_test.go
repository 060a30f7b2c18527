package heartbeat

import "time"

// SetNow replaces the clock used for liveness stamps and stale file cleanup.
func (h *Heartbeat) SetNow(now func() time.Time) {
	h.now = now
}
