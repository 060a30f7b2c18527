package cache

import "time"

// SetNow replaces the clock used to stamp loaded tables.
func (s *TableStore) SetNow(now func() time.Time) {
	s.now = now
}
