// Concurrent journal access is normal: a cron-driven run can land while
// an operator has `fakehist log` or `fakehist status` open, and WAL-mode
// SQLite answers that with transient failures (SQLITE_BUSY, SQLITE_LOCKED,
// short WAL reads). The busy_timeout pragma absorbs plain BUSY at the
// connection level; everything else is retried here with capped
// exponential backoff.
package store

import (
	"math/rand/v2"
	"strings"
	"time"
)

// backoffPolicy shapes the retry loop around journal writes.
type backoffPolicy struct {
	attempts int           // total tries, including the first
	base     time.Duration // first delay; doubles per try
	cap      time.Duration // delay ceiling before jitter
}

// journalBackoff is the policy every Store write uses.
var journalBackoff = backoffPolicy{
	attempts: 4,
	base:     50 * time.Millisecond,
	cap:      500 * time.Millisecond,
}

// lockSignatures are the substrings modernc.org/sqlite puts in transient
// contention errors: BUSY (5), LOCKED (6), and the WAL short read (522).
var lockSignatures = []string{
	"SQLITE_BUSY",
	"SQLITE_LOCKED",
	"IOERR_SHORT_READ",
	"database is locked",
	"database table is locked",
	"(5)",
	"(6)",
	"(522)",
}

// isLockContention reports whether err is a transient SQLite contention
// error that a retry can resolve. Anything else (constraint violations,
// syntax errors, closed connections) is permanent.
func isLockContention(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, sig := range lockSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// withBackoff runs op up to p.attempts times, sleeping between tries.
// Success and permanent errors return immediately; only lock contention
// is retried.
func withBackoff(p backoffPolicy, op func() error) error {
	var err error
	for try := 0; try < p.attempts; try++ {
		if err = op(); err == nil || !isLockContention(err) {
			return err
		}
		if try < p.attempts-1 {
			time.Sleep(p.delay(try))
		}
	}
	return err
}

// delay doubles base per completed try, capped, plus up to one base of
// jitter so overlapping processes do not retry in lockstep.
func (p backoffPolicy) delay(try int) time.Duration {
	d := p.base << uint(try)
	if d > p.cap {
		d = p.cap
	}
	return d + rand.N(p.base)
}
