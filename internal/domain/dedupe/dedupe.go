// Package dedupe provides idempotency tracking for reference submissions.
//
// Submissions carry no client-supplied ID, so duplicates are detected by a
// content fingerprint over the fields a retry would resend unchanged.
package dedupe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hrkey/refcore/internal/domain/model"
)

// Deduper records seen submission fingerprints for at-most-once intake.
type Deduper interface {
	// SeenAndRecord atomically checks whether the fingerprint was seen and
	// records it if not. Returns true when it was already seen.
	SeenAndRecord(ctx context.Context, fingerprint string) bool

	// Unrecord removes a fingerprint so the submission can be retried. Used
	// when intake recorded the fingerprint but the queue rejected the job.
	Unrecord(ctx context.Context, fingerprint string)

	Size() int64
}

// Fingerprint derives a stable identity for a submission: same owner, same
// referrer, same narrative and ratings hash to the same value regardless of
// map iteration order.
func Fingerprint(sub *model.ReferenceSubmission) string {
	var b strings.Builder
	b.WriteString(sub.OwnerID)
	b.WriteByte('|')
	b.WriteString(sub.ReferrerEmail)
	b.WriteByte('|')
	b.WriteString(sub.Summary)

	keys := make([]string, 0, len(sub.KPIRatings))
	for k := range sub.KPIRatings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%g", k, sub.KPIRatings[k])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// ringDeduper implements Deduper with a fixed-size ring buffer. When the ring
// is full the oldest fingerprint is evicted, so memory stays bounded while
// recent retries are still caught.
//
// maxSize <= 0 disables eviction and keeps every fingerprint.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
	size    atomic.Int64
}

// NewRingDeduper creates a deduper with configuration options.
func NewRingDeduper(opts ...Option) Deduper {
	d := &ringDeduper{maxSize: 100_000}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

func (d *ringDeduper) SeenAndRecord(ctx context.Context, fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[fingerprint]; ok {
		return true
	}

	if d.maxSize > 0 {
		if old := d.ring[d.next]; old != "" {
			delete(d.seen, old)
			d.size.Add(-1)
		}
		d.ring[d.next] = fingerprint
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[fingerprint] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *ringDeduper) Unrecord(ctx context.Context, fingerprint string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[fingerprint]; !ok {
		return
	}
	delete(d.seen, fingerprint)
	d.size.Add(-1)

	if d.maxSize > 0 {
		// Leave the ring slot in place; eviction skips entries that are no
		// longer in the map.
		for i, id := range d.ring {
			if id == fingerprint {
				d.ring[i] = ""
				break
			}
		}
	}
}

func (d *ringDeduper) Size() int64 {
	return d.size.Load()
}
