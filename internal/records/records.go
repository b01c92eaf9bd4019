// Package records keeps the ranked list of completed-session scores.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/verte-zerg/tuidrill/internal/model"
	"github.com/verte-zerg/tuidrill/internal/store"
)

// MaxRecords caps the persisted list.
const MaxRecords = 1000

// Store holds the ranked records in memory and mirrors every change to a KV.
// The in-memory list stays authoritative when a write fails.
type Store struct {
	kv      store.KV
	records []model.Record
	now     func() time.Time
	logf    func(format string, args ...any)
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogf overrides where diagnostics are written.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(s *Store) {
		s.logf = logf
	}
}

// New builds a Store and loads the persisted records.
func New(ctx context.Context, kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:   kv,
		now:  time.Now,
		logf: logErrf,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Load(ctx)
	return s
}

// Load re-reads the persisted records. Missing or malformed data yields an
// empty list.
func (s *Store) Load(ctx context.Context) []model.Record {
	s.records = s.read(ctx)
	return s.Records()
}

func (s *Store) read(ctx context.Context) []model.Record {
	raw, ok, err := s.kv.Get(ctx, store.KeyRecords)
	if err != nil {
		s.logf("failed to read records: %v\n", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var recs []model.Record
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		s.logf("failed to decode records: %v\n", err)
		return nil
	}
	return rank(recs)
}

// Records returns a copy of the ranked list.
func (s *Store) Records() []model.Record {
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Save inserts a record stamped with the current time, re-ranks, truncates to
// MaxRecords, persists and returns the updated list.
func (s *Store) Save(ctx context.Context, elapsedSeconds, mistakes int, charSetID string) []model.Record {
	rec := model.Record{
		Timestamp:      s.uniqueTimestamp(s.now().UnixMilli()),
		ElapsedSeconds: elapsedSeconds,
		Mistakes:       mistakes,
		CharSetID:      charSetID,
	}
	next := make([]model.Record, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, rec)
	s.records = rank(next)
	if err := s.write(ctx); err != nil {
		s.logf("failed to save records: %v\n", err)
	}
	return s.Records()
}

// Clear erases every record.
func (s *Store) Clear(ctx context.Context) error {
	s.records = nil
	if err := s.kv.Delete(ctx, store.KeyRecords); err != nil {
		s.logf("failed to clear records: %v\n", err)
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

// Best returns the best record for charSetID.
func (s *Store) Best(charSetID string) (model.Record, bool) {
	for _, rec := range s.records {
		if rec.CharSetID == charSetID {
			return rec, true
		}
	}
	return model.Record{}, false
}

func (s *Store) write(ctx context.Context) error {
	data, err := json.Marshal(s.recordsOrEmpty())
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, store.KeyRecords, string(data))
}

func (s *Store) recordsOrEmpty() []model.Record {
	if s.records == nil {
		return []model.Record{}
	}
	return s.records
}

func (s *Store) uniqueTimestamp(ts int64) int64 {
	taken := make(map[int64]struct{}, len(s.records))
	for _, rec := range s.records {
		taken[rec.Timestamp] = struct{}{}
	}
	for {
		if _, ok := taken[ts]; !ok {
			return ts
		}
		ts++
	}
}

// rank sorts by time then mistakes, keeping insertion order on ties, and
// truncates to MaxRecords.
func rank(recs []model.Record) []model.Record {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].ElapsedSeconds != recs[j].ElapsedSeconds {
			return recs[i].ElapsedSeconds < recs[j].ElapsedSeconds
		}
		return recs[i].Mistakes < recs[j].Mistakes
	})
	if len(recs) > MaxRecords {
		recs = recs[:MaxRecords]
	}
	return recs
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
