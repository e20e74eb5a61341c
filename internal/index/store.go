// Package index holds the sorted in-memory pageview index and its range
// and top-k query operations.
package index

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/runnerr0/pagedex/internal/record"
	"github.com/runnerr0/pagedex/internal/snapshot"
)

var (
	// ErrMalformedInterval is returned by range queries when the window
	// start lies after the window end.
	ErrMalformedInterval = errors.New("index: malformed time interval")

	// ErrUnsortedSnapshot is returned by Load when the decoded records
	// are not in (page, time) order. Binary search over an unsorted
	// collection would silently return wrong results, so the violation
	// fails loudly instead.
	ErrUnsortedSnapshot = errors.New("index: snapshot records not in (page, time) order")
)

// Store is an immutable-after-build collection of records kept sorted by
// (page, time). It is populated exactly once, via Build or Load, and
// exposes no mutation afterwards; queries return copies, never views
// into internal storage. A Store is not safe for use while a concurrent
// Build or Load is in flight; the host must serialize those.
type Store struct {
	records []record.Record

	// layout interprets timestamps in source lines and query boundary
	// strings. One layout for both keeps a hand-written window at the
	// same granularity as the stored records.
	layout string
}

// New returns an empty Store using the default timestamp layout.
func New() *Store {
	return NewWithLayout(record.DefaultTimeLayout)
}

// NewWithLayout returns an empty Store that parses source and query
// timestamps with the given layout.
func NewWithLayout(layout string) *Store {
	return &Store{layout: layout}
}

// Build reads newline-delimited tab-separated records from r, parses
// each line, and sorts the collection once by (page, time). Building is
// all-or-nothing: the first unparseable line aborts the build and the
// store keeps its previous contents.
func (s *Store) Build(r io.Reader) error {
	var recs []record.Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		rec, err := record.ParseLineLayout(scanner.Text(), s.layout)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	sort.Slice(recs, func(i, j int) bool {
		return record.Less(recs[i], recs[j])
	})

	s.records = recs
	return nil
}

// BuildFile builds the index from a source file.
func (s *Store) BuildFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	return s.Build(f)
}

// Save serializes the current state to w as a binary snapshot.
func (s *Store) Save(w io.Writer) error {
	return snapshot.Write(w, s.records)
}

// SaveFile writes the snapshot to a file.
func (s *Store) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load replaces the store's contents with a previously saved snapshot.
// The decoded records are verified to be in (page, time) order;
// ErrUnsortedSnapshot is returned otherwise and the store keeps its
// previous contents.
func (s *Store) Load(r io.Reader) error {
	recs, err := snapshot.Read(r)
	if err != nil {
		return err
	}

	if !sort.SliceIsSorted(recs, func(i, j int) bool {
		return record.Less(recs[i], recs[j])
	}) {
		return ErrUnsortedSnapshot
	}

	s.records = recs
	return nil
}

// LoadFile loads a snapshot from a file.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	return s.Load(f)
}

// pageBounds locates the contiguous run of records for page inside the
// sorted collection: two binary searches, lower and upper bound by page
// only. lo == hi means the page is absent.
func (s *Store) pageBounds(page string) (lo, hi int) {
	probe := record.Record{Page: page}
	lo = sort.Search(len(s.records), func(i int) bool {
		return !record.LessByPage(s.records[i], probe)
	})
	hi = sort.Search(len(s.records), func(i int) bool {
		return record.LessByPage(probe, s.records[i])
	})
	return lo, hi
}

// Range returns copies of all records for page whose time lies in the
// closed interval [t1, t2], in (page, time) order. A page with no
// records yields an empty result, not an error. A window with t1 after
// t2 fails with ErrMalformedInterval.
func (s *Store) Range(page string, t1, t2 time.Time) ([]record.Record, error) {
	if t1.After(t2) {
		return nil, fmt.Errorf("%w: <%s,%s>", ErrMalformedInterval,
			t1.Format(record.DefaultTimeLayout), t2.Format(record.DefaultTimeLayout))
	}

	lo, hi := s.pageBounds(page)

	result := []record.Record{}
	for _, r := range s.records[lo:hi] {
		if !r.Time.Before(t1) && !r.Time.After(t2) {
			result = append(result, r)
		}
	}
	return result, nil
}

// RangeTimes is Range with the window boundaries given as strings in
// the store's timestamp layout.
func (s *Store) RangeTimes(page, t1, t2 string) ([]record.Record, error) {
	from, err := record.ParseTimeLayout(t1, s.layout)
	if err != nil {
		return nil, err
	}
	to, err := record.ParseTimeLayout(t2, s.layout)
	if err != nil {
		return nil, err
	}
	return s.Range(page, from, to)
}

// TopK returns at most k records of Range(page, t1, t2), keeping the
// earliest-in-order prefix. The filtered result is re-sorted (stably)
// before truncation so the invariant holds even if filtering ever
// altered order. Negative k is treated as 0.
func (s *Store) TopK(page string, t1, t2 time.Time, k int) ([]record.Record, error) {
	result, err := s.Range(page, t1, t2)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result, func(i, j int) bool {
		return record.Less(result[i], result[j])
	})

	if k < 0 {
		k = 0
	}
	if len(result) > k {
		result = result[:k]
	}
	return result, nil
}

// TopKTimes is TopK with the window boundaries given as strings in the
// store's timestamp layout.
func (s *Store) TopKTimes(page, t1, t2 string, k int) ([]record.Record, error) {
	from, err := record.ParseTimeLayout(t1, s.layout)
	if err != nil {
		return nil, err
	}
	to, err := record.ParseTimeLayout(t2, s.layout)
	if err != nil {
		return nil, err
	}
	return s.TopK(page, from, to, k)
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Record returns a copy of the i-th record in (page, time) order.
func (s *Store) Record(i int) record.Record {
	return s.records[i]
}

// Print writes the debug rendering of the i-th record to w.
func (s *Store) Print(w io.Writer, i int) error {
	_, err := fmt.Fprintln(w, s.records[i])
	return err
}

// PrintAll writes the debug rendering of every record to w, one per line.
func (s *Store) PrintAll(w io.Writer) error {
	for _, r := range s.records {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return nil
}

// Stats summarizes the store for status output.
type Stats struct {
	Records int
	Pages   int
	Oldest  time.Time
	Newest  time.Time
}

// Stats returns aggregate statistics over the stored records. Because
// the collection is page-sorted, distinct pages are counted in one
// pass; the time span needs a full scan since records are not sorted by
// time globally.
func (s *Store) Stats() Stats {
	st := Stats{Records: len(s.records)}
	if len(s.records) == 0 {
		return st
	}

	st.Oldest = s.records[0].Time
	st.Newest = s.records[0].Time
	prevPage := ""
	for i, r := range s.records {
		if i == 0 || r.Page != prevPage {
			st.Pages++
			prevPage = r.Page
		}
		if r.Time.Before(st.Oldest) {
			st.Oldest = r.Time
		}
		if r.Time.After(st.Newest) {
			st.Newest = r.Time
		}
	}
	return st
}
