package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeLayout is the hour-granularity timestamp layout used by
// pageview dump files, e.g. "20160626-23".
const DefaultTimeLayout = "20060102-15"

// Record is one pageview observation: how often a page was visited
// during one hour. Records are values and are never mutated after
// construction.
type Record struct {
	Time    time.Time
	Page    string
	Counter uint64
}

// ParseError reports a field of an input line or query string that did
// not match its expected format.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseTime parses a timestamp string using DefaultTimeLayout. It is the
// single parsing primitive for both input lines and query boundaries, so
// a window written by hand matches the granularity of stored records.
func ParseTime(value string) (time.Time, error) {
	return ParseTimeLayout(value, DefaultTimeLayout)
}

// ParseTimeLayout parses a timestamp string with an explicit layout.
func ParseTimeLayout(value, layout string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, &ParseError{Field: "timestamp", Value: value, Err: err}
	}
	return t, nil
}

// ParseLine parses one tab-separated source line of the form
//
//	20160626-23	10_Cloverfield_Lane	475
//
// into a Record, reading the timestamp with DefaultTimeLayout.
func ParseLine(line string) (Record, error) {
	return ParseLineLayout(line, DefaultTimeLayout)
}

// ParseLineLayout is ParseLine with an explicit timestamp layout.
func ParseLineLayout(line, layout string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return Record{}, &ParseError{
			Field: "line",
			Value: line,
			Err:   fmt.Errorf("expected 3 tab-separated fields, got %d", len(fields)),
		}
	}

	t, err := ParseTimeLayout(fields[0], layout)
	if err != nil {
		return Record{}, err
	}

	counter, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return Record{}, &ParseError{Field: "counter", Value: fields[2], Err: err}
	}

	return Record{Time: t, Page: fields[1], Counter: counter}, nil
}

// Less orders records by (Page, Time). The counter is payload and does
// not participate in ordering.
func Less(a, b Record) bool {
	if a.Page != b.Page {
		return a.Page < b.Page
	}
	return a.Time.Before(b.Time)
}

// LessByPage orders records by page alone, ignoring time. It delimits
// the contiguous per-page run inside a (Page, Time)-sorted collection.
func LessByPage(a, b Record) bool {
	return a.Page < b.Page
}

// String renders the record for debug output, e.g.
// "time:20160626-23,page:10_Cloverfield_Lane,counter:475."
func (r Record) String() string {
	return fmt.Sprintf("time:%s,page:%s,counter:%d.",
		r.Time.Format(DefaultTimeLayout), r.Page, r.Counter)
}
