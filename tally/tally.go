// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrUnknownOption = errors.New("unknown poll option")
	ErrMalformed     = errors.New("malformed tally")
)

// Entry is one option and its vote count
type Entry struct {
	Label string
	Votes int
}

// Tally is a closed, insertion-ordered mapping from option label to votes.
// Labels are fixed when the tally is built; Increment never adds one.
type Tally struct {
	labels []string
	votes  map[string]int
	// total never exceeds math.MaxInt; add and Increment enforce it
	total int
}

// New creates a tally with every label at zero votes.
// Duplicate labels are collapsed to their first position.
func New(labels ...string) *Tally {
	t := &Tally{votes: make(map[string]int, len(labels))}
	for _, label := range labels {
		if _, ok := t.votes[label]; ok {
			continue
		}
		t.labels = append(t.labels, label)
		t.votes[label] = 0
	}
	return t
}

// FromEntries builds a tally from ordered entries.
func FromEntries(entries []Entry) (*Tally, error) {
	t := &Tally{votes: make(map[string]int, len(entries))}
	for _, e := range entries {
		if err := t.add(e.Label, e.Votes); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tally) add(label string, votes int) error {
	if votes < 0 {
		return fmt.Errorf("%w: negative count %d for %q", ErrMalformed, votes, label)
	}
	if t.votes == nil {
		t.votes = make(map[string]int)
	}
	if _, ok := t.votes[label]; ok {
		return fmt.Errorf("%w: duplicate option %q", ErrMalformed, label)
	}
	if votes > math.MaxInt-t.total {
		return fmt.Errorf("%w: total votes overflow at %q", ErrMalformed, label)
	}
	t.labels = append(t.labels, label)
	t.votes[label] = votes
	t.total += votes
	return nil
}

// Len returns the number of options
func (t *Tally) Len() int {
	return len(t.labels)
}

// Labels returns the option labels in order
func (t *Tally) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// Count returns the votes for label and whether label is a known option
func (t *Tally) Count(label string) (int, bool) {
	n, ok := t.votes[label]
	return n, ok
}

// Total returns the sum of all counts
func (t *Tally) Total() int {
	return t.total
}

// Increment adds one vote to label.
// Returns ErrUnknownOption without modifying the tally if label is not an option,
// and ErrMalformed if the total is already at math.MaxInt.
func (t *Tally) Increment(label string) error {
	n, ok := t.votes[label]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, label)
	}
	if t.total == math.MaxInt {
		return fmt.Errorf("%w: vote count for %q is at its limit", ErrMalformed, label)
	}
	t.votes[label] = n + 1
	t.total++
	return nil
}

// Entries returns the options and their counts in order
func (t *Tally) Entries() []Entry {
	entries := make([]Entry, 0, len(t.labels))
	for _, label := range t.labels {
		entries = append(entries, Entry{Label: label, Votes: t.votes[label]})
	}
	return entries
}

// Clone returns an independent copy
func (t *Tally) Clone() *Tally {
	c, _ := FromEntries(t.Entries())
	return c
}

// Equal reports whether both tallies have the same options, order and counts
func (t *Tally) Equal(other *Tally) bool {
	if t.Len() != other.Len() {
		return false
	}
	for i, label := range t.labels {
		if other.labels[i] != label || other.votes[label] != t.votes[label] {
			return false
		}
	}
	return true
}

// MarshalJSON writes the tally as a flat object, preserving option order.
func (t *Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range t.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", t.votes[label])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a flat object of label -> count. Document order
// becomes option order. Anything other than an object whose values are
// non-negative integers is rejected with ErrMalformed.
func (t *Tally) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	parsed := &Tally{votes: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: expected an option label", ErrMalformed)
		}

		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		num, ok := tok.(json.Number)
		if !ok {
			return fmt.Errorf("%w: count for %q is not a number", ErrMalformed, label)
		}
		votes, err := num.Int64()
		if err != nil {
			return fmt.Errorf("%w: count for %q is not an integer", ErrMalformed, label)
		}
		if votes > math.MaxInt {
			return fmt.Errorf("%w: count for %q is out of range", ErrMalformed, label)
		}
		if err := parsed.add(label, int(votes)); err != nil {
			return err
		}
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after object", ErrMalformed)
	}

	*t = *parsed
	return nil
}
