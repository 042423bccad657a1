// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally holds the poll's vote counts and the percentage view derived
from them.

# Tally

A Tally is a closed set of option labels, each with a non-negative count.
Options are fixed when the tally is loaded; voting for a label outside the
set fails with ErrUnknownOption instead of adding it:

	t := tally.New("Kubernetes", "Nomad")
	err := t.Increment("Swarm") // errors.Is(err, tally.ErrUnknownOption)

Option order is the order of the persisted JSON object and survives a
MarshalJSON / UnmarshalJSON round trip.

# Percentages

ComputeView turns a tally into the list served by GET /poll:

	[{"label":"A","percentage":"25"},{"label":"B","percentage":"75"}]

Each percentage is round(100 * votes / total) with halves rounded away
from zero, or "0" when nobody has voted. Independent rounding means the
percentages may not add up to exactly 100.
*/
package tally
