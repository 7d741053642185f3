/*
 * stats.go, part of Polarcontacts.
 *
 * Copyright 2024 The Polarcontacts Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package contacts

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary contains descriptive statistics of the contact distances.
type Summary struct {
	N        int
	Mean     float64
	Std      float64 //sample standard deviation, NaN for less than 2 contacts
	Min      float64
	Max      float64
	Dividers []float64 //histogram bin edges, len(Counts)+1 of them
	Counts   []float64
}

// Summarize returns the statistics of the distances of the contacts, with a histogram of
// bins equal bins between lo and hi. Distances outside [lo,hi] are not counted in
// the histogram.
func Summarize(contacts []*Contact, lo, hi float64, bins int) Summary {
	var s Summary
	s.N = len(contacts)
	if bins < 1 || hi <= lo {
		bins = 1
	}
	s.Dividers = floats.Span(make([]float64, bins+1), lo, hi)
	//the last divider is an exclusive bound, contacts right at hi should still count.
	s.Dividers[bins] = math.Nextafter(hi, math.Inf(1))
	s.Counts = make([]float64, bins)
	if s.N == 0 {
		s.Mean, s.Std, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	d := make([]float64, 0, s.N)
	for _, c := range contacts {
		d = append(d, c.Dist)
	}
	s.Mean, s.Std = stat.MeanStdDev(d, nil)
	s.Min, s.Max = floats.Min(d), floats.Max(d)
	sort.Float64s(d)
	inrange := make([]float64, 0, len(d))
	for _, v := range d {
		if v >= lo && v < s.Dividers[bins] {
			inrange = append(inrange, v)
		}
	}
	if len(inrange) > 0 {
		stat.Histogram(s.Counts, s.Dividers, inrange, nil)
	}
	return s
}

// String returns a human-readable version of the summary.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s: %d\n", "contacts", s.N)
	if s.N == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "%-10s: %.3f\n", "mean", s.Mean)
	fmt.Fprintf(&b, "%-10s: %.3f\n", "std", s.Std)
	fmt.Fprintf(&b, "%-10s: %.3f\n", "min", s.Min)
	fmt.Fprintf(&b, "%-10s: %.3f\n", "max", s.Max)
	for i, c := range s.Counts {
		fmt.Fprintf(&b, "%5.2f-%5.2f %4d %s\n", s.Dividers[i], s.Dividers[i+1], int(c), strings.Repeat("*", int(c)))
	}
	return b.String()
}
