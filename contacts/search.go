/*
 * search.go, part of Polarcontacts.
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
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	v3 "github.com/JMiguelRamirez/Polarcontacts/v3"
)

// site is one selected atom, as stored in the k-d tree.
type site struct {
	index int //in the molecule
	pos   [3]float64
}

// Compare returns the signed distance of p from the plane passing through c and
// perpendicular to the dimension d.
func (p *site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(*site)
	return p.pos[d] - q.pos[d]
}

// Dims returns the number of dimensions described by the receiver.
func (p *site) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between c and the receiver.
func (p *site) Distance(c kdtree.Comparable) float64 {
	q := c.(*site)
	var sum float64
	for d := range p.pos {
		diff := p.pos[d] - q.pos[d]
		sum += diff * diff
	}
	return sum
}

// sites implements kdtree.Interface.
type sites []*site

func (s sites) Index(i int) kdtree.Comparable         { return s[i] }
func (s sites) Len() int                              { return len(s) }
func (s sites) Pivot(d kdtree.Dim) int                { return plane{Dim: d, sites: s}.Pivot() }
func (s sites) Slice(start, end int) kdtree.Interface { return s[start:end] }

// plane is required to help sites.
type plane struct {
	kdtree.Dim
	sites
}

func (p plane) Less(i, j int) bool {
	return p.sites[i].pos[p.Dim] < p.sites[j].pos[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.sites = p.sites[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.sites[i], p.sites[j] = p.sites[j], p.sites[i]
}

// Neighbor is a pair of atoms, given by their indexes in the molecule, closer than
// a search radius. I < J always.
type Neighbor struct {
	I, J int
	Dist float64
}

// Neighbors returns all the pairs among the atoms with indexes sel, whose positions
// are taken from coords, that are at radius A or less from each other.
// Each pair appears once. The pairs are sorted by I, then J.
func Neighbors(coords *v3.Matrix, sel []int, radius float64) []Neighbor {
	if len(sel) < 2 || radius <= 0 {
		return nil
	}
	pts := make(sites, 0, len(sel))
	for _, i := range sel {
		v := coords.Vec(i)
		pts = append(pts, &site{index: i, pos: [3]float64{v[0], v[1], v[2]}})
	}
	queries := make([]*site, len(pts))
	copy(queries, pts) //kdtree.New reorders pts
	tree := kdtree.New(pts, false)
	r2 := radius * radius
	ret := make([]Neighbor, 0, len(sel))
	for _, q := range queries {
		//a small margin so pairs exactly at the radius are not lost to rounding.
		keep := kdtree.NewDistKeeper(r2 * (1 + 1e-9))
		tree.NearestSet(keep, q)
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue
			}
			p := c.Comparable.(*site)
			if p.index <= q.index {
				continue
			}
			ret = append(ret, Neighbor{I: q.index, J: p.index, Dist: math.Sqrt(c.Dist)})
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].I != ret[j].I {
			return ret[i].I < ret[j].I
		}
		return ret[i].J < ret[j].J
	})
	return ret
}
