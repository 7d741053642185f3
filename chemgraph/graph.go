/*
 * graph.go, part of Polarcontacts.
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

package chemgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	chem "github.com/JMiguelRamirez/Polarcontacts"
	"github.com/JMiguelRamirez/Polarcontacts/contacts"
)

// Residue wraps a chem.Residue so it can be used as a gonum graph node.
type Residue struct {
	*chem.Residue
}

// ID returns the index of the residue in its topology.
func (R *Residue) ID() int64 {
	return int64(R.Index())
}

// Network is the undirected graph of residues joined by polar contacts.
// The weight of each edge is the number of contacts between the two residues.
// implements Gonum graph.Undirected and graph.Weighted interfaces
type Network struct {
	*simple.WeightedUndirectedGraph
}

// NewNetwork builds the contact network from the residue pairs.
func NewNetwork(pairs []*contacts.ResiduePair) *Network {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i, p := range pairs {
		if p.R1 == p.R2 {
			panic(fmt.Sprintf("NewNetwork: pair %d joins residue %s with itself", i, p.R1))
		}
		var f, t graph.Node = &Residue{p.R1}, &Residue{p.R2}
		if n := g.Node(f.ID()); n != nil {
			f = n
		}
		if n := g.Node(t.ID()); n != nil {
			t = n
		}
		w := float64(len(p.Contacts))
		if e := g.WeightedEdge(f.ID(), t.ID()); e != nil {
			w += e.Weight()
		}
		g.SetWeightedEdge(simple.WeightedEdge{F: f, T: t, W: w})
	}
	return &Network{WeightedUndirectedGraph: g}
}

// NResidues returns the number of residues in the network.
func (N *Network) NResidues() int {
	return N.Nodes().Len()
}

// Contacts returns the number of polar contacts between r1 and r2.
func (N *Network) Contacts(r1, r2 *chem.Residue) int {
	w, ok := N.Weight(int64(r1.Index()), int64(r2.Index()))
	if !ok || r1 == r2 {
		return 0
	}
	return int(w)
}

// ClusterContacts returns the number of polar contacts among the residues rs.
func (N *Network) ClusterContacts(rs []*chem.Residue) int {
	n := 0
	for i, r1 := range rs {
		for _, r2 := range rs[i+1:] {
			n += N.Contacts(r1, r2)
		}
	}
	return n
}

// Clusters returns the connected components of the network, i.e. the groups of
// residues joined by hydrogen-bond networks. Larger clusters come first; clusters
// of the same size are ordered by their first residue. The residues in each cluster
// are in topology order.
func (N *Network) Clusters() [][]*chem.Residue {
	cc := topo.ConnectedComponents(N)
	ret := make([][]*chem.Residue, 0, len(cc))
	for _, c := range cc {
		rs := make([]*chem.Residue, 0, len(c))
		for _, n := range c {
			rs = append(rs, n.(*Residue).Residue)
		}
		sort.Slice(rs, func(i, j int) bool { return rs[i].Index() < rs[j].Index() })
		ret = append(ret, rs)
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if len(ret[i]) != len(ret[j]) {
			return len(ret[i]) > len(ret[j])
		}
		return ret[i][0].Index() < ret[j][0].Index()
	})
	return ret
}
