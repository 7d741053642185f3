/*
 * energy.go, part of Polarcontacts.
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

package energy

import (
	"fmt"
	"log"
	"math"
	"sort"

	chem "github.com/JMiguelRamirez/Polarcontacts"
	"github.com/JMiguelRamirez/Polarcontacts/contacts"
	"github.com/JMiguelRamirez/Polarcontacts/top"
	v3 "github.com/JMiguelRamirez/Polarcontacts/v3"
)

// CoulombFactor converts e^2/A to kcal/mol.
const CoulombFactor = 332.16

// Coulomb returns the electrostatic energy, in kcal/mol, between charges q1 and q2
// (in e) at a distance d (A) in a medium of relative dielectric diel.
func Coulomb(q1, q2, diel, d float64) float64 {
	return CoulombFactor * q1 * q2 / diel / d
}

// LennardJones returns the 12-6 Lennard-Jones energy for the well depth eps and
// the distance sig at which the energy is zero, at a distance d.
func LennardJones(eps, sig, d float64) float64 {
	sd6 := math.Pow(sig/d, 6)
	return 4 * eps * (sd6*sd6 - sd6)
}

// Interaction is the non-bonded interaction energy between two residues, kcal/mol.
type Interaction struct {
	R1, R2 *chem.Residue
	Elec   float64
	VdW    float64
}

// Total returns the sum of the electrostatic and van der Waals terms.
func (I *Interaction) Total() float64 {
	return I.Elec + I.VdW
}

func (I *Interaction) String() string {
	return fmt.Sprintf("%-4s %5d %-4s %5d %10.4f %10.4f %10.4f", I.R1.Name, I.R1.ID, I.R2.Name, I.R2.ID, I.Elec, I.VdW, I.Total())
}

// Calculator evaluates residue-residue interaction energies with a given force
// field, dielectric and set of coordinates.
type Calculator struct {
	FF         *top.FF
	Dielectric float64
	Coords     *v3.Matrix
	warned     map[string]bool
}

// NewCalculator returns a Calculator. It returns an error if the dielectric is not positive.
func NewCalculator(ff *top.FF, diel float64, coords *v3.Matrix) (*Calculator, error) {
	if ff == nil || ff.VdW == nil || ff.Lib == nil {
		return nil, fmt.Errorf("NewCalculator: incomplete force field")
	}
	if diel <= 0 {
		return nil, fmt.Errorf("NewCalculator: dielectric must be positive, got %g", diel)
	}
	if coords == nil {
		return nil, fmt.Errorf("NewCalculator: no coordinates given")
	}
	return &Calculator{FF: ff, Dielectric: diel, Coords: coords, warned: make(map[string]bool)}, nil
}

// params returns the parameters of the atom, and false if they are missing.
// The first time a given key is missing, a warning is logged.
func (C *Calculator) params(at *chem.Atom) (top.Params, bool) {
	p, err := C.FF.Params(at.MolName, at.Name)
	if err == nil {
		return p, true
	}
	key := err.Error()
	if m, ok := err.(*top.MissingError); ok {
		key = m.Key
	}
	if !C.warned[key] {
		log.Printf("energy: %s, its interactions will be skipped", err)
		C.warned[key] = true
	}
	return p, false
}

// Missing returns the number of distinct residue library keys or atom types that
// could not be found so far.
func (C *Calculator) Missing() int {
	return len(C.warned)
}

// each calls f for each pair of atoms of r1 and r2 with parameters and a
// non-zero distance.
func (C *Calculator) each(r1, r2 *chem.Residue, f func(p1, p2 top.Params, d float64)) {
	for _, a1 := range r1.Atoms {
		p1, ok := C.params(a1)
		if !ok {
			continue
		}
		for _, a2 := range r2.Atoms {
			p2, ok := C.params(a2)
			if !ok {
				continue
			}
			d := C.Coords.Dist(a1.Index(), a2.Index())
			if d == 0 {
				continue
			}
			f(p1, p2, d)
		}
	}
}

// Residues returns the interaction energy between r1 and r2, summed over all
// their atom pairs.
func (C *Calculator) Residues(r1, r2 *chem.Residue) *Interaction {
	ret := &Interaction{R1: r1, R2: r2}
	C.each(r1, r2, func(p1, p2 top.Params, d float64) {
		ret.Elec += Coulomb(p1.Charge, p2.Charge, C.Dielectric, d)
		eps, sig := top.CombineLJ(p1, p2)
		ret.VdW += LennardJones(eps, sig, d)
	})
	return ret
}

// Pairs returns the interaction energies for the residue pairs, in the same order.
func (C *Calculator) Pairs(pairs []*contacts.ResiduePair) []*Interaction {
	ret := make([]*Interaction, 0, len(pairs))
	for _, p := range pairs {
		ret = append(ret, C.Residues(p.R1, p.R2))
	}
	return ret
}

// SortByTotal sorts the interactions by increasing total energy. The sort is stable.
func SortByTotal(ints []*Interaction) {
	sort.SliceStable(ints, func(i, j int) bool { return ints[i].Total() < ints[j].Total() })
}

// Lowest returns the n interactions with the lowest total energy, sorted by
// increasing energy. The original slice is not modified.
func Lowest(ints []*Interaction, n int) []*Interaction {
	s := make([]*Interaction, len(ints))
	copy(s, ints)
	SortByTotal(s)
	if n >= 0 && n < len(s) {
		s = s[:n]
	}
	return s
}
