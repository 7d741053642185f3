/*
 * contacts.go, part of Polarcontacts.
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
	"sort"

	chem "github.com/JMiguelRamirez/Polarcontacts"
)

// Options control which atom pairs count as polar contacts.
type Options struct {
	Cutoff   float64 //maximum distance, A
	Covalent float64 //pairs closer than this are discarded, A
	NoWaters bool    //discard contacts involving water
	BackOnly bool    //use only backbone polar atoms
	//If true, only residues in the same chain can be adjacent. Otherwise
	//any two residues with consecutive numbers are.
	ChainAdjacency bool
}

// DefaultOptions returns the options with the HBLNK and COVLNK distances
// and no atom filters.
func DefaultOptions() Options {
	return Options{Cutoff: HBLNK, Covalent: COVLNK}
}

func (o Options) check() error {
	if o.Cutoff <= 0 {
		return fmt.Errorf("contact cutoff must be positive, got %g", o.Cutoff)
	}
	if o.Covalent < 0 || o.Covalent > o.Cutoff {
		return fmt.Errorf("covalent cutoff must be between 0 and the contact cutoff (%g), got %g", o.Cutoff, o.Covalent)
	}
	return nil
}

// Contact is a pair of polar atoms from different, non-adjacent residues.
// At1 has always the lower serial number.
type Contact struct {
	At1, At2 *chem.Atom
	I, J     int //indexes of At1 and At2 in the molecule
	Dist     float64
}

// Class returns the main/side chain class of the contact
func (C *Contact) Class() Class {
	return ClassOf(C.At1.Name, C.At2.Name)
}

// String returns the contact in the "RES numATOM  RES numATOM  dist" form.
func (C *Contact) String() string {
	return fmt.Sprintf("%-14s %-14s %6.3f", AtomLabel(C.At1), AtomLabel(C.At2), C.Dist)
}

// AtomLabel returns the residue name, residue number and atom name of the atom
// as in "SER 12OG".
func AtomLabel(at *chem.Atom) string {
	return fmt.Sprintf("%s %d%s", at.MolName, at.MolID, at.Name)
}

// Find returns the polar contacts in the given frame of mol.
// The contacts are sorted by the serial number of the first atom, then of the
// second one.
func Find(mol *chem.Molecule, frame int, o Options) ([]*Contact, error) {
	if err := o.check(); err != nil {
		return nil, fmt.Errorf("Find: %w", err)
	}
	if frame < 0 || frame >= mol.LenFrames() {
		return nil, fmt.Errorf("Find: frame %d out of range (%d frames)", frame, mol.LenFrames())
	}
	sel := SelectPolar(mol, o.BackOnly)
	ret := make([]*Contact, 0, len(sel))
	for _, n := range Neighbors(mol.Coords[frame], sel, o.Cutoff) {
		a1, a2 := mol.Atom(n.I), mol.Atom(n.J)
		r1, r2 := a1.Residue(), a2.Residue()
		if r1 == r2 {
			continue
		}
		//Discard covalents and neighbours
		if n.Dist < o.Covalent {
			continue
		}
		if r1.SeqAdjacent(r2) && (!o.ChainAdjacency || r1.Adjacent(r2)) {
			continue
		}
		if o.NoWaters && (IsWater(r1.Name) || IsWater(r2.Name)) {
			continue
		}
		c := &Contact{At1: a1, At2: a2, I: n.I, J: n.J, Dist: n.Dist}
		if a2.ID < a1.ID {
			c.At1, c.At2 = a2, a1
			c.I, c.J = n.J, n.I
		}
		ret = append(ret, c)
	}
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].At1.ID != ret[j].At1.ID {
			return ret[i].At1.ID < ret[j].At1.ID
		}
		return ret[i].At2.ID < ret[j].At2.ID
	})
	return ret, nil
}

//Residue pairs

// ResiduePair is a pair of residues joined by at least one polar contact.
type ResiduePair struct {
	R1, R2   *chem.Residue
	Contacts []*Contact
}

// String returns "RES1 num1 - RES2 num2"
func (P *ResiduePair) String() string {
	return fmt.Sprintf("%s - %s", P.R1, P.R2)
}

// ResiduePairs returns the residue pairs joined by the contacts. A pair is kept with
// the orientation in which it is first found, and pairs are then
// sorted by the sequence number of the first residue. The order of pairs with the
// same first residue number is kept.
func ResiduePairs(contacts []*Contact) []*ResiduePair {
	type key [2]*chem.Residue
	seen := make(map[key]*ResiduePair)
	ret := make([]*ResiduePair, 0, len(contacts))
	for _, c := range contacts {
		r1, r2 := c.At1.Residue(), c.At2.Residue()
		p, ok := seen[key{r1, r2}]
		if !ok {
			p, ok = seen[key{r2, r1}]
		}
		if !ok {
			p = &ResiduePair{R1: r1, R2: r2}
			seen[key{r1, r2}] = p
			ret = append(ret, p)
		}
		p.Contacts = append(p.Contacts, c)
	}
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].R1.ID < ret[j].R1.ID })
	return ret
}
