/*
 * classify.go, part of Polarcontacts.
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
	chem "github.com/JMiguelRamirez/Polarcontacts"
)

// Class tells whether each atom of a contact belongs to the main chain or to a side chain.
type Class int

const (
	MainMain Class = iota
	MainSide
	SideMain
	SideSide
)

// Classes lists all the classes, in report order.
var Classes = []Class{MainMain, MainSide, SideMain, SideSide}

func (c Class) String() string {
	switch c {
	case MainMain:
		return "main-main"
	case MainSide:
		return "main-side"
	case SideMain:
		return "side-main"
	case SideSide:
		return "side-side"
	}
	return "unknown"
}

// ClassOf returns the class of a contact between atoms with names name1 and name2.
func ClassOf(name1, name2 string) Class {
	m1, m2 := IsBackbonePolar(name1), IsBackbonePolar(name2)
	switch {
	case m1 && m2:
		return MainMain
	case m1:
		return MainSide
	case m2:
		return SideMain
	}
	return SideSide
}

// Classify splits the contacts by class. The order of the contacts is kept
// within each class.
func Classify(contacts []*Contact) map[Class][]*Contact {
	ret := make(map[Class][]*Contact, len(Classes))
	for _, c := range contacts {
		cl := c.Class()
		ret[cl] = append(ret[cl], c)
	}
	return ret
}

// Membership returns the residues that are in contact with a main chain atom
// (main) and those in contact with a side chain atom (side). Each residue is
// placed according to the atom of its partner in the contact, so in a main-side
// contact the first residue goes to side and the second to main. Residues appear
// once per list, in the order in which they are first found.
func Membership(contacts []*Contact) (main, side []*chem.Residue) {
	inmain := make(map[*chem.Residue]bool)
	inside := make(map[*chem.Residue]bool)
	add := func(r *chem.Residue, partner *chem.Atom) {
		if IsBackbonePolar(partner.Name) {
			if !inmain[r] {
				inmain[r] = true
				main = append(main, r)
			}
			return
		}
		if !inside[r] {
			inside[r] = true
			side = append(side, r)
		}
	}
	for _, c := range contacts {
		add(c.At1.Residue(), c.At2)
		add(c.At2.Residue(), c.At1)
	}
	return main, side
}
