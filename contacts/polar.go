/*
 * polar.go, part of Polarcontacts.
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

// Default distances, in A.
const (
	HBLNK  = 3.5 //maximum distance for a polar contact
	COVLNK = 2.0 //pairs closer than this are taken as covalently bound
)

// AllPolars are the names of the atoms that can take part in a hydrogen bond.
var AllPolars = []string{
	"N", "ND1", "ND2", "NE", "NE1", "NE2", "NH1", "NH2", "NZ",
	"O", "OD1", "OD2", "OE1", "OE2", "OG", "OG1", "OH",
	"S", "SD", "SG",
}

// BackbonePolars are the polar atoms of the main chain.
var BackbonePolars = []string{"N", "O"}

// WaterNames are the residue names taken as water.
var WaterNames = []string{"WAT", "HOH"}

func isIn(container []string, s string) bool {
	for _, v := range container {
		if v == s {
			return true
		}
	}
	return false
}

// IsPolar returns true if name is the name of a polar atom. If backonly
// is true only backbone polar atoms count.
func IsPolar(name string, backonly bool) bool {
	if backonly {
		return IsBackbonePolar(name)
	}
	return isIn(AllPolars, name)
}

// IsBackbonePolar returns true if name is N or O.
func IsBackbonePolar(name string) bool {
	return isIn(BackbonePolars, name)
}

// IsWater returns true if resname is the name of a water residue.
func IsWater(resname string) bool {
	return isIn(WaterNames, resname)
}

// SelectPolar returns the indexes of the polar atoms in mol.
func SelectPolar(mol chem.Atomer, backonly bool) []int {
	return chem.SelectAtoms(mol, func(a *chem.Atom) bool { return IsPolar(a.Name, backonly) })
}
