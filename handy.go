/*
 * handy.go, part of Polarcontacts.
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

package chem

// SelectAtoms returns the indexes of the atoms in mol for which f returns true.
func SelectAtoms(mol Atomer, f func(*Atom) bool) []int {
	atlist := make([]int, 0, mol.Len()/4+1)
	for i := 0; i < mol.Len(); i++ {
		if f(mol.Atom(i)) {
			atlist = append(atlist, i)
		}
	}
	return atlist
}

//Some internal convenience functions.

//isInString returns true if test is in container.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
