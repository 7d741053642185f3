/*
 * surface.go, part of Polarcontacts.
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
	"os"

	"github.com/pelletier/go-toml"

	chem "github.com/JMiguelRamirez/Polarcontacts"
	"github.com/JMiguelRamirez/Polarcontacts/contacts"
	"github.com/JMiguelRamirez/Polarcontacts/top"
)

// SurfaceFactor is the default prefactor of the surface-restricted electrostatics.
const SurfaceFactor = 80.0

// SurfaceResidue identifies a solvent-exposed residue by name and sequence number.
type SurfaceResidue struct {
	Name string `toml:"name"`
	ID   int    `toml:"id"`
}

func (s SurfaceResidue) String() string {
	return fmt.Sprintf("%s %d", s.Name, s.ID)
}

// surfaceFile is the layout of a surface residue TOML file:
//
//	[[residue]]
//	name = "ILE"
//	id = 3
type surfaceFile struct {
	Residues []SurfaceResidue `toml:"residue"`
}

// DefaultSurface returns the built-in list of surface residues.
func DefaultSurface() []SurfaceResidue {
	return []SurfaceResidue{
		{"ILE", 3}, {"VAL", 5}, {"ILE", 23}, {"VAL", 26}, {"ILE", 30}, {"GLN", 41},
		{"LEU", 43}, {"LEU", 56}, {"ILE", 61}, {"LEU", 67}, {"LEU", 69},
	}
}

// SurfaceFileRead reads a list of surface residues from a TOML file.
func SurfaceFileRead(path string) ([]SurfaceResidue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("SurfaceFileRead: %w", err)
	}
	defer f.Close()
	var s surfaceFile
	dec := toml.NewDecoder(f)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("SurfaceFileRead: file %s: %w", path, err)
	}
	for i, r := range s.Residues {
		if r.Name == "" {
			return nil, fmt.Errorf("SurfaceFileRead: file %s: residue %d has no name", path, i+1)
		}
	}
	return s.Residues, nil
}

// InSurface returns true if r is in the surface list.
func InSurface(surface []SurfaceResidue, r *chem.Residue) bool {
	for _, s := range surface {
		if s.Name == r.Name && s.ID == r.ID {
			return true
		}
	}
	return false
}

// Surface returns the electrostatic interaction between the residues of each pair
// where both residues are in the surface list, computed as factor*q1*q2/(diel*d)
// over all the atom pairs. Only pairs with a non-zero energy are returned, in the
// order of pairs. The VdW field of the interactions is left at zero.
func (C *Calculator) Surface(pairs []*contacts.ResiduePair, surface []SurfaceResidue, factor float64) []*Interaction {
	ret := make([]*Interaction, 0)
	for _, p := range pairs {
		if !InSurface(surface, p.R1) || !InSurface(surface, p.R2) {
			continue
		}
		in := &Interaction{R1: p.R1, R2: p.R2}
		C.each(p.R1, p.R2, func(p1, p2 top.Params, d float64) {
			in.Elec += factor * p1.Charge * p2.Charge / C.Dielectric / d
		})
		if in.Elec != 0 {
			ret = append(ret, in)
		}
	}
	return ret
}
