/*
 * chem.go, part of Polarcontacts.
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

import (
	"fmt"
	"strings"

	v3 "github.com/JMiguelRamirez/Polarcontacts/v3"
)

/**Note: Many funcitons here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is way-most likely wrong and should
 * crash. Most panics are related to using the funciton on a nil object or trying to access out-of bounds
 * fields**/

// Atom contains the atoms read except for the coordinates, which will be in a matrix
// and the b-factors, which are in a separate slice of float64.
type Atom struct {
	Name      string  //PDB name of the atom
	ID        int     //The serial number of the atom in the PDB
	index     int     //The place of the atom in a set. I.e. the first atom would have index 0, etc.
	Tag       int     //Just added this for something that someone might want to keep that is not a float.
	MolName   string  //PDB name of the residue or molecule (3-letter code for residues)
	MolName1  byte    //the one letter name for residues and nucleotids
	Char16    byte    //Whatever is in the column 16 (alternate location) in the PDB
	MolID     int     //PDB index of the corresponding residue or molecule
	ICode     byte    //insertion code
	Chain     string  //One-character PDB chain name, but stored as a string for compatibility
	Mass      float64 //hopefully all these float64 are not too much memory
	Occupancy float64
	Vdw       float64
	Charge    float64
	Symbol    string
	Het       bool // is the atom an hetatm in the pdb file?
	res       *Residue
}

//Atom methods

// Index returns the index of the atom
func (A *Atom) Index() int {
	return A.index
}

// Residue returns the residue the atom belongs to, or nil if the
// atom is not part of a topology yet.
func (A *Atom) Residue() *Residue {
	return A.res
}

// String returns the residue name, residue number and atom name, i.e. "SER 12 OG".
func (A *Atom) String() string {
	return fmt.Sprintf("%s %d %s", A.MolName, A.MolID, A.Name)
}

/*****Residue type***/

// Residue is a group of atoms sharing chain, residue number and insertion code.
// The residue owns its atoms, while each atom keeps a reference to its residue.
type Residue struct {
	Name  string //3-letter code
	Name1 byte
	ID    int //residue sequence number
	ICode byte
	Chain string
	Het   bool
	Atoms []*Atom
	index int
}

// Index returns the position of the residue in its topology.
func (R *Residue) Index() int {
	return R.index
}

// String returns the residue name and number, i.e. "ASP 12"
func (R *Residue) String() string {
	return fmt.Sprintf("%s %d", R.Name, R.ID)
}

// Atom returns the atom in the residue with the given name, or nil if there is none.
func (R *Residue) Atom(name string) *Atom {
	for _, v := range R.Atoms {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Len returns the number of atoms in the residue
func (R *Residue) Len() int {
	return len(R.Atoms)
}

// Adjacent returns true if R and O belong to the same chain and their
// sequence numbers differ by exactly one.
func (R *Residue) Adjacent(O *Residue) bool {
	return R.Chain == O.Chain && R.SeqAdjacent(O)
}

// SeqAdjacent returns true if the sequence numbers of R and O differ by
// exactly one, whatever their chains.
func (R *Residue) SeqAdjacent(O *Residue) bool {
	d := R.ID - O.ID
	return d == 1 || d == -1
}

/*****Topology type***/

// Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates and b-factors)
type Topology struct {
	Atoms    []*Atom
	residues []*Residue
	charge   int
	multi    int
}

// NewTopology returns topology with ats atoms,
// charge charge and multi multiplicity.
// It doesnt check for consitency across slices, correct charge
// or unpaired electrons. The atoms are grouped in residues and each atom
// gets a reference to its residue.
func NewTopology(charge, multi int, ats ...[]*Atom) *Topology {
	top := new(Topology)
	if len(ats) == 0 || ats[0] == nil {
		top.Atoms = make([]*Atom, 0, 0)
	} else {
		top.Atoms = ats[0]
	}
	top.charge = charge
	top.multi = multi
	top.FillIndexes()
	top.buildResidues()
	return top
}

// FillIndexes sets the index of each atom to its position in the topology.
func (T *Topology) FillIndexes() {
	for key, val := range T.Atoms {
		val.index = key
	}
}

func resKey(at *Atom) string {
	return fmt.Sprintf("%s|%d|%c", at.Chain, at.MolID, at.ICode)
}

// buildResidues groups the atoms in residues, in the order in which
// each residue appears for the first time.
func (T *Topology) buildResidues() {
	T.residues = make([]*Residue, 0, len(T.Atoms)/8+1)
	seen := make(map[string]*Residue)
	for _, at := range T.Atoms {
		k := resKey(at)
		r, ok := seen[k]
		if !ok {
			r = &Residue{
				Name:  at.MolName,
				Name1: at.MolName1,
				ID:    at.MolID,
				ICode: at.ICode,
				Chain: at.Chain,
				Het:   at.Het,
				index: len(T.residues),
			}
			seen[k] = r
			T.residues = append(T.residues, r)
		}
		r.Atoms = append(r.Atoms, at)
		at.res = r
	}
}

/*Topology methods*/

// Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

// Multi returns the multiplicity of the topology
func (T *Topology) Multi() int {
	return T.multi
}

// Atom returns the Atom corresponding to the index i
// of the Atom slice in the Topology. Panics if
// out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

// Residue returns the ith residue of the topology. Panics if out of range.
func (T *Topology) Residue(i int) *Residue {
	if i >= len(T.residues) {
		panic("Topology: Requested Residue out of bounds")
	}
	return T.residues[i]
}

// NRes returns the number of residues in the topology.
func (T *Topology) NRes() int {
	return len(T.residues)
}

// Residues returns the residues of the topology, in order of appearance.
// The slice is shared with the topology.
func (T *Topology) Residues() []*Residue {
	return T.residues
}

// Chains returns the names of the chains in the topology, in order of appearance.
func (T *Topology) Chains() []string {
	ret := make([]string, 0, 2)
	for _, r := range T.residues {
		if !isInString(ret, r.Chain) {
			ret = append(ret, r.Chain)
		}
	}
	return ret
}

/**Type Molecule**/

// Molecule contains all the info for a molecule in many states. The info that is expected to change between states,
// Coordinates and b-factors are stored separately from other atomic info.
// Each coordinate frame corresponds to one model of the structure.
type Molecule struct {
	*Topology
	Coords   []*v3.Matrix
	Bfactors [][]float64
}

// NewMolecule makes a molecule with ats atoms, coords coordinates, bfactors b-factors
// and returns it. It returns error if the number of atoms and coordinates don't match.
// bfactors can be nil.
func NewMolecule(coords []*v3.Matrix, ats Atomer, bfactors [][]float64) (*Molecule, error) {
	if ats == nil {
		return nil, CError{msg: "Supplied a nil Topology", deco: []string{"NewMolecule"}, critical: true}
	}
	mol := new(Molecule)
	switch t := ats.(type) {
	case *Topology:
		mol.Topology = t
	case *Molecule:
		mol.Topology = t.Topology
	default:
		atoms := make([]*Atom, ats.Len())
		for i := 0; i < ats.Len(); i++ {
			atoms[i] = ats.Atom(i)
		}
		mol.Topology = NewTopology(0, 1, atoms)
	}
	mol.Coords = coords
	mol.Bfactors = bfactors
	if err := mol.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return mol, nil
}

// Corrupted checks whether the molecule is corrupted, i.e. the
// coordinates don't match the number of atoms.
func (M *Molecule) Corrupted() error {
	if len(M.Coords) == 0 {
		return CError{msg: "Molecule has no coordinates", deco: []string{"Corrupted"}, critical: true}
	}
	for i := range M.Coords {
		if M.Coords[i] == nil || M.Len() != M.Coords[i].NVecs() {
			return CError{msg: fmt.Sprintf("Inconsistent coordinates/atoms in frame %d", i), deco: []string{"Corrupted"}, critical: true}
		}
	}
	//Since bfactors are not as important as coordinates, we just drop them if they are inconsistent.
	for i := range M.Bfactors {
		if len(M.Bfactors[i]) != M.Len() {
			M.Bfactors = nil
			break
		}
	}
	return nil
}

// LenFrames returns the number of frames (models) in the molecule
func (M *Molecule) LenFrames() int {
	return len(M.Coords)
}

// String returns a short summary of the molecule
func (M *Molecule) String() string {
	return fmt.Sprintf("Molecule: %d atoms, %d residues, chains %s, %d model(s)", M.Len(), M.NRes(), strings.Join(M.Chains(), ","), M.LenFrames())
}
