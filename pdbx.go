/*
 * pdbx.go, part of Polarcontacts.
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
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	v3 "github.com/JMiguelRamirez/Polarcontacts/v3"
)

var tl func(string) string = strings.ToLower

// PDBxRead reads a PDBx/mmCIF file from an io.Reader. Returns a Molecule. Each model
// in the file becomes one coordinate frame. Only the atom_site category is read.
func PDBxRead(pdbx io.Reader) (*Molecule, error) {
	bufiopdb := bufio.NewReader(pdbx)
	mol, err := pdbxBufIORead(bufiopdb)
	return mol, errDecorate(err, "PDBxRead")
}

// PDBxFileRead reads a PDBx/mmCIF file, possibly compressed, and returns a Molecule.
func PDBxFileRead(pdbxname string) (*Molecule, error) {
	pdbxfile, err := openCompressed(pdbxname)
	if err != nil {
		return nil, errDecorate(err, "PDBxFileRead")
	}
	defer pdbxfile.Close()
	mol, err := pdbxBufIORead(bufio.NewReader(pdbxfile))
	if err != nil {
		if e, ok := err.(CError); ok {
			e.filename = pdbxname
			return nil, errDecorate(e, "PDBxFileRead")
		}
		return nil, errDecorate(err, "PDBxFileRead")
	}
	return mol, nil
}

type pdbxmap map[string]int

func newPdbxmap() pdbxmap {
	m := make(pdbxmap, len(atomSiteItems))
	for _, v := range atomSiteItems {
		m[v] = -1
	}
	return m
}

// adds i to the map[string] entry, if it exists. If not,
// does nothing. Returns the map.
func (m pdbxmap) add(s string, i int) pdbxmap {
	s = strings.TrimSpace(s)
	if _, ok := m[s]; ok {
		m[s] = i
	}
	return m
}

// returns the integer corresponding to the given string in the map
// or -1 if the string is not a key in the map.
func (m pdbxmap) get(s string) int {
	if i, ok := m[s]; ok {
		return i
	}
	return -1
}

// value returns the field for the item s, or "" if the item is not
// present or its value is one of the CIF null markers ('.' or '?').
func (m pdbxmap) value(s string, data []string) string {
	k := m.get(s)
	if k < 0 || k >= len(data) {
		return ""
	}
	if data[k] == "." || data[k] == "?" {
		return ""
	}
	return data[k]
}

// cifFields splits a CIF data line in fields. Values may be quoted with
// single or double quotes, in which case they can contain spaces.
func cifFields(line string) []string {
	ret := make([]string, 0, 21)
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t' || line[i] == '\n' || line[i] == '\r') {
			i++
		}
		if i >= len(line) {
			break
		}
		if q := line[i]; q == '\'' || q == '"' {
			//a closing quote only counts if followed by whitespace or the end of the line.
			j := i + 1
			for j < len(line) {
				if line[j] == q && (j+1 == len(line) || strings.ContainsRune(" \t\r\n", rune(line[j+1]))) {
					break
				}
				j++
			}
			ret = append(ret, line[i+1:min(j, len(line))])
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && !strings.ContainsRune(" \t\r\n", rune(line[j])) {
			j++
		}
		ret = append(ret, line[i:j])
		i = j
	}
	return ret
}

func pdbxFillAtom(at *Atom, data []string, m pdbxmap) error {
	var err error
	//We start with the simpler string fields
	at.Symbol = m.value("_atom_site.type_symbol", data)
	if len(at.Symbol) == 2 {
		at.Symbol = at.Symbol[:1] + tl(at.Symbol[1:])
	}
	at.Name = m.value("_atom_site.auth_atom_id", data)
	if at.Name == "" {
		at.Name = m.value("_atom_site.label_atom_id", data)
	}
	if at.Symbol == "" {
		at.Symbol, _ = symbolFromName(at.Name)
	}
	at.MolName = m.value("_atom_site.auth_comp_id", data)
	if at.MolName == "" {
		at.MolName = m.value("_atom_site.label_comp_id", data)
	}
	at.MolName1 = three2OneLetter[at.MolName]
	at.Char16 = ' '
	if s := m.value("_atom_site.label_alt_id", data); s != "" {
		at.Char16 = s[0]
	}
	at.ICode = ' '
	if s := m.value("_atom_site.pdbx_pdb_ins_code", data); s != "" {
		at.ICode = s[0]
	}
	at.Chain = m.value("_atom_site.auth_asym_id", data)
	if at.Chain == "" {
		at.Chain = m.value("_atom_site.label_asym_id", data)
	}
	//Now the integer fields
	if s := m.value("_atom_site.id", data); s != "" {
		at.ID, err = strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("pdbxFillAtom: Couldn't parse ID from %s: %w", s, err)
		}
	}
	s := m.value("_atom_site.auth_seq_id", data)
	if s == "" {
		s = m.value("_atom_site.label_seq_id", data)
	}
	if s != "" {
		at.MolID, err = strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("pdbxFillAtom: Couldn't parse MolID from %s: %w", s, err)
		}
	}
	//Now the floating point fields, except for the coordinates and b-factors
	at.Occupancy = 1.0
	if s := m.value("_atom_site.occupancy", data); s != "" {
		at.Occupancy, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("pdbxFillAtom: Couldn't parse Occupancy from %s: %w", s, err)
		}
	}
	//Charge, but we won't do anything if we somehow can't read it.
	if q, err := strconv.ParseFloat(m.value("_atom_site.pdbx_formal_charge", data), 64); err == nil {
		at.Charge = q
	}
	//And, finally, the boolean field
	at.Het = m.value("_atom_site.group_pdb", data) == "HETATM"
	at.Mass = MassOf(at.Symbol)
	at.Vdw = VdwRadiusOf(at.Symbol)
	return nil
}

func pdbxFillBfac(data []string, bf []float64, m pdbxmap) ([]float64, error) {
	v := "_atom_site.b_iso_or_equiv"
	s := m.value(v, data)
	if s == "" {
		return bf, fmt.Errorf("pdbxFillBfac: Field %s not present in data %v", v, data)
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return bf, fmt.Errorf("pdbxFillBfac: Couldn't parse bfactor from %s: %w", s, err)
	}
	return append(bf, fl), nil
}

func pdbxFillCoords(data []string, coord []float64, m pdbxmap) ([]float64, error) {
	c := []string{"_atom_site.cartn_x", "_atom_site.cartn_y", "_atom_site.cartn_z"}
	for j, v := range c {
		s := m.value(v, data)
		if s == "" {
			return coord, fmt.Errorf("pdbxFillCoord: Field %s not present in data %v", v, data)
		}
		fl, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return coord, fmt.Errorf("pdbxFillCoord: Couldn't parse %d cartesian coordinate from %s: %w", j, s, err)
		}
		coord = append(coord, fl)
	}
	return coord, nil
}

func pdbxBufIORead(pdb *bufio.Reader) (*Molecule, error) {
	m := newPdbxmap()
	molecule := make([]*Atom, 0)
	coords := make([][]float64, 1)
	coords[0] = make([]float64, 0, 3)
	bfactors := make([][]float64, 1)
	bfactors[0] = make([]float64, 0)
	filter := newAltLocFilter()
	currentmodel := -1
	nmodels := 0
	var reading, done bool
	var field int
	havebfactors := true
	hp := strings.HasPrefix
	contlines := 0
	for !done {
		line, err := pdb.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, CError{msg: fmt.Sprintf("Error reading line %d: %s", contlines+1, err), deco: []string{"pdbxBufIORead"}, critical: true, err: err}
		}
		done = err == io.EOF
		contlines++
		trimmed := strings.TrimSpace(line)
		if hp(trimmed, "#") || hp(line, ";") || trimmed == "" {
			continue
		}
		if hp(tl(trimmed), "loop_") {
			//a new loop ends the atom_site one, if we were reading it.
			if reading && nmodels > 0 {
				break
			}
			reading = false
			field = 0
			continue
		}
		if hp(trimmed, "_") {
			if !hp(tl(trimmed), "_atom_site.") {
				if reading && nmodels > 0 {
					break
				}
				reading = false
				continue
			}
			reading = true
			m.add(tl(strings.Fields(trimmed)[0]), field)
			field++
			continue
		}
		if !reading {
			continue
		}
		//Here we should be reading the content lines.
		fields := cifFields(trimmed)
		model := 1
		if s := m.value("_atom_site.pdbx_pdb_model_num", fields); s != "" {
			model, err = strconv.Atoi(s)
			if err != nil {
				return nil, CError{msg: fmt.Sprintf("line %d: Couldn't parse model number from %s", contlines, s), deco: []string{"pdbxBufIORead"}, critical: true, err: err}
			}
		}
		if model != currentmodel {
			nmodels++
			if nmodels > 1 {
				coords = append(coords, make([]float64, 0, len(coords[0])))
				bfactors = append(bfactors, make([]float64, 0, len(bfactors[0])))
			}
			currentmodel = model
			filter = newAltLocFilter()
		}
		at := new(Atom)
		if err := pdbxFillAtom(at, fields, m); err != nil {
			return nil, CError{msg: fmt.Sprintf("line %d: %s", contlines, err), deco: []string{"pdbxBufIORead"}, critical: true, err: err}
		}
		pos, isnew, keep := filter.add(at)
		if !keep {
			continue
		}
		//we don't keep the atoms again for the next models.
		if nmodels == 1 {
			if isnew {
				molecule = append(molecule, at)
			} else {
				molecule[pos] = at
			}
		}
		//The following we always try to read.
		c := len(coords) - 1
		xyz, err := pdbxFillCoords(fields, make([]float64, 0, 3), m)
		if err != nil {
			return nil, CError{msg: fmt.Sprintf("line %d: %s", contlines, err), deco: []string{"pdbxBufIORead"}, critical: true, err: err}
		}
		if isnew {
			coords[c] = append(coords[c], xyz...)
		} else {
			copy(coords[c][3*pos:3*pos+3], xyz)
		}
		if havebfactors {
			var bf []float64
			bf, err = pdbxFillBfac(fields, nil, m)
			if err != nil {
				//It can very well be that the file just doesn't contain b-factors.
				log.Printf("pdbxBufIORead: Couldn't read b-factors for model %d: %v", currentmodel, err)
				havebfactors = false
			} else if isnew {
				bfactors[c] = append(bfactors[c], bf[0])
			} else if pos < len(bfactors[c]) {
				bfactors[c][pos] = bf[0]
			}
		}
	}
	if len(molecule) == 0 {
		return nil, CError{msg: "No atom_site records found", deco: []string{"pdbxBufIORead"}, critical: true}
	}
	top := NewTopology(0, 1, molecule)
	frames := len(coords)
	mcoords := make([]*v3.Matrix, frames)
	for i := 0; i < frames; i++ {
		if len(coords[i]) != 3*len(molecule) {
			log.Printf("pdbxBufIORead: model %d has %d atoms instead of %d, only the models before it will be kept", i+1, len(coords[i])/3, len(molecule))
			mcoords = mcoords[:i]
			bfactors = bfactors[:min(i, len(bfactors))]
			break
		}
		var err error
		mcoords[i], err = v3.NewMatrix(coords[i])
		if err != nil {
			return nil, CError{msg: fmt.Sprintf("Couldn't transform coordinates from frame %d: %s", i, err), deco: []string{"pdbxBufIORead"}, critical: true, err: err}
		}
	}
	if !havebfactors {
		bfactors = nil
	}
	returned, err := NewMolecule(mcoords, top, bfactors)
	if err != nil {
		return nil, errDecorate(err, "pdbxBufIORead")
	}
	return returned, nil
}

// The atom_site items the reader understands, lowercased.
var atomSiteItems = []string{
	"_atom_site.group_pdb",
	"_atom_site.id",
	"_atom_site.type_symbol",
	"_atom_site.label_atom_id",
	"_atom_site.label_alt_id",
	"_atom_site.label_comp_id",
	"_atom_site.label_asym_id",
	"_atom_site.label_entity_id",
	"_atom_site.label_seq_id",
	"_atom_site.pdbx_pdb_ins_code",
	"_atom_site.cartn_x",
	"_atom_site.cartn_y",
	"_atom_site.cartn_z",
	"_atom_site.occupancy",
	"_atom_site.b_iso_or_equiv",
	"_atom_site.pdbx_formal_charge",
	"_atom_site.auth_seq_id",
	"_atom_site.auth_comp_id",
	"_atom_site.auth_asym_id",
	"_atom_site.auth_atom_id",
	"_atom_site.pdbx_pdb_model_num",
}
