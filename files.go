/*
 * files.go, part of Polarcontacts.
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
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	v3 "github.com/JMiguelRamirez/Polarcontacts/v3"
)

//PDBRead family

//multiCloser reads from a decompressor and closes it, and the
//file under it, when closed.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// compressionExt returns the compression extension of the file name (".gz" or ".zst")
// or the empty string if the file is not compressed.
func compressionExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".gz", ".zst":
		return ext
	}
	return ""
}

// openCompressed opens the file name. If the name ends in .gz or .zst, the
// returned ReadCloser decompresses the file transparently.
func openCompressed(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, CError{msg: err.Error(), filename: name, deco: []string{"openCompressed"}, critical: true, err: err}
	}
	switch compressionExt(name) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, CError{msg: "Can't open gzip stream: " + err.Error(), filename: name, deco: []string{"openCompressed"}, critical: true, err: err}
		}
		return &multiCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
	case ".zst":
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, CError{msg: "Can't open zstd stream: " + err.Error(), filename: name, deco: []string{"openCompressed"}, critical: true, err: err}
		}
		rc := d.IOReadCloser()
		return &multiCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
	}
	return f, nil
}

// FileRead reads a structure file, choosing the parser from the extension:
// .cif and .mmcif are read as PDBx/mmCIF, anything else as PDB. A trailing
// .gz or .zst extension makes the file be decompressed first.
func FileRead(name string) (*Molecule, error) {
	base := name
	if ext := compressionExt(name); ext != "" {
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".cif", ".mmcif":
		mol, err := PDBxFileRead(name)
		return mol, errDecorate(err, "FileRead")
	default:
		mol, err := PDBFileRead(name)
		return mol, errDecorate(err, "FileRead")
	}
}

// PDBFileRead reads a PDB file, possibly compressed, and returns a Molecule.
// Each model in the file becomes one coordinate frame.
func PDBFileRead(pdbname string) (*Molecule, error) {
	pdbfile, err := openCompressed(pdbname)
	if err != nil {
		return nil, errDecorate(err, "PDBFileRead")
	}
	defer pdbfile.Close()
	mol, err := PDBRead(pdbfile)
	if err != nil {
		if e, ok := err.(CError); ok {
			e.filename = pdbname
			return nil, errDecorate(e, "PDBFileRead")
		}
		return nil, err
	}
	return mol, nil
}

// PDBRead reads a PDB from an io.Reader. Returns a Molecule. If there is one frame in the PDB
// the coordinates slice will be of lenght 1. Only one alternate location of each atom
// is kept: the one with the highest occupancy, or the first one among equals.
func PDBRead(pdb io.Reader) (*Molecule, error) {
	bufiopdb := bufio.NewReader(pdb)
	mol, err := pdbBufIORead(bufiopdb)
	return mol, errDecorate(err, "PDBRead")
}

// altLocFilter keeps track of the atoms already read in one model, so
// only one alternate location of each atom is kept: the one with the highest
// occupancy, or the first one read if several share the highest occupancy.
type altLocFilter struct {
	pos map[string]int //position of each atom in the model
	occ []float64      //occupancy of the location kept for each position
}

func newAltLocFilter() *altLocFilter {
	return &altLocFilter{pos: make(map[string]int)}
}

// add returns the position of at in the current model, and whether it is the
// first location read for the atom. If keep is false, the atom must be discarded,
// otherwise it replaces the one at pos, unless it is the first.
func (a *altLocFilter) add(at *Atom) (pos int, first, keep bool) {
	k := resKey(at) + "|" + at.Name
	pos, seen := a.pos[k]
	if !seen {
		a.pos[k] = len(a.occ)
		a.occ = append(a.occ, at.Occupancy)
		return len(a.occ) - 1, true, true
	}
	if at.Occupancy > a.occ[pos] {
		a.occ[pos] = at.Occupancy
		return pos, false, true
	}
	return pos, false, false
}

// pdbAtomLine parses a valid ATOM or HETATM line of a PDB file, returns an Atom
// object with the info except for the coordinates and b-factors, which  are returned
// separately as an array of 3 float64 and a float64, respectively
func pdbAtomLine(line string) (*Atom, [3]float64, float64, error) {
	var coords [3]float64
	var bfactor float64
	var err error
	if len(line) < 54 {
		return nil, coords, 0, fmt.Errorf("line too short (%d characters) for an atom record", len(line))
	}
	atom := new(Atom)
	atom.Het = strings.HasPrefix(line, "HETATM")
	atom.ID, err = strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return nil, coords, 0, fmt.Errorf("can't parse serial number: %w", err)
	}
	atom.Name = strings.TrimSpace(line[12:16])
	atom.Char16 = line[16]
	atom.MolName = strings.TrimSpace(line[17:20])
	atom.MolName1 = three2OneLetter[atom.MolName]
	atom.Chain = strings.TrimSpace(line[21:22])
	atom.MolID, err = strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return nil, coords, 0, fmt.Errorf("can't parse residue number: %w", err)
	}
	atom.ICode = line[26]
	for i, f := range [][2]int{{30, 38}, {38, 46}, {46, 54}} {
		coords[i], err = strconv.ParseFloat(strings.TrimSpace(line[f[0]:f[1]]), 64)
		if err != nil {
			return nil, coords, 0, fmt.Errorf("can't parse coordinate %d: %w", i, err)
		}
	}
	//From here on the fields are optional. If something is missing we
	//just ommit it.
	atom.Occupancy = 1.0
	if len(line) >= 60 {
		if o, err := strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64); err == nil {
			atom.Occupancy = o
		}
	}
	if len(line) >= 66 {
		if b, err := strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64); err == nil {
			bfactor = b
		}
	}
	if len(line) >= 78 {
		atom.Symbol = strings.TrimSpace(line[76:78])
		if len(atom.Symbol) == 2 {
			atom.Symbol = atom.Symbol[:1] + strings.ToLower(atom.Symbol[1:])
		}
	}
	if len(line) >= 80 {
		c := strings.TrimSpace(line[78:80])
		if len(c) == 2 {
			if q, err := strconv.Atoi(c[:1]); err == nil {
				atom.Charge = float64(q)
				if c[1] == '-' {
					atom.Charge = -1.0 * atom.Charge
				}
			}
		}
	}
	//This part tries to guess the symbol from the atom name, if it has not been read
	if atom.Symbol == "" {
		atom.Symbol, _ = symbolFromName(atom.Name)
	}
	atom.Mass = MassOf(atom.Symbol)
	atom.Vdw = VdwRadiusOf(atom.Symbol)
	return atom, coords, bfactor, nil
}

func pdbBufIORead(pdb *bufio.Reader) (*Molecule, error) {
	molecule := make([]*Atom, 0)
	coords := make([][]float64, 1)
	coords[0] = make([]float64, 0)
	bfactors := make([][]float64, 1)
	bfactors[0] = make([]float64, 0)
	models := 0
	filter := newAltLocFilter()
	contlines := 0 //count the lines read to better report errors
	for {
		line, err := pdb.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, CError{msg: fmt.Sprintf("Error reading line %d: %s", contlines+1, err), deco: []string{"pdbBufIORead"}, critical: true, err: err}
		}
		contlines++
		line = strings.TrimRight(line, "\r\n")
		if strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM") {
			atom, c, bfac, perr := pdbAtomLine(line)
			if perr != nil {
				return nil, CError{msg: fmt.Sprintf("line %d: %s", contlines, perr), deco: []string{"pdbBufIORead"}, critical: true, err: perr}
			}
			pos, isnew, keep := filter.add(atom)
			last := len(coords) - 1
			switch {
			case !keep:
			case isnew:
				//atom data other than coords is the same in all models so just read for the first.
				if models <= 1 {
					molecule = append(molecule, atom)
				}
				//coords are appended for all the models
				coords[last] = append(coords[last], c[0], c[1], c[2])
				bfactors[last] = append(bfactors[last], bfac)
			default:
				//a better alternate location
				if models <= 1 {
					molecule[pos] = atom
				}
				copy(coords[last][3*pos:3*pos+3], c[:])
				bfactors[last][pos] = bfac
			}
		} else if strings.HasPrefix(line, "MODEL") {
			models++
			filter = newAltLocFilter()
			if models > 1 {
				coords = append(coords, make([]float64, 0, len(coords[0])))
				bfactors = append(bfactors, make([]float64, 0, len(bfactors[0])))
			}
		}
		if err == io.EOF {
			break
		}
	}
	if len(molecule) == 0 {
		return nil, CError{msg: "No atoms found", deco: []string{"pdbBufIORead"}, critical: true}
	}
	//A trailing MODEL record without atoms should not give an empty frame.
	for len(coords) > 1 && len(coords[len(coords)-1]) == 0 {
		coords = coords[:len(coords)-1]
		bfactors = bfactors[:len(bfactors)-1]
	}
	top := NewTopology(0, 1, molecule)
	frames := len(coords)
	mcoords := make([]*v3.Matrix, frames)
	for i := 0; i < frames; i++ {
		if len(coords[i]) != 3*len(molecule) {
			log.Printf("pdbBufIORead: model %d has %d atoms instead of %d, only the models before it will be kept", i+1, len(coords[i])/3, len(molecule))
			mcoords = mcoords[:i]
			bfactors = bfactors[:i]
			break
		}
		var err error
		mcoords[i], err = v3.NewMatrix(coords[i])
		if err != nil {
			return nil, CError{msg: fmt.Sprintf("Couldn't transform coordinates from frame %d: %s", i, err), deco: []string{"pdbBufIORead"}, critical: true, err: err}
		}
	}
	returned, err := NewMolecule(mcoords, top, bfactors)
	if err != nil {
		return nil, errDecorate(err, "pdbBufIORead")
	}
	return returned, nil
}
