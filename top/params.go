/*
 * params.go, part of Polarcontacts.
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

package top

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
)

var fi func(string) []string = strings.Fields

// Utility functions

func qerr(err error) {
	if err != nil {
		panic(err.Error())
	}
}

// StringReader is anything that can be read line by line, like a *bufio.Reader.
type StringReader interface {
	ReadString(byte) (string, error)
}

// Returns a string without comments (sequences starting with '#'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, "#")[0]
	return strings.Trim(f, "\r\n\t ")
}

// readLines calls f with each non-empty, comment-free line of r. Errors
// returned by f are reported with the line number.
func readLines(r StringReader, f func(string) error) error {
	var err error
	var s string
	nline := 0
	for {
		s, err = r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("error reading line %d: %w", nline+1, err)
		}
		nline++
		if c := cleanString(s); c != "" {
			if ferr := f(c); ferr != nil {
				return fmt.Errorf("line %d: %w", nline, ferr)
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

//Atom types

// AtomType contains the Lennard-Jones parameters of one atom type.
type AtomType struct {
	Name string
	Eps  float64 //well depth, kcal/mol
	Sig  float64 //A
	Mass float64
	Fsrf float64 //solvation factor, kept for completeness
}

// AtomTypeFromString reads an atom type from a "type eps sig [mass [fsrf]]" line
func AtomTypeFromString(s string) (ret *AtomType, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Couldn't read atom type from string. Error: %s String:%s", r, s)
		}
	}()
	s = cleanString(s)
	f := fi(s)
	if len(f) < 3 {
		return nil, fmt.Errorf("Couldn't read atom type: expected at least 3 fields in %q", s)
	}
	ret = new(AtomType)
	ret.Name = f[0]
	ret.Eps, err = strconv.ParseFloat(f[1], 64)
	qerr(err)
	ret.Sig, err = strconv.ParseFloat(f[2], 64)
	qerr(err)
	if len(f) > 3 {
		ret.Mass, err = strconv.ParseFloat(f[3], 64)
		qerr(err)
	}
	if len(f) > 4 {
		ret.Fsrf, err = strconv.ParseFloat(f[4], 64)
		qerr(err)
	}
	if ret.Eps < 0 || ret.Sig < 0 {
		return nil, fmt.Errorf("Negative eps or sig for atom type %s", ret.Name)
	}
	return ret, nil
}

// VdWParams is the set of atom types read from a VdW parameter file.
type VdWParams struct {
	types map[string]*AtomType
}

// NewVdWParams returns an empty set of atom types.
func NewVdWParams() *VdWParams {
	return &VdWParams{types: make(map[string]*AtomType)}
}

// Add adds the atom type to the set. A type with the same name is replaced.
func (V *VdWParams) Add(a *AtomType) {
	if _, ok := V.types[a.Name]; ok {
		log.Printf("top: atom type %s defined more than once, the last definition will be used", a.Name)
	}
	V.types[a.Name] = a
}

// Type returns the atom type with the given name, and false if there is none.
func (V *VdWParams) Type(name string) (*AtomType, bool) {
	a, ok := V.types[name]
	return a, ok
}

// NTypes returns the number of atom types loaded.
func (V *VdWParams) NTypes() int {
	return len(V.types)
}

// ReadVdW reads a VdW parameter file from r.
func ReadVdW(r StringReader) (*VdWParams, error) {
	V := NewVdWParams()
	err := readLines(r, func(s string) error {
		a, err := AtomTypeFromString(s)
		if err != nil {
			return err
		}
		V.Add(a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ReadVdW: %w", err)
	}
	return V, nil
}

// VdWFileRead reads the VdW parameter file name.
func VdWFileRead(name string) (*VdWParams, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("VdWFileRead: %w", err)
	}
	defer f.Close()
	V, err := ReadVdW(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("VdWFileRead: file %s: %w", name, err)
	}
	return V, nil
}

//Residue library

// Key returns the key used to look atoms up in a residue library, "RES:ATOM".
func Key(residue, atom string) string {
	return residue + ":" + atom
}

// AtomParams is the entry of the residue library for one atom.
type AtomParams struct {
	Residue string
	Atom    string
	Type    string
	Charge  float64
}

// Key returns the residue library key of the entry.
func (A *AtomParams) Key() string {
	return Key(A.Residue, A.Atom)
}

// AtomParamsFromString reads a "RES ATOM type charge" line.
func AtomParamsFromString(s string) (ret *AtomParams, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("Couldn't read residue library entry from string. Error: %s String:%s", r, s)
		}
	}()
	s = cleanString(s)
	f := fi(s)
	if len(f) < 4 {
		return nil, fmt.Errorf("Couldn't read residue library entry: expected 4 fields in %q", s)
	}
	ret = &AtomParams{Residue: f[0], Atom: f[1], Type: f[2]}
	ret.Charge, err = strconv.ParseFloat(f[3], 64)
	qerr(err)
	return ret, nil
}

// ResidueLib maps residue and atom names to atom types and charges.
type ResidueLib struct {
	params map[string]*AtomParams
}

// NewResidueLib returns an empty residue library
func NewResidueLib() *ResidueLib {
	return &ResidueLib{params: make(map[string]*AtomParams)}
}

// Add adds the entry to the library, replacing any entry with the same key.
func (L *ResidueLib) Add(a *AtomParams) {
	if _, ok := L.params[a.Key()]; ok {
		log.Printf("top: %s defined more than once in the residue library, the last definition will be used", a.Key())
	}
	L.params[a.Key()] = a
}

// Params returns the entry for the atom atom of residue res, and false if
// there is none.
func (L *ResidueLib) Params(res, atom string) (*AtomParams, bool) {
	a, ok := L.params[Key(res, atom)]
	return a, ok
}

// NAtoms returns the number of entries in the library
func (L *ResidueLib) NAtoms() int {
	return len(L.params)
}

// ReadResidueLib reads a residue library from r.
func ReadResidueLib(r StringReader) (*ResidueLib, error) {
	L := NewResidueLib()
	err := readLines(r, func(s string) error {
		a, err := AtomParamsFromString(s)
		if err != nil {
			return err
		}
		L.Add(a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ReadResidueLib: %w", err)
	}
	return L, nil
}

// ResidueLibFileRead reads the residue library file name.
func ResidueLibFileRead(name string) (*ResidueLib, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("ResidueLibFileRead: %w", err)
	}
	defer f.Close()
	L, err := ReadResidueLib(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("ResidueLibFileRead: file %s: %w", name, err)
	}
	return L, nil
}

//The combined force field

// FF puts together the atom types and the residue library.
type FF struct {
	VdW *VdWParams
	Lib *ResidueLib
}

// NewFF returns a force field with the given atom types and residue library.
func NewFF(vdw *VdWParams, lib *ResidueLib) *FF {
	return &FF{VdW: vdw, Lib: lib}
}

// FFFileRead reads both parameter files and returns the force field.
func FFFileRead(vdwname, libname string) (*FF, error) {
	V, err := VdWFileRead(vdwname)
	if err != nil {
		return nil, err
	}
	L, err := ResidueLibFileRead(libname)
	if err != nil {
		return nil, err
	}
	return NewFF(V, L), nil
}

// Params are the non-bonded parameters of one atom.
type Params struct {
	Type   string
	Charge float64
	Eps    float64
	Sig    float64
}

// MissingError is returned when the parameters for an atom can't be found.
// Key is the residue library key, or the atom type name when the type is
// not in the VdW parameters.
type MissingError struct {
	Key  string
	Type bool //the missing thing is an atom type, not a library entry
}

func (e *MissingError) Error() string {
	if e.Type {
		return fmt.Sprintf("atom type %s not found in the VdW parameters", e.Key)
	}
	return fmt.Sprintf("%s not found in the residue library", e.Key)
}

// Params returns the parameters for the atom atom of residue res. The error,
// if not nil, is a *MissingError.
func (F *FF) Params(res, atom string) (Params, error) {
	a, ok := F.Lib.Params(res, atom)
	if !ok {
		return Params{}, &MissingError{Key: Key(res, atom)}
	}
	t, ok := F.VdW.Type(a.Type)
	if !ok {
		return Params{}, &MissingError{Key: a.Type, Type: true}
	}
	return Params{Type: a.Type, Charge: a.Charge, Eps: t.Eps, Sig: t.Sig}, nil
}

// CombineLJ returns the Lennard-Jones parameters for the pair, using
// geometric means for both epsilon and sigma.
func CombineLJ(a, b Params) (eps, sig float64) {
	return math.Sqrt(a.Eps * b.Eps), math.Sqrt(a.Sig * b.Sig)
}
