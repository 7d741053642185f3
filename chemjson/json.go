/*
 * json.go, part of Polarcontacts.
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

package chemjson

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	chem "github.com/JMiguelRamirez/Polarcontacts"
	"github.com/JMiguelRamirez/Polarcontacts/contacts"
	"github.com/JMiguelRamirez/Polarcontacts/energy"
	v3 "github.com/JMiguelRamirez/Polarcontacts/v3"
)

//A ready-to-serialize container for an atom.
type Atom struct {
	A      *chem.Atom
	Coords []float64
}

//NewAtom returns the container for the ith atom of coords.
func NewAtom(at *chem.Atom, coords *v3.Matrix, i int) *Atom {
	ret := &Atom{A: at}
	if coords != nil {
		ret.Coords = append([]float64(nil), coords.Vec(i)...)
	}
	return ret
}

//A ready-to-serialize container for a residue.
type Residue struct {
	Name  string
	ID    int
	Chain string
}

//NewResidue returns the container for r.
func NewResidue(r *chem.Residue) Residue {
	return Residue{Name: r.Name, ID: r.ID, Chain: r.Chain}
}

func residues(rs []*chem.Residue) []Residue {
	ret := make([]Residue, 0, len(rs))
	for _, r := range rs {
		ret = append(ret, NewResidue(r))
	}
	return ret
}

//Contact is a polar contact, with its class.
type Contact struct {
	Atom1 *Atom
	Atom2 *Atom
	Dist  float64
	Class string
}

//Interaction is the interaction energy between two residues, in kcal/mol.
type Interaction struct {
	Res1  Residue
	Res2  Residue
	Elec  float64
	VdW   float64
	Total float64
}

func interactions(ints []*energy.Interaction) []Interaction {
	ret := make([]Interaction, 0, len(ints))
	for _, in := range ints {
		ret = append(ret, Interaction{
			Res1:  NewResidue(in.R1),
			Res2:  NewResidue(in.R2),
			Elec:  in.Elec,
			VdW:   in.VdW,
			Total: in.Total(),
		})
	}
	return ret
}

//Report is the information to be passed back to the calling program.
type Report struct {
	Structure    string
	Contacts     []Contact
	N            int
	Mean         *float64 `json:",omitempty"` //absent without contacts
	Std          *float64 `json:",omitempty"` //absent with less than 2 contacts
	Histogram    []float64
	Dividers     []float64
	Interactions []Interaction `json:",omitempty"`
	Surface      []Interaction `json:",omitempty"`
	ToMain       []Residue
	ToSide       []Residue
	Clusters     [][]Residue
}

//NewReport returns a report for the structure name, with the contacts
//hblist found in the frame coords.
func NewReport(name string, hblist []*contacts.Contact, coords *v3.Matrix) *Report {
	R := &Report{Structure: name, Contacts: make([]Contact, 0, len(hblist))}
	for _, c := range hblist {
		R.Contacts = append(R.Contacts, Contact{
			Atom1: NewAtom(c.At1, coords, c.I),
			Atom2: NewAtom(c.At2, coords, c.J),
			Dist:  c.Dist,
			Class: c.Class().String(),
		})
	}
	return R
}

//SetSummary adds the statistics of the contact distances to the report.
func (R *Report) SetSummary(s contacts.Summary) {
	R.N = s.N
	R.Mean = finite(s.Mean)
	R.Std = finite(s.Std)
	R.Histogram = s.Counts
	R.Dividers = s.Dividers
}

//finite returns a pointer to a copy of x, or nil if x is NaN or infinite,
//which JSON can't represent.
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

//SetInteractions adds the residue interaction energies and the surface electrostatics
//to the report. Either can be nil.
func (R *Report) SetInteractions(ints, surface []*energy.Interaction) {
	if ints != nil {
		R.Interactions = interactions(ints)
	}
	if surface != nil {
		R.Surface = interactions(surface)
	}
}

//SetMembership adds the residues with atoms in main chain and side chain contacts.
func (R *Report) SetMembership(mainres, sideres []*chem.Residue) {
	R.ToMain = residues(mainres)
	R.ToSide = residues(sideres)
}

//SetClusters adds the groups of residues connected by polar contacts.
func (R *Report) SetClusters(clusters [][]*chem.Residue) {
	R.Clusters = make([][]Residue, 0, len(clusters))
	for _, c := range clusters {
		R.Clusters = append(R.Clusters, residues(c))
	}
}

//Send Marshals the report and writes to out, returns an error or nil
func (R *Report) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(R); err != nil {
		return NewError("postprocess", "Report.Send", err)
	}
	return nil
}

//WriteFile writes the report to the file name, which is created or truncated.
func (R *Report) WriteFile(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return NewError("postprocess", "Report.WriteFile", err)
	}
	if jerr := R.Send(f); jerr != nil {
		f.Close()
		jerr.Decorate("Report.WriteFile")
		return jerr
	}
	if err := f.Close(); err != nil {
		return NewError("postprocess", "Report.WriteFile", err)
	}
	return nil
}

//ReadReport decodes a report previously written with Send.
func ReadReport(in io.Reader) (*Report, error) {
	R := new(Report)
	if err := json.NewDecoder(in).Decode(R); err != nil {
		return nil, NewError("input", "ReadReport", err)
	}
	return R, nil
}

//An easily JSON-serializable error type,
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InInput       bool //If error, was it in reading the input?
	InProcess     bool
	InPostProcess bool   //was it in preparing the output?
	Function      string //which go function gave the error
	Message       string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	if len(J.deco) == 0 {
		return fmt.Sprintf("%s: %s", J.Function, J.Message)
	}
	return fmt.Sprintf("%s: %s: %s", strings.Join(J.deco, ": "), J.Function, J.Message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "input":
		jerr.InInput = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}
