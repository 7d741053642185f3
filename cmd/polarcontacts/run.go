/*
 * run.go, part of Polarcontacts.
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

package main

import (
	"fmt"
	"io"
	"log"

	chem "github.com/JMiguelRamirez/Polarcontacts"
	"github.com/JMiguelRamirez/Polarcontacts/chemgraph"
	"github.com/JMiguelRamirez/Polarcontacts/chemjson"
	"github.com/JMiguelRamirez/Polarcontacts/chemplot"
	"github.com/JMiguelRamirez/Polarcontacts/config"
	"github.com/JMiguelRamirez/Polarcontacts/contacts"
	"github.com/JMiguelRamirez/Polarcontacts/energy"
	"github.com/JMiguelRamirez/Polarcontacts/top"
)

// histogramBins is the number of bins of the contact distance histogram.
const histogramBins = 6

// loadError is returned when a structure can't be read.
type loadError struct {
	err error
}

func (e *loadError) Error() string { return fmt.Sprintf("#ERROR: loading PDB: %v", e.err) }
func (e *loadError) Unwrap() error { return e.err }

// run carries out the whole analysis with the settings c, writing the report to out.
func run(c config.Config, out io.Writer) error {
	c.Print(out)
	var ff *top.FF
	var err error
	if c.Energies() {
		ff, err = top.FFFileRead(c.VdW, c.RLib)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d atom types loaded\n", ff.VdW.NTypes())
		fmt.Fprintf(out, "%d amino acid atoms loaded\n", ff.Lib.NAtoms())
	} else {
		log.Printf("no --vdw and --rlib given, interaction energies will not be computed")
	}
	surface := energy.DefaultSurface()
	if c.Surface != "" {
		surface, err = energy.SurfaceFileRead(c.Surface)
		if err != nil {
			return err
		}
	}

	mol, err := chem.FileRead(c.PDBPath)
	if err != nil {
		return &loadError{err: err}
	}
	fmt.Fprintln(out, mol)
	if mol.LenFrames() > 1 {
		log.Printf("#WARNING: Several Models found, using only first")
	}
	hblist, err := contacts.Find(mol, 0, c.ContactOptions())
	if err != nil {
		return err
	}
	printContacts(out, hblist)
	summary := contacts.Summarize(hblist, c.CovLnk, c.HBLnk, histogramBins)
	printSummary(out, summary)
	report := chemjson.NewReport(c.PDBPath, hblist, mol.Coords[0])
	report.SetSummary(summary)

	respairs := contacts.ResiduePairs(hblist)
	var calc *energy.Calculator
	if ff != nil {
		calc, err = energy.NewCalculator(ff, c.Diel, mol.Coords[0])
		if err != nil {
			return err
		}
		lowest := energy.Lowest(calc.Pairs(respairs), c.Top)
		if n := calc.Missing(); n > 0 {
			log.Printf("#WARNING: %d residue atom(s) or atom type(s) without parameters were left out of the energies", n)
		}
		printInteractions(out, "Residue interactions", lowest)
		report.SetInteractions(lowest, nil)
	}

	printClasses(out, contacts.Classify(hblist))
	mainres, sideres := contacts.Membership(hblist)
	printMembership(out, mainres, sideres)
	report.SetMembership(mainres, sideres)
	network := chemgraph.NewNetwork(respairs)
	clusters := network.Clusters()
	printClusters(out, network, clusters)
	report.SetClusters(clusters)
	if c.Plot != "" {
		if len(mainres)+len(sideres) == 0 {
			log.Printf("no contacts found, the plot will not be written")
		} else if err := chemplot.MembershipPlot(mainres, sideres, "Residues in polar contacts", c.Plot); err != nil {
			return err
		}
	}

	if calc != nil {
		surf := calc.Surface(respairs, surface, c.SurfaceFactor)
		printInteractions(out, "Surface electrostatics", surf)
		report.SetInteractions(nil, surf)
	}
	if c.JSON != "" {
		return report.WriteFile(c.JSON)
	}
	return nil
}
