/*
 * root.go, part of Polarcontacts.
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
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JMiguelRamirez/Polarcontacts/config"
)

// ExitError is the exit status used for every failure.
const ExitError = 2

// errNoPath is returned when no structure is given.
var errNoPath = errors.New("no structure given")

// flagNames are the flags stored in viper, under the same name.
var flagNames = []string{"backonly", "nowats", "diel", "vdw", "rlib", "hblnk", "covlnk", "top", "plot", "surface", "surface-factor", "json", "chain-adjacency"}

// bindFlags binds the flags names of cmd to v.
func bindFlags(v *viper.Viper, cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// newRootCmd returns the command, with its flags bound to v. The report is
// written to out.
func newRootCmd(v *viper.Viper, out io.Writer) (*cobra.Command, error) {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "polarcontacts [flags] pdb_path",
		Short: "Polar contacts detector",
		Long: `Polar contacts detector

polarcontacts finds the pairs of polar atoms (those able to form hydrogen bonds)
from different, non-adjacent residues that are closer than a cutoff. The contacts
are classified by whether each atom belongs to the main chain or to a side chain,
and, when the force field files are given, the electrostatic and van der Waals
interaction energies between the residues in contact are computed.

The structure can be a PDB or PDBx/mmCIF file, optionally compressed with gzip
(.gz) or zstd (.zst).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       "1.0.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return errNoPath
			}
			if cfgFile != "" {
				if err := config.ReadFile(v, cfgFile); err != nil {
					return err
				}
			}
			v.Set("pdb_path", args[0])
			c, err := config.New(v)
			if err != nil {
				return err
			}
			return run(c, out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "settings file (yaml, toml or json)")
	f.Bool("backonly", false, "Restrict to backbone")
	f.Bool("nowats", false, "Exclude water molecules")
	f.Float64("diel", 1.0, "Relative dielectric constant")
	f.String("vdw", "", "VDW Parameters file")
	f.String("rlib", "", "AminoAcid library")
	f.Float64("hblnk", 3.5, "Maximum distance for a polar contact (A)")
	f.Float64("covlnk", 2.0, "Pairs closer than this are taken as covalent (A)")
	f.Int("top", 5, "Number of lowest-energy residue pairs to print")
	f.String("plot", "polarcontacts.png", "Output file for the main/side chain plot, empty for no plot")
	f.String("surface", "", "TOML file with the surface residues (default: built-in list)")
	f.Float64("surface-factor", 80, "Prefactor for the surface electrostatics")
	f.String("json", "", "Output file for a JSON report of the results")
	f.Bool("chain-adjacency", false, "Only residues in the same chain are taken as adjacent")

	// Bind the parameters to viper
	if err := bindFlags(v, cmd, flagNames...); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Execute runs the command with the given arguments and returns the exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)
	v := config.NewViper()
	cmd, err := newRootCmd(v, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "#ERROR: %v\n", err)
		return ExitError
	}
	if args == nil {
		//cobra would take os.Args otherwise
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err = cmd.Execute(); err != nil {
		var le *loadError
		switch {
		case errors.Is(err, errNoPath):
		case errors.As(err, &le):
			fmt.Fprintln(stderr, le)
		default:
			fmt.Fprintf(stderr, "#ERROR: %v\n", err)
		}
		return ExitError
	}
	return 0
}
