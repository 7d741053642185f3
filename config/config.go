/*
 * config.go, part of Polarcontacts.
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

// Package config is for the program settings that are unmarshalled
// from Viper (see: /cmd/polarcontacts): command line flags, environment
// variables and an optional settings file.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/JMiguelRamirez/Polarcontacts/contacts"
	"github.com/JMiguelRamirez/Polarcontacts/energy"
)

// EnvPrefix is the prefix of the environment variables read, i.e. POLARCONTACTS_DIEL.
const EnvPrefix = "POLARCONTACTS"

// Config is the root-level settings struct and is a mix
// of settings available in the settings file and those
// available from the command line
type Config struct {
	// path to the structure
	PDBPath string `mapstructure:"pdb_path"`

	// restrict the contacts to backbone polar atoms
	BackOnly bool `mapstructure:"backonly"`

	// exclude water molecules
	NoWaters bool `mapstructure:"nowats"`

	// relative dielectric constant
	Diel float64 `mapstructure:"diel"`

	// VdW parameter file
	VdW string `mapstructure:"vdw"`

	// residue library file
	RLib string `mapstructure:"rlib"`

	// contact and covalent distances, A
	HBLnk  float64 `mapstructure:"hblnk"`
	CovLnk float64 `mapstructure:"covlnk"`

	// number of lowest-energy residue pairs reported
	Top int `mapstructure:"top"`

	// output file for the plot, empty for no plot
	Plot string `mapstructure:"plot"`

	// TOML file with the surface residues, empty for the built-in list
	Surface string `mapstructure:"surface"`

	// prefactor of the surface electrostatics
	SurfaceFactor float64 `mapstructure:"surface-factor"`

	// output file for the JSON report, empty for no report
	JSON string `mapstructure:"json"`

	// only residues in the same chain can be sequence-adjacent
	ChainAdjacency bool `mapstructure:"chain-adjacency"`
}

// SetDefaults sets the default value of every setting in v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("backonly", false)
	v.SetDefault("nowats", false)
	v.SetDefault("diel", 1.0)
	v.SetDefault("vdw", "")
	v.SetDefault("rlib", "")
	v.SetDefault("hblnk", contacts.HBLNK)
	v.SetDefault("covlnk", contacts.COVLNK)
	v.SetDefault("top", 5)
	v.SetDefault("plot", "polarcontacts.png")
	v.SetDefault("surface", "")
	v.SetDefault("surface-factor", energy.SurfaceFactor)
	v.SetDefault("json", "")
	v.SetDefault("chain-adjacency", false)
}

// NewViper returns a Viper with the defaults set, that also reads the
// environment variables with the EnvPrefix prefix.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile reads the settings file path into v. The format is taken from the
// extension (yaml, toml, json...).
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("ReadFile: %w", err)
	}
	return nil
}

// New returns a new Config struct populated by
// Viper settings. The settings are validated.
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return c, c.Validate()
}

// Validate checks that the settings make sense.
func (c Config) Validate() error {
	if c.Diel <= 0 {
		return fmt.Errorf("diel must be positive, got %g", c.Diel)
	}
	if c.HBLnk <= 0 {
		return fmt.Errorf("hblnk must be positive, got %g", c.HBLnk)
	}
	if c.CovLnk < 0 || c.CovLnk > c.HBLnk {
		return fmt.Errorf("covlnk must be between 0 and hblnk (%g), got %g", c.HBLnk, c.CovLnk)
	}
	if c.Top < 0 {
		return fmt.Errorf("top can't be negative, got %d", c.Top)
	}
	if (c.VdW == "") != (c.RLib == "") {
		return fmt.Errorf("vdw and rlib must be given together")
	}
	return nil
}

// Energies returns true if the parameter files needed for the interaction
// energies were given.
func (c Config) Energies() bool {
	return c.VdW != "" && c.RLib != ""
}

// ContactOptions returns the options for the contact search.
func (c Config) ContactOptions() contacts.Options {
	return contacts.Options{
		Cutoff:   c.HBLnk,
		Covalent: c.CovLnk,
		NoWaters: c.NoWaters,
		BackOnly: c.BackOnly,

		ChainAdjacency: c.ChainAdjacency,
	}
}

// Print writes the settings block to w.
func (c Config) Print(w io.Writer) {
	fmt.Fprintln(w, "Settings")
	fmt.Fprintln(w, "--------")
	set := []struct {
		k string
		v interface{}
	}{
		{"backonly", c.BackOnly},
		{"nowats", c.NoWaters},
		{"diel", c.Diel},
		{"vdwprm", c.VdW},
		{"reslib", c.RLib},
		{"pdb_path", c.PDBPath},
		{"hblnk", c.HBLnk},
		{"covlnk", c.CovLnk},
		{"top", c.Top},
		{"plot", c.Plot},
		{"surface", c.Surface},
		{"json", c.JSON},
		{"chainadj", c.ChainAdjacency},
	}
	for _, s := range set {
		fmt.Fprintf(w, "%-10s: %v\n", s.k, s.v)
	}
}
