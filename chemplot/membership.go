/*
 * membership.go, part of Polarcontacts.
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

package chemplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	chem "github.com/JMiguelRamirez/Polarcontacts"
)

// Labels of the two rows of the membership plot.
const (
	MainLabel = "to_main"
	SideLabel = "to_side"
)

func basicMembershipPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = "Contact through"
	//Constant axes
	p.Y.Min = -0.5
	p.Y.Max = 1.5
	p.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{{Value: 0, Label: SideLabel}, {Value: 1, Label: MainLabel}})
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Add(plotter.NewGrid())
	return p
}

// MembershipPoints returns the points of the membership plot: the residues in
// main come first, at y=1, followed by those in side, at y=0. Each residue gets
// its own x position, so a residue in both lists appears twice. The tick
// labels for the x axis are also returned.
func MembershipPoints(main, side []*chem.Residue) (mainxy, sidexy plotter.XYs, ticks []plot.Tick) {
	mainxy = make(plotter.XYs, len(main))
	sidexy = make(plotter.XYs, len(side))
	ticks = make([]plot.Tick, 0, len(main)+len(side))
	for i, r := range main {
		mainxy[i].X, mainxy[i].Y = float64(i), 1
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: residueLabel(r)})
	}
	for i, r := range side {
		x := float64(i + len(main))
		sidexy[i].X, sidexy[i].Y = x, 0
		ticks = append(ticks, plot.Tick{Value: x, Label: residueLabel(r)})
	}
	return mainxy, sidexy, ticks
}

func residueLabel(r *chem.Residue) string {
	return fmt.Sprintf("%s  %d", r.Name, r.ID)
}

// MembershipPlot plots which residues take part in polar contacts through main chain atoms
// and which through side chain atoms, and saves the plot to filename. The format is
// given by the extension of filename (png, svg, pdf, eps, jpg or tiff).
func MembershipPlot(main, side []*chem.Residue, title, filename string) error {
	if len(main)+len(side) == 0 {
		return fmt.Errorf("MembershipPlot: no residues to plot")
	}
	p := basicMembershipPlot(title)
	mainxy, sidexy, ticks := MembershipPoints(main, side)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = -1
	p.X.Max = float64(len(ticks))
	for key, val := range []plotter.XYs{mainxy, sidexy} {
		if len(val) == 0 {
			continue
		}
		s, err := plotter.NewScatter(val)
		if err != nil {
			return fmt.Errorf("MembershipPlot: %w", err)
		}
		s.GlyphStyle.Shape, _ = getShape(key)
		s.GlyphStyle.Radius = vg.Points(4)
		r, g, b := colors(key*3, 4)
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		p.Add(s)
	}
	width := vg.Length(math.Max(4, 0.3*float64(len(ticks)))) * vg.Inch
	//here I  intentionally shadow err.
	if err := p.Save(width, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("MembershipPlot: %w", err)
	}
	return nil
}
