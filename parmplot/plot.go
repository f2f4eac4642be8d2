/*
 * plot.go, part of goParm.
 *
 * Copyright 2026 The goParm authors.
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

//Package parmplot draws simple plots of the contents of a topology.
package parmplot

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/rmera/goparm/parm"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Topology is the part of a topology needed to plot residue charges.
// *parm.Topology implements it.
type Topology interface {
	NResidues() int
	ResidueName(r int) string
	ResidueRange(r int) (int, int)
	Atom(i int) parm.Atom
}

var (
	positive = color.RGBA{R: 200, G: 40, B: 40, A: 255}
	negative = color.RGBA{R: 40, G: 60, B: 200, A: 255}
)

// Charges returns the net charge, in electrons, of each residue of t.
func Charges(t Topology) []float64 {
	ret := make([]float64, t.NResidues())
	for r := range ret {
		start, end := t.ResidueRange(r)
		q := make([]float64, 0, end-start)
		for i := start; i < end; i++ {
			q = append(q, t.Atom(i).Charge)
		}
		ret[r] = floats.Sum(q)
	}
	return ret
}

// labels returns one tick label per residue, the name followed by the
// 1-based residue number.
func labels(t Topology) []string {
	ret := make([]string, t.NResidues())
	for r := range ret {
		ret[r] = fmt.Sprintf("%s%d", strings.TrimSpace(t.ResidueName(r)), r+1)
	}
	return ret
}

// ResidueCharges returns a bar chart with the net charge of each residue
// of t. Positive residues are drawn in red and negative ones in blue.
func ResidueCharges(t Topology, title string) (*plot.Plot, error) {
	q := Charges(t)
	if len(q) == 0 {
		return nil, fmt.Errorf("parmplot: topology without residues")
	}
	pos := make(plotter.Values, len(q))
	neg := make(plotter.Values, len(q))
	for i, v := range q {
		if v >= 0 {
			pos[i] = v
		} else {
			neg[i] = v
		}
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = "Charge (e)"
	p.Add(plotter.NewGrid())
	//the bars are thin enough for a few hundred residues to fit in the
	//default width.
	w := vg.Points(4)
	if len(q) < 20 {
		w = vg.Points(12)
	}
	for _, s := range []struct {
		v plotter.Values
		c color.Color
	}{{pos, positive}, {neg, negative}} {
		b, err := plotter.NewBarChart(s.v, w)
		if err != nil {
			return nil, fmt.Errorf("parmplot: %w", err)
		}
		b.Color = s.c
		b.LineStyle.Width = vg.Length(0)
		p.Add(b)
	}
	if len(q) <= 50 {
		p.NominalX(labels(t)...)
	}
	return p, nil
}

// SaveResidueCharges plots the residue charges of t and saves the plot
// to file. The image format is taken from the extension of file (png,
// svg, pdf, eps and so on).
func SaveResidueCharges(t Topology, file string) error {
	title := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if pt, ok := t.(interface{ Title() string }); ok && pt.Title() != "" {
		title = pt.Title()
	}
	p, err := ResidueCharges(t, title)
	if err != nil {
		return err
	}
	width := vg.Length(12) * vg.Centimeter
	if n := t.NResidues(); n > 50 {
		width = vg.Length(n/4) * vg.Centimeter
	}
	if err := p.Save(width, 8*vg.Centimeter, file); err != nil {
		return fmt.Errorf("parmplot: can't save %s: %w", file, err)
	}
	return nil
}
