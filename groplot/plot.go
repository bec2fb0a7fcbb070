/*
 * plot.go, part of goGro.
 *
 * Copyright 2026 Raul Mera <rmeraaatacademicosdotutadotcl>
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

//Package groplot produces plots from parsed .gro trajectories.
package groplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/gogro"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func basicBoxPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Box edge (nm)"
	return p
}

//BoxEvolution plots the three box edge lengths of every frame in G against
//the frame number, and saves the plot to plotname. The extension of plotname
//selects the output format (.png, .pdf, .svg...). For triclinic boxes only
//the diagonal of the tensor is plotted.
func BoxEvolution(G *gro.GroObj, plotname string) error {
	if G == nil {
		return fmt.Errorf("BoxEvolution: Given nil trajectory")
	}
	if G.FrameCount() == 0 {
		return fmt.Errorf("BoxEvolution: Trajectory has no frames")
	}
	p := basicBoxPlot(G.Title())
	labels := []string{"x", "y", "z"}
	colors := []color.RGBA{
		{R: 200, A: 255},
		{G: 160, A: 255},
		{B: 200, A: 255},
	}
	for axis := 0; axis < 3; axis++ {
		pts := make(plotter.XYs, G.FrameCount())
		for frame := 0; frame < G.FrameCount(); frame++ {
			box := G.UnitCellDimensions(frame)
			if len(box) <= axis {
				return fmt.Errorf("BoxEvolution: Frame %d has a malformed box", frame)
			}
			pts[frame].X = float64(frame)
			pts[frame].Y = box[axis]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = colors[axis]
		p.Add(line)
		p.Legend.Add(labels[axis], line)
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname)
}
