/*
 * gro_test.go, part of goGro.
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

package gro

import (
	"compress/gzip"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/gogro/v3"
)

const singleFrame = `Protein in water t=   0.00000
    3
    1SOL     OW    1   0.126   1.624   1.679
    1SOL    HW1    2   0.190   1.661   1.747
    1SOL    HW2    3   0.177   1.568   1.613
   1.86206   1.86206   1.86206
`

const secondFrame = `Protein in water t=   1.00000
    3
    1WAT     OW    1   0.226   1.724   1.779
    1WAT    HW1    2   0.290   1.761   1.847
    1WAT    HW2    3   0.277   1.668   1.713
   1.90000   1.90000   1.90000
`

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < 1e-10
}

func TestSingleFrame(Te *testing.T) {
	g, err := Read(strings.NewReader(singleFrame))
	if err != nil {
		Te.Fatal(err)
	}
	if g.Title() != "Protein in water t=   0.00000" {
		Te.Error("Wrong title:", g.Title())
	}
	if g.FrameCount() != 1 {
		Te.Error("Wrong number of frames:", g.FrameCount())
	}
	if g.Len() != 3 {
		Te.Fatal("Wrong number of atoms:", g.Len())
	}
	names := g.AtomNames()
	for i, v := range []string{"OW", "HW1", "HW2"} {
		if names[i] != v {
			Te.Error("Wrong atom name:", names[i], "expected:", v)
		}
	}
	symbols := g.Symbols()
	for i, v := range []string{"O", "H", "H"} {
		if symbols[i] != v {
			Te.Error("Wrong element:", symbols[i], "expected:", v)
		}
	}
	for i, v := range g.ResidueIDs() {
		if v != 1 {
			Te.Error("Wrong residue ID for atom", i, ":", v)
		}
	}
	for i, v := range g.ResidueNames() {
		if v != "SOL" {
			Te.Error("Wrong residue name for atom", i, ":", v)
		}
	}
	pos := g.Coords()
	if !closeEnough(pos[0][0], 0.126) || !closeEnough(pos[0][1], 1.624) || !closeEnough(pos[0][2], 1.679) {
		Te.Error("Wrong coordinates for the first atom:", pos[0])
	}
	if !closeEnough(pos[2][2], 1.613) {
		Te.Error("Wrong z coordinate for the last atom:", pos[2][2])
	}
	box := g.UnitCellDimensions(0)
	if len(box) != 3 || !closeEnough(box[0], 1.86206) {
		Te.Error("Wrong box:", box)
	}
	lengths := g.UnitCellLengths(0)
	if !closeEnough(lengths[0].A(), 18.6206) {
		Te.Error("Wrong box edge in A:", lengths[0].A())
	}
	masses, err := g.Topology().Masses()
	if err != nil {
		Te.Error(err)
	} else if !closeEnough(masses[0], 16.00) || !closeEnough(masses[1], 1.0) {
		Te.Error("Wrong masses:", masses)
	}
	fmt.Println("Single-frame file read:", g.Title(), g.Len(), "atoms")
}

func TestMultiFrame(Te *testing.T) {
	g, err := Read(strings.NewReader(singleFrame + secondFrame))
	if err != nil {
		Te.Fatal(err)
	}
	if g.FrameCount() != 2 {
		Te.Fatal("Wrong number of frames:", g.FrameCount())
	}
	//the topology comes from the first frame only, so the "WAT" residue
	//names of the second frame must not show up.
	for _, v := range g.ResidueNames() {
		if v != "SOL" {
			Te.Error("Topology altered by a later frame:", v)
		}
	}
	if g.Title() != "Protein in water t=   0.00000" {
		Te.Error("Title altered by a later frame:", g.Title())
	}
	pos := g.Positions(1)
	if !closeEnough(pos[0][0], 0.226) || !closeEnough(pos[2][2], 1.713) {
		Te.Error("Wrong coordinates for the second frame:", pos[0], pos[2])
	}
	first := g.Positions(0)
	coords := g.Coords()
	if !closeEnough(coords[0][0], first[0][0]) {
		Te.Error("Coords doesn't return the first frame")
	}
	if !closeEnough(g.UnitCellDimensions(1)[0], 1.9) {
		Te.Error("Wrong box for the second frame:", g.UnitCellDimensions(1))
	}
}

func TestPositionsMatrixCache(Te *testing.T) {
	g, err := Read(strings.NewReader(singleFrame + secondFrame))
	if err != nil {
		Te.Fatal(err)
	}
	m1, err := g.PositionsMatrix(1)
	if err != nil {
		Te.Fatal(err)
	}
	if !closeEnough(m1.At(0, 0), 0.226) || !closeEnough(m1.At(2, 2), 1.713) {
		Te.Error("Wrong values in matrix representation:", m1.At(0, 0), m1.At(2, 2))
	}
	m2, err := g.PositionsMatrix(1)
	if err != nil {
		Te.Fatal(err)
	}
	if m1 != m2 {
		Te.Error("Matrix representation built twice for the same frame")
	}
	if _, err := g.PositionsMatrix(2); err == nil {
		Te.Error("Out-of-range frame request didn't fail")
	}
}

func TestClassifier(Te *testing.T) {
	cases := []struct {
		line string
		want coordKind
	}{
		{"    1SOL     OW    1   0.126   1.624   1.679", freeFormat6},
		{"    1SOL     OW    1   0.126   1.624   1.679  0.0000  0.0000  0.0000", freeFormat9},
		//large atom numbers run into the name field, so the index has to
		//come from its fixed column.
		{"46641SOL     OW46641   0.126   1.624   1.679", fixedFormat5},
		{"46641SOL     OW46641   0.126   1.624   1.679  0.0000  0.0000  0.0000", fixedFormat8},
		//a non-integer where the atom index should be
		{"    1SOL     OW 12.0   0.126   1.624   1.679", notACoordinate},
		{"   1.86206   1.86206   1.86206", notACoordinate},
		{"", notACoordinate},
		{"Protein in water t=   0.00000", notACoordinate},
	}
	for _, c := range cases {
		if got := classifyCoord(c.line); got != c.want {
			Te.Error("Misclassified line:", c.line, "got:", got, "want:", c.want)
		}
	}
	if !isBoxLine("   1.86206   1.86206   1.86206") {
		Te.Error("Orthorhombic box line not recognized")
	}
	if !isBoxLine(" 1.8 1.8 1.8 0.0 0.0 0.0 0.0 0.0 0.0") {
		Te.Error("Triclinic box line not recognized")
	}
	if isBoxLine("   1.86206   1.86206") {
		Te.Error("2-value line taken for a box")
	}
	if isBoxLine("   1.86206   1.86206   waters") {
		Te.Error("Non-numeric line taken for a box")
	}
}

func TestElementInference(Te *testing.T) {
	cases := []struct {
		name   string
		symbol string
		mass   float64
	}{
		{"OW", "O", 16.00},
		{"HW1", "H", 1.0},
		{"CA", "C", 12.01},
		{"CH2", "C", 12.01},
		{"Cl", "Cl", 35.45},
		{"NA", "N", 14.01}, //a known pitfall of the name-based guess
		{"XQ1", "", 0},     //unresolvable
		{"", "", 0},
	}
	for _, c := range cases {
		s, m := symbolFromName(c.name, PeriodicTable)
		if s != c.symbol || !closeEnough(m, c.mass) {
			Te.Error("Wrong element for name", c.name, ":", s, m)
		}
	}
}

func TestUnexpectedLine(Te *testing.T) {
	bad := `Protein in water t=   0.00000
    3
    1SOL     OW    1   0.126   1.624   1.679
this is not an atom record
    1SOL    HW2    3   0.177   1.568   1.613
   1.86206   1.86206   1.86206
`
	g, err := Read(strings.NewReader(bad))
	if err == nil {
		Te.Fatal("Unexpected line didn't fail the parse")
	}
	if g != nil {
		Te.Error("A model was returned together with a critical error")
	}
	terr, ok := err.(TrajError)
	if !ok || !terr.Critical() {
		Te.Error("Parse failure is not a critical TrajError:", err)
	}
	fmt.Println("Unexpected line correctly rejected:", err)
}

func TestTruncatedTrailingFrame(Te *testing.T) {
	truncated := singleFrame + `Protein in water t=   1.00000
    3
    1WAT     OW    1   0.226   1.724   1.779
`
	g, err := Read(strings.NewReader(truncated))
	if err != nil {
		Te.Fatal("Truncated trailing frame should be dropped, not fail:", err)
	}
	if g.FrameCount() != 1 {
		Te.Error("Wrong number of frames after truncation:", g.FrameCount())
	}
}

func TestTruncatedOnlyFrame(Te *testing.T) {
	truncated := `Protein in water t=   0.00000
    3
    1SOL     OW    1   0.126   1.624   1.679
    1SOL    HW1    2   0.190   1.661   1.747
`
	_, err := Read(strings.NewReader(truncated))
	if err == nil {
		Te.Fatal("A file with no complete frame should fail")
	}
	if !strings.Contains(err.Error(), NoFrames) {
		Te.Error("Wrong error for a file with no complete frames:", err)
	}
}

func TestBadBoxValue(Te *testing.T) {
	//the bare sign sneaks past the permissive numeric check, so the
	//failure must come from the actual conversion.
	bad := strings.Replace(singleFrame, "   1.86206   1.86206   1.86206", "   1.86206   1.86206         -", 1)
	_, err := Read(strings.NewReader(bad))
	if err == nil {
		Te.Fatal("Unconvertible box value didn't fail the parse")
	}
	fmt.Println("Bad box value correctly rejected:", err)
}

func TestTriclinicBox(Te *testing.T) {
	triclinic := strings.Replace(singleFrame, "   1.86206   1.86206   1.86206",
		"   1.86206   1.86206   1.86206   0.00000   0.00000   0.00000   0.00000   0.93103   0.93103", 1)
	g, err := Read(strings.NewReader(triclinic))
	if err != nil {
		Te.Fatal(err)
	}
	box := g.UnitCellDimensions(0)
	if len(box) != 9 {
		Te.Fatal("Triclinic box not kept in full:", box)
	}
	if !closeEnough(box[8], 0.93103) {
		Te.Error("Wrong triclinic box values:", box)
	}
}

func TestNext(Te *testing.T) {
	g, err := Read(strings.NewReader(singleFrame + secondFrame))
	if err != nil {
		Te.Fatal(err)
	}
	if !g.Readable() {
		Te.Fatal("Freshly parsed trajectory not readable")
	}
	coords := v3.Zeros(g.Len())
	box := make([]float64, 3)
	frames := 0
	for {
		err := g.Next(coords, box)
		if err != nil {
			if _, ok := err.(LastFrameError); ok {
				break
			}
			Te.Fatal(err)
		}
		frames++
		fmt.Println("Frame", frames, "first atom:", coords.At(0, 0), "box:", box)
	}
	if frames != 2 {
		Te.Error("Wrong number of frames read:", frames)
	}
	if !closeEnough(coords.At(0, 0), 0.226) || !closeEnough(box[0], 1.9) {
		Te.Error("Wrong data for the last frame:", coords.At(0, 0), box)
	}
	if g.Readable() {
		Te.Error("Trajectory still readable after the last frame")
	}
	if err := g.Next(coords); err == nil {
		Te.Error("Reading past the end didn't fail")
	}
}

func TestNextNotEnoughSpace(Te *testing.T) {
	g, err := Read(strings.NewReader(singleFrame))
	if err != nil {
		Te.Fatal(err)
	}
	small := v3.Zeros(2)
	err = g.Next(small)
	if err == nil {
		Te.Fatal("A too-small matrix should fail Next")
	}
	if !strings.Contains(err.Error(), NotEnoughSpace) {
		Te.Error("Wrong error for a too-small matrix:", err)
	}
}

func TestNew(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "waters.gro")
	if err := os.WriteFile(plain, []byte(singleFrame+secondFrame), 0644); err != nil {
		Te.Fatal(err)
	}
	gzname := filepath.Join(dir, "waters.gro.gz")
	fgz, err := os.Create(gzname)
	if err != nil {
		Te.Fatal(err)
	}
	zw := gzip.NewWriter(fgz)
	zw.Write([]byte(singleFrame + secondFrame))
	zw.Close()
	fgz.Close()
	zstname := filepath.Join(dir, "waters.gro.zst")
	fzst, err := os.Create(zstname)
	if err != nil {
		Te.Fatal(err)
	}
	zstw, err := zstd.NewWriter(fzst)
	if err != nil {
		Te.Fatal(err)
	}
	zstw.Write([]byte(singleFrame + secondFrame))
	zstw.Close()
	fzst.Close()
	for _, name := range []string{plain, gzname, zstname} {
		g, err := New(name)
		if err != nil {
			Te.Fatal(name, err)
		}
		if g.FrameCount() != 2 || g.Len() != 3 {
			Te.Error("Wrong model from", name, ":", g.FrameCount(), g.Len())
		}
	}
	if _, err := New(filepath.Join(dir, "nosuchfile.gro")); err == nil {
		Te.Error("Opening a missing file didn't fail")
	}
}

func TestFixedFormatAtomID(Te *testing.T) {
	//an atom number too large for its column keeps the file readable, and
	//the index still comes from the fixed column.
	fixed := `Big system t=   0.00000
    1
46641SOL     OW46641   0.126   1.624   1.679
   1.86206   1.86206   1.86206
`
	g, err := Read(strings.NewReader(fixed))
	if err != nil {
		Te.Fatal(err)
	}
	at := g.Atom(0)
	if at.ID != 46641 || at.Name != "OW" || at.MolName != "SOL" {
		Te.Error("Fixed-column record misread:", at)
	}
	if !closeEnough(g.Coords()[0][0], 0.126) {
		Te.Error("Wrong position from fixed-column record:", g.Coords()[0])
	}
}
