/*
 * gro.go, part of goGro.
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
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/gogro/v3"
)

//Lexical tests for the line classifier. isNum is deliberately permissive (all
//its components are optional, so the empty string and a bare sign also match):
//a false negative here would misroute a whole line, while anything that slips
//through still has to survive strconv when actually converted.
var (
	isInt = regexp.MustCompile(`^[-+]?[0-9]+$`).MatchString
	isNum = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]*([eEdD][-+]?[0-9]+)?$`).MatchString
)

//The .gro format has two coexisting layouts for coordinate records, with no
//version marker in the file to tell them apart: a whitespace-flexible one,
//and a strict fixed-column one where large atom numbers run into the
//preceding name fields. Lines are dispatched on their token count.
type coordKind int

const (
	notACoordinate coordKind = iota
	freeFormat6              //atom index and positions separated by whitespace
	freeFormat9              //as freeFormat6, plus velocities
	fixedFormat5             //atom index embedded in its fixed column
	fixedFormat8             //as fixedFormat5, plus velocities
)

//classifyCoord determines whether a line is a .gro coordinate record, and in
//which of the format's layouts.
func classifyCoord(line string) coordKind {
	f := strings.Fields(line)
	switch len(f) {
	case 6, 9:
		if isInt(f[2]) && isNum(f[3]) && isNum(f[4]) && isNum(f[5]) {
			if len(f) == 6 {
				return freeFormat6
			}
			return freeFormat9
		}
	case 5, 8:
		//The atom index is not whitespace-separated from the atom name here,
		//so it is taken from its own fixed column instead. The offset comes
		//from the residue-id(5)+residue-name(5)+atom-name(5) header block.
		if isInt(col(line, 15, 20)) && isNum(f[2]) && isNum(f[3]) && isNum(f[4]) {
			if len(f) == 5 {
				return fixedFormat5
			}
			return fixedFormat8
		}
	}
	return notACoordinate
}

//isBoxLine returns whether the line holds box vectors: 3 tokens for an
//orthorhombic box, or 9 for the full triclinic tensor, all of them numeric.
//Content alone can't tell a box line from some coordinate lines, so the
//caller must also check that the line sits where a box line belongs.
func isBoxLine(line string) bool {
	f := strings.Fields(line)
	if len(f) != 3 && len(f) != 9 {
		return false
	}
	for _, v := range f {
		if !isNum(v) {
			return false
		}
	}
	return true
}

//col returns the raw text at character columns a to b (0-based, b excluded)
//of line, or as much of it as the line has.
func col(line string, a, b int) string {
	if len(line) < a {
		return ""
	}
	if len(line) < b {
		b = len(line)
	}
	return line[a:b]
}

//symbolFromName tries to guess a chemical element from a .gro atom name.
//The first character is kept and any subsequent uppercase letters or digits
//are stripped, which gets rid of trailing locants (the "1" in "HW1", the
//second "H" in "CH2") while keeping 2-letter symbols like "Cl" intact.
//Returns the symbol and its mass, or an empty symbol if the table doesn't
//resolve the guess.
func symbolFromName(name string, table ElementTable) (string, float64) {
	if name == "" {
		return "", 0
	}
	symbol := name[:1]
	for _, r := range name[1:] {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			continue
		}
		symbol += string(r)
	}
	mass, ok := table.Mass(symbol)
	if !ok {
		return "", 0
	}
	return symbol, mass
}

//atomFromLine reads the fixed-width header block of a coordinate record:
//residue id(5), residue name(5), atom name(5), atom index(5).
func atomFromLine(line string, position int, table ElementTable) (*Atom, error) {
	at := new(Atom)
	var err error
	at.MolID, err = strconv.Atoi(strings.TrimSpace(col(line, 0, 5)))
	if err != nil {
		return nil, CError{fmt.Sprintf("Can't read residue number from %q: %s", strings.TrimSuffix(line, "\n"), err.Error()), "", []string{"atomFromLine"}, true}
	}
	at.MolName = strings.TrimSpace(col(line, 5, 10))
	at.Name = strings.TrimSpace(col(line, 10, 15))
	//the atom index column is decorative in the free-format layout, so not
	//being able to read it is no reason to give up on the line.
	at.ID, err = strconv.Atoi(strings.TrimSpace(col(line, 15, 20)))
	if err != nil {
		at.ID = position + 1
	}
	at.Symbol, at.Mass = symbolFromName(at.Name, table)
	return at, nil
}

//read consumes the whole input and builds the model. It keeps a line counter
//local to the current frame: line 0 is the title, line 1 the atom count na,
//lines 2 to na+1 the atom records, and line na+2 must be the box line, which
//seals the frame and resets the counter. The topology is captured from the
//first frame only; later frames are assumed to match it.
func read(buf *bufio.Reader, filename string, table ElementTable) (*GroObj, error) {
	g := new(GroObj)
	g.filename = filename
	var atoms []*Atom
	var xyz [][3]float64
	var na int
	ln := 0
	frame := 0
	for {
		line, rerr := buf.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, CError{rerr.Error(), filename, []string{"read"}, true}
		}
		if line == "" && rerr != nil {
			break
		}
		switch {
		case ln == 0:
			if frame == 0 {
				g.title = strings.TrimSpace(line)
			}
		case ln == 1:
			var err error
			na, err = strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return nil, CError{fmt.Sprintf("Can't read atom count from %q: %s", strings.TrimSpace(line), err.Error()), filename, []string{"read"}, true}
			}
		case classifyCoord(line) != notACoordinate:
			if frame == 0 {
				at, err := atomFromLine(line, len(atoms), table)
				if err != nil {
					return nil, errDecorate(err, "read")
				}
				atoms = append(atoms, at)
			}
			var pos [3]float64
			for i := 0; i < 3; i++ {
				//positions are always taken from their fixed columns: the
				//format packs no delimiter between coordinate fields.
				s := strings.TrimSpace(col(line, 20+i*8, 28+i*8))
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, CError{fmt.Sprintf("Can't read coordinate %d from %q: %s", i, strings.TrimSuffix(line, "\n"), err.Error()), filename, []string{"read"}, true}
				}
				pos[i] = v
			}
			xyz = append(xyz, pos)
		case isBoxLine(line) && ln == na+2:
			f := strings.Fields(line)
			box := make([]float64, len(f))
			for i, v := range f {
				var err error
				box[i], err = strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, CError{fmt.Sprintf("Can't read box vectors from %q: %s", strings.TrimSuffix(line, "\n"), err.Error()), filename, []string{"read"}, true}
				}
			}
			g.boxes = append(g.boxes, box)
			g.frames = append(g.frames, xyz)
			xyz = nil
			ln = -1
			frame++
		default:
			return nil, CError{fmt.Sprintf("%s: %q", UnexpectedLine, strings.TrimSuffix(line, "\n")), filename, []string{"read"}, true}
		}
		ln++
		if rerr != nil {
			break
		}
	}
	if frame == 0 {
		//input over before the first box line: there is no model to return.
		return nil, CError{NoFrames, filename, []string{"read"}, true}
	}
	if ln != 0 {
		//input over before the box line of the last frame. The partial
		//frame is dropped, but it is worth a heads-up.
		log.Printf("Dropped incomplete trailing frame (%d of %d lines) in .gro file %s", ln, na+3, filename)
	}
	top, err := NewTopology(0, 1, atoms)
	if err != nil {
		return nil, CError{err.Error(), filename, []string{"read"}, true}
	}
	g.top = top
	g.readable = true
	return g, nil
}

//GroObj represents a parsed .gro file: the topology recovered from the first
//frame plus the positions and box dimensions of every complete frame found.
//It is built once by New or Read and immutable afterwards, except for the
//lazily-built matrix representation of each frame's positions.
type GroObj struct {
	title    string
	top      *Topology
	frames   [][][3]float64
	boxes    [][]float64
	matrices []*v3.Matrix //built on demand, one slot per frame
	filename string
	current  int
	readable bool
}

//New reads the .gro file with the given name and returns the parsed model.
//Files ending in .gz, .zst or .zstd are decompressed on the fly.
func New(name string) (*GroObj, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, CError{UnableToOpen, name, []string{"New"}, true}
	}
	defer f.Close()
	var in io.Reader = f
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, CError{"Can't decompress: " + err.Error(), name, []string{"New"}, true}
		}
		defer gz.Close()
		in = gz
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, CError{"Can't decompress: " + err.Error(), name, []string{"New"}, true}
		}
		defer zr.Close()
		in = zr
	}
	return read(bufio.NewReader(in), name, PeriodicTable)
}

//Read parses a .gro file from an io.Reader and returns the model.
func Read(r io.Reader) (*GroObj, error) {
	return read(bufio.NewReader(r), "", PeriodicTable)
}

//Title returns the title/comment line of the first frame of the file.
func (G *GroObj) Title() string { return G.title }

//FrameCount returns the number of complete frames read.
func (G *GroObj) FrameCount() int { return len(G.frames) }

//Topology returns the per-atom topology recovered from the first frame.
func (G *GroObj) Topology() *Topology { return G.top }

//Atom returns the Atom corresponding to the index i. Panics if out of range.
func (G *GroObj) Atom(i int) *Atom { return G.top.Atom(i) }

//Len returns the number of atoms per frame.
func (G *GroObj) Len() int { return G.top.Len() }

//AtomNames returns the name of each atom stored in the file, in order.
func (G *GroObj) AtomNames() []string {
	ret := make([]string, G.Len())
	for i := range ret {
		ret[i] = G.top.Atom(i).Name
	}
	return ret
}

//ResidueIDs returns the ID of the residue each atom belongs to, in order.
func (G *GroObj) ResidueIDs() []int {
	ret := make([]int, G.Len())
	for i := range ret {
		ret[i] = G.top.Atom(i).MolID
	}
	return ret
}

//ResidueNames returns the name of the residue each atom belongs to, in order.
func (G *GroObj) ResidueNames() []string {
	ret := make([]string, G.Len())
	for i := range ret {
		ret[i] = G.top.Atom(i).MolName
	}
	return ret
}

//Symbols returns the element symbol inferred for each atom, in order. Atoms
//whose name couldn't be resolved to an element get an empty string.
func (G *GroObj) Symbols() []string {
	ret := make([]string, G.Len())
	for i := range ret {
		ret[i] = G.top.Atom(i).Symbol
	}
	return ret
}

//Positions returns the positions of the given frame, in nm, as one 3D vector
//per atom. The returned slice is a view of the GroObj's own data and must
//not be written to. Panics if frame is out of range.
func (G *GroObj) Positions(frame int) [][3]float64 {
	if frame < 0 || frame >= len(G.frames) {
		panic(fmt.Sprintf("Frame requested (%d) out of range", frame))
	}
	return G.frames[frame]
}

//Coords returns the positions of the first frame, regardless of how many
//frames the file contains.
func (G *GroObj) Coords() [][3]float64 {
	return G.Positions(0)
}

//PositionsMatrix returns the positions of the given frame as a v3.Matrix.
//The matrix for each frame is built on the first request and cached, so
//later calls return the same object. It holds the same values as Positions
//and must not be written to.
func (G *GroObj) PositionsMatrix(frame int) (*v3.Matrix, error) {
	if frame < 0 || frame >= len(G.frames) {
		return nil, CError{fmt.Sprintf("Frame requested (%d) out of range", frame), G.filename, []string{"PositionsMatrix"}, true}
	}
	if G.matrices == nil {
		G.matrices = make([]*v3.Matrix, len(G.frames))
	}
	if G.matrices[frame] == nil {
		data := make([]float64, 0, len(G.frames[frame])*3)
		for _, v := range G.frames[frame] {
			data = append(data, v[0], v[1], v[2])
		}
		m, err := v3.NewMatrix(data)
		if err != nil {
			return nil, errDecorate(err, "PositionsMatrix")
		}
		G.matrices[frame] = m
	}
	return G.matrices[frame], nil
}

//UnitCellDimensions returns the box of the given frame as it appeared in the
//file: either 3 orthorhombic edge lengths or the full 9-value triclinic
//tensor, in nm. Panics if frame is out of range.
func (G *GroObj) UnitCellDimensions(frame int) []float64 {
	if frame < 0 || frame >= len(G.boxes) {
		panic(fmt.Sprintf("Frame requested (%d) out of range", frame))
	}
	return G.boxes[frame]
}

//UnitCellLengths is UnitCellDimensions with the values tagged as nm lengths.
func (G *GroObj) UnitCellLengths(frame int) []Nm {
	box := G.UnitCellDimensions(frame)
	ret := make([]Nm, len(box))
	for i, v := range box {
		ret[i] = Nm(v)
	}
	return ret
}

/******************************************
//The following implement the Traj interface
**********************************************/

//Readable returns true if the object is ready to have frames read from it.
func (G *GroObj) Readable() bool {
	return G.readable
}

//Next fills output with the positions of the next frame, or discards the
//frame if output is nil. If a box slice is given, it is filled with as many
//of the frame's box values as it has room for. Returns a LastFrameError
//once every frame has been read.
func (G *GroObj) Next(output *v3.Matrix, box ...[]float64) error {
	if !G.readable {
		return CError{TrajUnIni, G.filename, []string{"Next"}, true}
	}
	if G.current >= len(G.frames) {
		G.readable = false
		return newlastFrameError(G.filename, "Next")
	}
	if output != nil {
		if output.NVecs() < G.Len() {
			return CError{NotEnoughSpace, G.filename, []string{"Next"}, true}
		}
		for i, v := range G.frames[G.current] {
			output.Set(i, 0, v[0])
			output.Set(i, 1, v[1])
			output.Set(i, 2, v[2])
		}
	}
	if len(box) > 0 {
		copy(box[0], G.boxes[G.current])
	}
	G.current++
	return nil
}

/**End Traj interface implementation***********/

//Errors

//errDecorate is a helper function that asserts that the error implements
//Error and decorates the error with the caller's name before returning it.
//If used with any other error type, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//CError is the concrete error type of the package. It fulfills the Error and
//TrajError interfaces.
type CError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err CError) Error() string {
	return fmt.Sprintf(".gro file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E CError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing parse was associated
func (err CError) FileName() string { return err.filename }

//Format returns the format of the file (always "gro") associated to the error
func (err CError) Format() string { return "gro" }

//Critical returns true if the error is critical, false otherwise
func (err CError) Critical() bool { return err.critical }

const (
	TrajUnIni      = "Traj object uninitialized to read"
	UnableToOpen   = "Unable to open file"
	UnexpectedLine = "Unexpected line in .gro file"
	NoFrames       = "No complete frames in .gro file"
	NotEnoughSpace = "Not enough space in passed blocks"
	EOF            = "EOF"
)

//lastFrameError implements LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "gro" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
