/*
 * atom.go, part of goGro.
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

import "fmt"

//Atom contains the per-atom data read from a .gro file, except for the
//coordinates, which are kept per frame in the GroObj.
//A .gro file contains some topological information, such as elements and
//residue names, but not enough to construct a full force-field topology.
type Atom struct {
	Name    string //atom name, for instance "HW1"
	ID      int    //the atom index given in the file
	MolName string //the name of the residue the atom belongs to
	MolID   int    //the ID of the residue the atom belongs to
	Symbol  string //chemical element, inferred from Name. Empty if the inference failed.
	Mass    float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	Newat := new(Atom)
	*Newat = *A
	return Newat
}

/*****Topology type***/

//Topology contains information about a molecule which is not expected
//to change in time, i.e. everything except for coordinates.
type Topology struct {
	Atoms    []*Atom
	charge   int
	unpaired int
}

//NewTopology returns a topology with the given atoms, charge and
//unpaired electrons. It returns an error if given nil atoms.
//It doesn't check for consistency of the charge or unpaired electrons.
func NewTopology(charge, unpaired int, ats []*Atom) (*Topology, error) {
	if ats == nil {
		return nil, fmt.Errorf("Supplied a nil Atom slice")
	}
	top := new(Topology)
	top.Atoms = ats
	top.charge = charge
	top.unpaired = unpaired
	return top, nil
}

//Charge gets the total charge of the topology
func (T *Topology) Charge() int {
	return T.charge
}

//Unpaired gets the number of unpaired electrons in the topology
func (T *Topology) Unpaired() int {
	return T.unpaired
}

//Atom returns the Atom corresponding to the index i
//of the Atom slice in the Topology. Panics if
//out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

//SomeAtoms returns a new Topology with the atoms of T at the indexes given
//in atomlist, in that order. The atoms are shared with T, not copied.
func (T *Topology) SomeAtoms(atomlist []int) (*Topology, error) {
	ret := make([]*Atom, 0, len(atomlist))
	for k, j := range atomlist {
		if j < 0 || j >= T.Len() {
			return nil, fmt.Errorf("Atom requested (number: %d, value: %d) out of range", k, j)
		}
		ret = append(ret, T.Atoms[j])
	}
	return NewTopology(T.charge, T.unpaired, ret)
}

//Masses returns a slice with the masses of all atoms, or an error if
//any of them has not been assigned.
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		thisatom := T.Atom(i)
		if thisatom.Mass == 0 {
			return nil, fmt.Errorf("Not all the masses have been obtained: %d %v", i, thisatom)
		}
		mass[i] = thisatom.Mass
	}
	return mass, nil
}
