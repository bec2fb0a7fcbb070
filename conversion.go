/*
 * conversion.go, part of goGro.
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

//This provides useful conversion factors and unit-tagged types.
//The .gro format stores lengths in nm, and so does this library.
//Nothing here is used by the parser itself.

//Conversions
const (
	Nm2A = 10.0
	A2Nm = 1 / 10.0
)

//Nm is a length in nanometers, the length unit of the .gro format.
type Nm float64

//A returns the length in Angstroms.
func (l Nm) A() float64 {
	return float64(l) * Nm2A
}
