/*
 * atomicdata.go, part of goGro.
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

//ElementTable maps 1-2 letter element symbols to atomic masses.
//A table is meant to be built once and never written to afterwards.
type ElementTable map[string]float64

//Mass returns the atomic mass for the given element symbol, and whether
//the symbol is part of the table. It never fails on unknown input.
func (t ElementTable) Mass(symbol string) (float64, bool) {
	m, ok := t[symbol]
	return m, ok
}

//PeriodicTable is the element table used by default when reading files.
//Note that just common "bio-elements" are present.
var PeriodicTable = ElementTable{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Cr": 51.996,
	"Si": 28.08,
	"Be": 9.012,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}
