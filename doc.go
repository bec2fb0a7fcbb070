/*
 * doc.go, part of goGro.
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

/*Package gro reads GROMACS .gro structure files into an in-memory model.

	**goGro capabilities**

    Reads single- and multi-frame (trajectory) .gro files, in both the
	strict fixed-column and the whitespace-flexible layouts of the format.

    Transparently reads gzip- and zstd-compressed .gro files.

    Recovers the per-atom topology (residue ids and names, atom names,
	inferred element symbols) from the first frame of the file.

    Gives access to the positions of each frame both as plain vectors and
	as a gonum-backed v3.Matrix, and to the unit cell (box) of each frame,
	either as 3 orthorhombic lengths or as the full 9-value triclinic form.

    A parsed file satisfies the Traj interface, so it can be consumed
	frame by frame like any other trajectory.

All coordinate and box values are in nm, as mandated by the format. No unit
conversion is performed; the conversion constants and the Nm type are provided
for the convenience of the caller.

goGro represents coordinates with the v3.Matrix type, based on gonum's Dense.
Each row of a v3.Matrix represents one point in space.*/
package gro
