/*
 * plot_test.go, part of goGro.
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

package groplot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/gogro"
)

const waters = `Shrinking box t=   0.00000
    1
    1SOL     OW    1   0.126   1.624   1.679
   1.90000   1.90000   1.90000
Shrinking box t=   1.00000
    1
    1SOL     OW    1   0.120   1.620   1.670
   1.86206   1.86206   1.86206
`

func TestBoxEvolution(Te *testing.T) {
	g, err := gro.Read(strings.NewReader(waters))
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "box.png")
	if err := BoxEvolution(g, name); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil {
		Te.Fatal("Plot file not written:", err)
	}
	if info.Size() == 0 {
		Te.Error("Plot file is empty")
	}
	if err := BoxEvolution(nil, name); err == nil {
		Te.Error("Plotting a nil trajectory didn't fail")
	}
}
