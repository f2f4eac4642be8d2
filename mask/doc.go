/*
 * doc.go, part of goParm.
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

/*
Package mask implements the Amber atom selection language. A mask is
compiled once and evaluated against a topology, giving one boolean per
atom.

Selectors:

	:list     residues, by name or 1-based number (:ALA, :1-3, :WAT,NA+)
	@list     atoms, by name or 1-based number (@CA, @1-20, @H*)
	@%list    atoms by force field type (@%CT,HC)
	@/list    atoms by element (@/C,N)
	*         all the atoms

Names may carry the wildcards * and ?, and are matched ignoring case. A
residue selector followed by an atom selector, with nothing between them,
selects the atoms that match both (:ALA@CA).

Operators, from lowest to highest precedence, are | (or), & (and), and the
prefix operators ! (not), <d (within d Angstroms of any selected atom) and
>d (farther than d Angstroms from every selected atom). Parentheses group.
Only the distance operators need coordinates.
*/
package mask
