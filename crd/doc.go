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
Package crd reads the ASCII coordinate files that accompany Amber topologies:
the restart/inpcrd file (one set of coordinates, optional velocities and
periodic box) and the mdcrd trajectory (a sequence of frames, each optionally
followed by box lengths). Both are fixed-format files and are decoded with the
fortfmt package. Writing is not supported.
*/
package crd
