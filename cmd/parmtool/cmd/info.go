/*
 * info.go, part of goParm.
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

package cmd

import (
	"fmt"
	"strings"

	"github.com/rmera/goparm/parm"
	"github.com/spf13/cobra"
)

var showPointers bool

var infoCmd = &cobra.Command{
	Use:   "info <prmtop>",
	Short: "Print a summary of a topology",
	Long: `Print the title, dialect, sizes, net charge, box and molecules of a
topology.

Examples:
  parmtool info complex.prmtop
  parmtool info -p solvated.prmtop.gz`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		T, _, err := load(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Title:     %s\n", T.Title())
		fmt.Fprintf(out, "Dialect:   %s\n", T.Dialect().Name)
		fmt.Fprintf(out, "Sections:  %s\n", T.Capabilities())
		fmt.Fprintf(out, "Size:      %s in %s, %s\n", plural(T.NAtoms(), "atom"), plural(T.NResidues(), "residue"), plural(T.NTypes(), "atom type"))
		fmt.Fprintf(out, "Terms:     %s, %s, %s\n", plural(len(T.Bonds()), "bond"), plural(len(T.Angles()), "angle"), plural(len(T.Dihedrals()), "dihedral"))
		for _, l := range T.Dialect().TermLists {
			if terms, ok := T.Terms(l.Name); ok {
				fmt.Fprintf(out, "           %d %s terms (%s)\n", len(terms), l.Name, l.Section)
			}
		}
		fmt.Fprintf(out, "Charge:    %.4f\n", T.TotalCharge())
		if box := T.Box(); box != nil {
			fmt.Fprintf(out, "Box:       %.3f %.3f %.3f  %.2f %.2f %.2f\n", box[0], box[1], box[2], box[3], box[4], box[5])
		}
		fmt.Fprintf(out, "Molecules: %s\n", molecules(T))
		if showPointers {
			fmt.Fprintln(out, "Pointers:")
			for i, v := range T.Pointers() {
				fmt.Fprintf(out, "  %-8s %d\n", parm.PointerName(i), v)
			}
		}
		return nil
	},
}

// molecules summarizes the molecules of T as runs of equal sizes.
func molecules(T *parm.Topology) string {
	mols := T.Molecules()
	var parts []string
	for i := 0; i < len(mols); {
		j := i
		for j < len(mols) && len(mols[j]) == len(mols[i]) {
			j++
		}
		if j-i == 1 {
			parts = append(parts, fmt.Sprintf("%d atoms", len(mols[i])))
		} else {
			parts = append(parts, fmt.Sprintf("%d x %d atoms", j-i, len(mols[i])))
		}
		i = j
	}
	return fmt.Sprintf("%d (%s)", len(mols), strings.Join(parts, ", "))
}

func init() {
	infoCmd.Flags().BoolVarP(&showPointers, "pointers", "p", false, "print the POINTERS section")
	rootCmd.AddCommand(infoCmd)
}
