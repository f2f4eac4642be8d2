/*
 * strip.go, part of goParm.
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

	"github.com/rmera/goparm/mask"
	"github.com/rmera/goparm/parm"
	"github.com/spf13/cobra"
)

var (
	keep     bool
	showDiff bool
)

var stripCmd = &cobra.Command{
	Use:   "strip <prmtop> <mask> <output>",
	Short: "Remove the atoms selected by a mask",
	Long: `Remove the atoms selected by a mask from a topology and write the
result. Bonded terms, exclusions, residues and molecules are updated.
The output is compressed if its name ends in .gz or .zst.

Examples:
  parmtool strip solvated.prmtop ':WAT,Na+,Cl-' dry.prmtop
  parmtool strip --keep complex.prmtop ':LIG' ligand.prmtop`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		T, coords, err := load(args[0])
		if err != nil {
			return err
		}
		sel, err := mask.Select(T, coords, args[1])
		if err != nil {
			return err
		}
		n := len(mask.Indexes(sel))
		S := T
		if keep {
			if S, err = T.Subset(sel); err != nil {
				return err
			}
			n = T.NAtoms() - n
		} else if err = S.Strip(sel); err != nil {
			return err
		}
		if err := parm.Save(S, args[2]); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Removed %s, %s left in %s\n", plural(n, "atom"), plural(S.NAtoms(), "atom"), plural(S.NResidues(), "residue"))
		if showDiff {
			orig, _, err := load(args[0])
			if err != nil {
				return err
			}
			d, err := parm.Diff(orig, S)
			if err != nil {
				return err
			}
			fmt.Fprint(out, d)
		}
		return nil
	},
}

func init() {
	addCoordFlag(stripCmd)
	stripCmd.Flags().BoolVarP(&keep, "keep", "k", false, "keep the selected atoms and remove the rest")
	stripCmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff between the input and the output")
	rootCmd.AddCommand(stripCmd)
}
