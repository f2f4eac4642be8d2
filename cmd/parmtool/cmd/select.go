/*
 * select.go, part of goParm.
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
	"errors"
	"fmt"

	"github.com/rmera/goparm/crd"
	"github.com/rmera/goparm/mask"
	"github.com/rmera/goparm/parm"
	v3 "github.com/rmera/goparm/v3"
	"github.com/spf13/cobra"
)

var (
	trajFile  string
	countOnly bool
)

var selectCmd = &cobra.Command{
	Use:   "select <prmtop> <mask>",
	Short: "Print the atoms selected by a mask",
	Long: `Print the atoms of a topology selected by an Amber mask, one per line
with their 1-based number, name, type and residue.

Distance operators (<d and >d) need coordinates, given with --crd. With
--traj, the mask is evaluated for each frame of an mdcrd trajectory and
the number of selected atoms per frame is printed.

Examples:
  parmtool select complex.prmtop ':1-10&@CA'
  parmtool select -c complex.rst7 complex.prmtop ':WAT & <5.0 :LIG'
  parmtool select -t md.mdcrd complex.prmtop ':WAT@O & <3.5 :LIG'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		T, coords, err := load(args[0])
		if err != nil {
			return err
		}
		m, err := mask.Compile(args[1])
		if err != nil {
			return err
		}
		if trajFile != "" {
			return selectTraj(cmd, T, m)
		}
		sel, err := m.Evaluate(T, coords)
		if err != nil {
			return err
		}
		idx := mask.Indexes(sel)
		out := cmd.OutOrStdout()
		if countOnly {
			fmt.Fprintln(out, len(idx))
			return nil
		}
		for _, i := range idx {
			r := T.ResidueOf(i)
			fmt.Fprintf(out, "%8d %-4s %-4s %-4s %6d\n", i+1, T.AtomName(i), T.AtomType(i), T.ResidueName(r), r+1)
		}
		logger.Printf("%s selected by %s", plural(len(idx), "atom"), m)
		return nil
	},
}

// selectTraj evaluates m on each frame of the trajectory given with
// --traj, and prints the number of atoms selected in each frame.
func selectTraj(cmd *cobra.Command, T *parm.Topology, m *mask.Mask) error {
	traj, err := crd.OpenTraj(trajFile, T.NAtoms(), T.Has(parm.Box))
	if err != nil {
		return err
	}
	defer traj.Close()
	coords := v3.Zeros(T.NAtoms())
	out := cmd.OutOrStdout()
	//masks don't use periodic images, so the box line of each frame is
	//skipped.
	for frame := 1; ; frame++ {
		err := traj.Next(coords)
		if err != nil {
			var last crd.LastFrameError
			if errors.As(err, &last) {
				return nil
			}
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		sel, err := m.Evaluate(T, coords)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%8d %8d\n", frame, len(mask.Indexes(sel)))
	}
}

func init() {
	addCoordFlag(selectCmd)
	selectCmd.Flags().StringVarP(&trajFile, "traj", "t", "", "mdcrd trajectory to evaluate the mask on")
	selectCmd.Flags().BoolVarP(&countOnly, "count", "n", false, "print only the number of selected atoms")
	rootCmd.AddCommand(selectCmd)
}
