/*
 * plot.go, part of goParm.
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

	"github.com/rmera/goparm/parmplot"
	"github.com/spf13/cobra"
)

var plotCmd = &cobra.Command{
	Use:   "plot <prmtop> <image>",
	Short: "Plot the net charge of each residue",
	Long: `Draw a bar chart with the net charge of each residue of a topology.
The image format is taken from the extension of the output name.

Example:
  parmtool plot complex.prmtop charges.png`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		T, _, err := load(args[0])
		if err != nil {
			return err
		}
		if err := parmplot.SaveResidueCharges(T, args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Charges of %s plotted in %s\n", plural(T.NResidues(), "residue"), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
}
