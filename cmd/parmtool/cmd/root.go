/*
 * root.go, part of goParm.
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
	"io"
	"log"
	"os"

	"github.com/rmera/goparm/parm"
	v3 "github.com/rmera/goparm/v3"
	"github.com/spf13/cobra"
)

var (
	dialectFile string
	coordFile   string
	verbose     bool
	dialects    *parm.DialectSet
	logger      = log.New(os.Stderr, "parmtool: ", 0)
)

var rootCmd = &cobra.Command{
	Use:   "parmtool",
	Short: "Inspect, edit and check Amber topology files",
	Long: `parmtool reads Amber topology (prmtop) files in the amber, chamber
and amoeba dialects, compressed or not, and prints information about
them, selects atoms with masks, strips atoms, checks that files are
reproduced exactly, and plots residue charges.

Additional dialects can be described in a TOML table given with
--dialects.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if !verbose {
			log.SetOutput(io.Discard)
		}
		if dialectFile == "" {
			return nil
		}
		f, err := os.Open(dialectFile)
		if err != nil {
			return err
		}
		defer f.Close()
		dialects, err = parm.ReadDialects(f)
		return err
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dialectFile, "dialects", "d", "", "TOML file with the dialect table to use")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print warnings from the readers")
}

// load reads the topology name with the dialect table in use, and the
// coordinates given with --crd, if any.
func load(name string) (*parm.Topology, *v3.Matrix, error) {
	T, coords, err := parm.LoadWith(dialects, name, coordFile)
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		logger.Printf("read %s: %d atoms, %s dialect", name, T.NAtoms(), T.Dialect().Name)
	}
	return T, coords, nil
}

// addCoordFlag adds the --crd flag to c.
func addCoordFlag(c *cobra.Command) {
	c.Flags().StringVarP(&coordFile, "crd", "c", "", "inpcrd or restart file with coordinates")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
