/*
 * check.go, part of goParm.
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
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/rmera/goparm/parm"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <prmtop>...",
	Short: "Check that topologies are read and written back exactly",
	Long: `Read each topology, write it back and compare the result with the
original file byte for byte. The POINTERS section is checked against the
contents of the file, and the excluded atoms against those derived from
the bonds.

Example:
  parmtool check *.prmtop`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, name := range args {
			if err := check(cmd.OutOrStdout(), name); err != nil {
				logger.Printf("%s: %v", name, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func check(out io.Writer, name string) error {
	f, err := parm.Open(name)
	if err != nil {
		return err
	}
	raw, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return err
	}
	d, err := parm.RoundTripDiff(raw, dialects)
	if err != nil {
		return err
	}
	if d != "" {
		fmt.Fprint(out, d)
		return fmt.Errorf("not reproduced byte for byte")
	}
	T, err := parm.ReadTopology(bytes.NewReader(raw), dialects)
	if err != nil {
		return err
	}
	if err := T.CheckPointers(); err != nil {
		return err
	}
	//Extra points and amoeba topologies don't follow the 1-2/1-3/1-4 rule.
	if extra, _ := T.Pointer("NUMEXTRA"); T.Dialect().Name != "amoeba" && extra == 0 {
		derived := T.DerivedExclusions()
		bad := 0
		for i := range derived {
			if !slices.Equal(derived[i], T.ExcludedAtoms(i)) {
				bad++
			}
		}
		if bad > 0 {
			fmt.Fprintf(out, "%s: %s with exclusions not derived from the bonds\n", name, plural(bad, "atom"))
		}
	}
	fmt.Fprintf(out, "%s: OK (%s, %s)\n", name, T.Dialect().Name, plural(T.NAtoms(), "atom"))
	return nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
