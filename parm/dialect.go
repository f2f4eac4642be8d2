/*
 * dialect.go, part of goParm.
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

package parm

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml"
)

//go:embed dialects.toml
var defaultDialectsTOML []byte

var defaultDialects *DialectSet

func init() {
	var err error
	defaultDialects, err = parseDialects(defaultDialectsTOML)
	if err != nil {
		panic("parm: invalid embedded dialect table: " + err.Error())
	}
}

// TermList describes a list of bonded terms specific to a dialect.
type TermList struct {
	Name             string `toml:"name"`
	Section          string `toml:"section"`
	CountSection     string `toml:"count_section"`
	CountIndex       int    `toml:"count_index"`
	TypeCountSection string `toml:"type_count_section"`
	TypeCountIndex   int    `toml:"type_count_index"`
	Atoms            int    `toml:"atoms"`
	Stride           int    `toml:"stride"`
	Encoding         string `toml:"encoding"`
}

func (L TermList) scale() int {
	if L.Encoding == "three" {
		return 3
	}
	return 1
}

// AtomArray describes a section with Stride values per atom.
type AtomArray struct {
	Section      string `toml:"section"`
	Stride       int    `toml:"stride"`
	CountSection string `toml:"count_section"`
	CountIndex   int    `toml:"count_index"`
	AtomIndex    bool   `toml:"atom_index"`
}

// Dialect is one variant of the topology format.
type Dialect struct {
	Name        string      `toml:"name"`
	Description string      `toml:"description"`
	Title       string      `toml:"title"`
	Markers     []string    `toml:"markers"`
	Forbidden   []string    `toml:"forbidden"`
	Required    []string    `toml:"required"`
	TermLists   []TermList  `toml:"term_list"`
	AtomArrays  []AtomArray `toml:"atom_array"`
}

// DialectSet is an ordered table of dialects.
type DialectSet struct {
	Dialects []Dialect `toml:"dialect"`
}

// DefaultDialects returns the dialect table compiled into the package:
// amber, chamber and amoeba.
func DefaultDialects() *DialectSet {
	return defaultDialects
}

// ReadDialects reads a dialect table in TOML from r.
func ReadDialects(r io.Reader) (*DialectSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parm: can't read dialect table: %w", err)
	}
	return parseDialects(data)
}

func parseDialects(data []byte) (*DialectSet, error) {
	D := new(DialectSet)
	if err := toml.Unmarshal(data, D); err != nil {
		return nil, fmt.Errorf("parm: can't decode dialect table: %w", err)
	}
	if len(D.Dialects) == 0 {
		return nil, fmt.Errorf("parm: empty dialect table")
	}
	seen := make(map[string]bool)
	for _, d := range D.Dialects {
		if d.Name == "" || seen[d.Name] {
			return nil, fmt.Errorf("parm: dialect table: empty or repeated dialect name %q", d.Name)
		}
		seen[d.Name] = true
		for _, l := range d.TermLists {
			if l.Section == "" || l.Atoms < 1 || l.Stride < l.Atoms || (l.Encoding != "one" && l.Encoding != "three") {
				return nil, fmt.Errorf("parm: dialect %s: invalid term list %q", d.Name, l.Name)
			}
		}
		for _, a := range d.AtomArrays {
			if a.Section == "" || a.Stride < 1 {
				return nil, fmt.Errorf("parm: dialect %s: invalid atom array %q", d.Name, a.Section)
			}
		}
	}
	return D, nil
}

// Get returns the dialect called name.
func (D *DialectSet) Get(name string) (Dialect, bool) {
	for _, v := range D.Dialects {
		if v.Name == name {
			return v, true
		}
	}
	return Dialect{}, false
}

// Detect picks the dialect of a file from its %VERSION line and the names
// of its sections. The file name plays no part. It returns an
// *UnrecognizedDialectError if no dialect matches; in that case Closest
// names the dialect that the sections would fit if they weren't missing
// some, when there is one.
func (D *DialectSet) Detect(version string, names []string) (Dialect, error) {
	has := make(map[string]bool, len(names))
	for _, v := range names {
		has[v] = true
	}
	best := -1
	closest, closestMissing, closestHave := -1, []string(nil), 0
	for i, d := range D.Dialects {
		if !allIn(d.Markers, has) || anyIn(d.Forbidden, has) {
			continue
		}
		var missing []string
		for _, r := range d.Required {
			if !has[r] {
				missing = append(missing, r)
			}
		}
		if len(missing) == 0 {
			if best < 0 || len(d.Markers) > len(D.Dialects[best].Markers) {
				best = i
			}
			continue
		}
		have := len(d.Required) - len(missing)
		if have > closestHave {
			closest, closestMissing, closestHave = i, missing, have
		}
	}
	if best >= 0 {
		return D.Dialects[best], nil
	}
	err := &UnrecognizedDialectError{Version: strings.TrimSpace(version)}
	if closest >= 0 {
		err.Closest = D.Dialects[closest].Name
		err.Missing = closestMissing
	}
	return Dialect{}, err
}

func allIn(s []string, m map[string]bool) bool {
	for _, v := range s {
		if !m[v] {
			return false
		}
	}
	return true
}

func anyIn(s []string, m map[string]bool) bool {
	for _, v := range s {
		if m[v] {
			return true
		}
	}
	return false
}

// Capability is a set of optional section groups present in a topology.
type Capability uint32

const (
	Box Capability = 1 << iota
	Cap
	Polarizability
	ScaleFactors
	ChainIDs
	ResidueNumbers
	AtomicNumbers
	Radii
	UreyBradley
	Impropers
	CMAP
	LJ14
	Multipoles
)

var capabilityNames = []string{"box", "cap", "polarizability", "scale-factors", "chain-ids",
	"residue-numbers", "atomic-numbers", "radii", "urey-bradley", "impropers", "cmap", "lj14", "multipoles"}

// capabilitySections lists, for each capability, sections any of which
// being present enables it.
var capabilitySections = map[Capability][]string{
	Box:            {sBox},
	Cap:            {sCapInfo},
	Polarizability: {sPolarizability, "AMOEBA_POLARIZABILITY_LIST"},
	ScaleFactors:   {sSCEE, sSCNB},
	ChainIDs:       {sChainID},
	ResidueNumbers: {sResNumber},
	AtomicNumbers:  {sAtomicNumber, "AMOEBA_ATOMIC_NUMBER"},
	Radii:          {sRadii, sScreen},
	UreyBradley:    {"CHARMM_UREY_BRADLEY", "AMOEBA_UREY_BRADLEY_BOND_LIST"},
	Impropers:      {"CHARMM_IMPROPERS"},
	CMAP:           {"CHARMM_CMAP_INDEX"},
	LJ14:           {sLJ14A},
	Multipoles:     {"AMOEBA_LOCAL_FRAME_MULTIPOLES_LIST"},
}

func capabilitiesOf(T *SectionTable) Capability {
	var c Capability
	for k, v := range capabilitySections {
		for _, s := range v {
			if T.Has(s) {
				c |= k
				break
			}
		}
	}
	return c
}

// Has returns true if all the capabilities in o are in C.
func (C Capability) Has(o Capability) bool {
	return C&o == o
}

func (C Capability) String() string {
	var ret []string
	for i, v := range capabilityNames {
		if C&(1<<i) != 0 {
			ret = append(ret, v)
		}
	}
	if len(ret) == 0 {
		return "none"
	}
	return strings.Join(ret, ",")
}
