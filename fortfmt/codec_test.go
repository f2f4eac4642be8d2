/*
 * codec_test.go, part of goParm.
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

package fortfmt

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func TestParse(Te *testing.T) {
	cases := []struct {
		spec                string
		repeat, width, prec int
		kind                Kind
		verb                byte
		str                 string
	}{
		{"%FORMAT(10I8)", 10, 8, 0, Int, 'I', "(10I8)"},
		{"(5E16.8)", 5, 16, 8, Float, 'E', "(5E16.8)"},
		{"20a4", 20, 4, 0, String, 'A', "(20a4)"},
		{"(8(F9.5))", 8, 9, 5, Float, 'F', "(8(F9.5))"},
		{"(a80)", 1, 80, 0, String, 'A', "(a80)"},
		{"%FORMAT(3I8)   ", 3, 8, 0, Int, 'I', "(3I8)"},
	}
	for _, c := range cases {
		F, err := Parse(c.spec)
		if err != nil {
			Te.Fatalf("%s: %v", c.spec, err)
		}
		if F.Repeat != c.repeat || F.Width != c.width || F.Precision != c.prec || F.Kind != c.kind || F.Verb != c.verb {
			Te.Errorf("%s parsed as %+v", c.spec, F)
		}
		if F.String() != c.str {
			Te.Errorf("%s: String() gave %s, expected %s", c.spec, F.String(), c.str)
		}
	}
	for _, bad := range []string{"(i2,a78)", "(10X8)", "((10I8)", "(0I8)", ""} {
		_, err := Parse(bad)
		var pe *ParseError
		if !errors.As(err, &pe) {
			Te.Errorf("%q should fail with a ParseError, got %v", bad, err)
		}
	}
}

func TestDecodeInts(Te *testing.T) {
	F := MustParse("(10I8)")
	raw := "       1       2       3       4       5       6       7       8       9      10\n" +
		"      11     -12\n"
	A, err := F.Decode(raw)
	if err != nil {
		Te.Fatal(err)
	}
	exp := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, -12}
	if !slices.Equal(A.Ints, exp) {
		Te.Errorf("got %v, expected %v", A.Ints, exp)
	}
	out, err := F.Encode(A)
	if err != nil {
		Te.Fatal(err)
	}
	if out != raw {
		Te.Errorf("round trip changed the text:\n%q\n%q", raw, out)
	}
}

func TestDecodeFloats(Te *testing.T) {
	F := MustParse("(5E16.8)")
	raw := "  1.00000000E+00 -3.32799898E+02  1.20100000E+01  1.00800000E+00  0.00000000E+00\n" +
		"  6.02214086E+23\n"
	A, err := F.Decode(raw)
	if err != nil {
		Te.Fatal(err)
	}
	if len(A.Floats) != 6 || A.Floats[1] != -332.799898 || A.Floats[5] != 6.02214086e23 {
		Te.Errorf("unexpected values %v", A.Floats)
	}
	out, err := F.Encode(A)
	if err != nil {
		Te.Fatal(err)
	}
	if out != raw {
		Te.Errorf("round trip changed the text:\n%q\n%q", raw, out)
	}
	//Fortran double-precision exponents are read too.
	D, err := F.Decode("  1.50000000D+00")
	if err != nil || D.Floats[0] != 1.5 {
		Te.Errorf("D exponent: %v %v", D.Floats, err)
	}
}

func TestDecodeStringsShortLine(Te *testing.T) {
	F := MustParse("(20a4)")
	//The last field has been stripped of its trailing blanks.
	A, err := F.Decode("N   H1  CA  C\n")
	if err != nil {
		Te.Fatal(err)
	}
	exp := []string{"N", "H1", "CA", "C"}
	if !slices.Equal(A.Strings, exp) {
		Te.Errorf("got %q, expected %q", A.Strings, exp)
	}
	out, _ := F.Encode(A)
	if out != "N   H1  CA  C   \n" {
		Te.Errorf("unexpected encoding %q", out)
	}
	//DecodeN restores blank values lost from the end of the last line.
	B, err := F.DecodeN([]string{"N   H1  "}, 3)
	if err != nil {
		Te.Fatal(err)
	}
	if len(B.Strings) != 3 || B.Strings[2] != "" {
		Te.Errorf("DecodeN gave %q", B.Strings)
	}
}

func TestEmptyRecord(Te *testing.T) {
	F := MustParse("(5E16.8)")
	out, err := F.Encode(Floats(nil))
	if err != nil || out != "\n" {
		Te.Errorf("empty record should be one blank line, got %q %v", out, err)
	}
	A, err := F.Decode(out)
	if err != nil || A.Len() != 0 {
		Te.Errorf("blank line should decode to nothing, got %v %v", A, err)
	}
}

func TestFieldOverflow(Te *testing.T) {
	F := MustParse("(10I8)")
	_, err := F.Encode(Ints([]int{1, 123456789}))
	var fo *FieldOverflowError
	if !errors.As(err, &fo) {
		Te.Fatalf("expected a FieldOverflowError, got %v", err)
	}
	if fo.Position != 1 || fo.Width != 8 || fo.Value != "123456789" {
		Te.Errorf("unexpected error contents %+v", fo)
	}
	fmt.Println(err)
	N := MustParse("(20a4)")
	if _, err = N.Encode(Strings([]string{"CA", "HD11X"})); !errors.As(err, &fo) {
		Te.Errorf("a 5-character name in a4 should overflow, got %v", err)
	}
	G := MustParse("(5F8.3)")
	if _, err = G.Encode(Floats([]float64{123456.5})); !errors.As(err, &fo) {
		Te.Errorf("123456.500 doesn't fit in F8.3, got %v", err)
	}
}

func TestBadField(Te *testing.T) {
	F := MustParse("(10I8)")
	_, err := F.Decode("       1      x2\n")
	var pe *ParseError
	if !errors.As(err, &pe) {
		Te.Fatalf("expected a ParseError, got %v", err)
	}
	if pe.Line != 0 || pe.Field != 1 {
		Te.Errorf("wrong position in error: %+v", pe)
	}
	if _, err = F.Encode(Floats([]float64{1})); err == nil {
		Te.Errorf("encoding floats with an integer format should fail")
	}
}

func TestRoundTripLaw(Te *testing.T) {
	fs := []*Format{MustParse("(5E16.8)"), MustParse("(6F12.7)"), MustParse("(10F8.3)")}
	vals := []float64{0, 1.5, -2.25, 10.125, 99.5, -0.5, 3.75}
	for _, F := range fs {
		s, err := F.Encode(Floats(vals))
		if err != nil {
			Te.Fatal(err)
		}
		A, err := F.Decode(s)
		if err != nil {
			Te.Fatal(err)
		}
		if !slices.Equal(A.Floats, vals) {
			Te.Errorf("%s: %v became %v", F, vals, A.Floats)
		}
	}
	F := MustParse("(20a4)")
	names := []string{"C1", "H1", "N", "", "CA", "HD21"}
	s, err := F.Encode(Strings(names))
	if err != nil {
		Te.Fatal(err)
	}
	A, err := F.Decode(s)
	if err != nil {
		Te.Fatal(err)
	}
	if !slices.Equal(A.Strings, names) {
		Te.Errorf("%v became %v", names, A.Strings)
	}
	if again, err := F.Encode(A); err != nil || again != s {
		Te.Errorf("%q re-encoded as %q (%v)", s, again, err)
	}
	//trailing blanks are field padding, not part of the value.
	A, err = F.Decode(encodeStrings(Te, F, []string{"O ", "H1"}))
	if err != nil {
		Te.Fatal(err)
	}
	if !slices.Equal(A.Strings, []string{"O", "H1"}) {
		Te.Errorf("trailing blanks kept: %q", A.Strings)
	}
}

// encodeStrings encodes vals with F, failing the test on error.
func encodeStrings(Te *testing.T, F *Format, vals []string) string {
	s, err := F.Encode(Strings(vals))
	if err != nil {
		Te.Fatal(err)
	}
	return s
}
