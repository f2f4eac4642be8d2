/*
 * compress.go, part of goParm.
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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// readCloser and writeCloser chain the Close of a decompressor or
// compressor and the Close of the underlying file.
type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

type writeCloser struct {
	io.Writer
	closers []func() error
}

func (w *writeCloser) Close() error {
	var err error
	for _, c := range w.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Open opens the file name for reading. Files compressed with gzip or
// zstd are decompressed on the fly; the compression is recognized from
// the first bytes of the file, not from its name.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("parm: can't open %s: %w", name, err)
	}
	br := bufio.NewReader(f)
	head, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		z, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("parm: %s: %w", name, err)
		}
		return &readCloser{z, []func() error{z.Close, f.Close}}, nil
	case bytes.HasPrefix(head, zstdMagic):
		z, err := zstd.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("parm: %s: %w", name, err)
		}
		//*zstd.Decoder's Close doesn't return an error.
		zclose := func() error { z.Close(); return nil }
		return &readCloser{z, []func() error{zclose, f.Close}}, nil
	}
	return &readCloser{br, []func() error{f.Close}}, nil
}

// Create creates the file name for writing, compressing with gzip if
// its extension is .gz and with zstd if it is .zst.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("parm: can't create %s: %w", name, err)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		z := gzip.NewWriter(f)
		return &writeCloser{z, []func() error{z.Close, f.Close}}, nil
	case ".zst":
		z, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("parm: %s: %w", name, err)
		}
		return &writeCloser{z, []func() error{z.Close, f.Close}}, nil
	}
	return &writeCloser{f, []func() error{f.Close}}, nil
}
