// Package hexbin packs whitespace-separated hexadecimal byte tokens into
// the fixed-capacity sized binary record consumed by the fault-injection
// input rigs: a 4-byte little-endian capacity header followed by the
// payload, zero-padded up to the capacity.
package hexbin

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// DefaultCapacity matches the record size of the original tooling.
const DefaultCapacity = 12176

// Parse reads whitespace-separated hex byte tokens from r. Tokens may
// carry an optional 0x prefix; each must fit in one byte.
func Parse(r io.Reader) ([]byte, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var out []byte
	for sc.Scan() {
		tok := strings.TrimPrefix(strings.ToLower(sc.Text()), "0x")
		v, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("hex token %q: %w", sc.Text(), err)
		}
		out = append(out, byte(v))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Pack writes the sized record for data. A capacity of zero or less means
// DefaultCapacity.
func Pack(w io.Writer, data []byte, capacity int) error {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if len(data) > capacity {
		return fmt.Errorf("payload is %d bytes, record capacity is %d", len(data), capacity)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(capacity)); err != nil {
		return err
	}
	buf := make([]byte, capacity)
	copy(buf, data)
	_, err := w.Write(buf)
	return err
}

// Unpack reads a sized record back into its payload, padding included.
func Unpack(r io.Reader) ([]byte, error) {
	var capacity uint32
	if err := binary.Read(r, binary.LittleEndian, &capacity); err != nil {
		return nil, err
	}
	buf := make([]byte, capacity)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// PackFile converts the hex text file at in into a sized record at out.
func PackFile(in, out string, capacity int) error {
	inf, err := os.Open(in)
	if err != nil {
		return err
	}
	defer inf.Close()
	data, err := Parse(inf)
	if err != nil {
		return fmt.Errorf("parse %s: %w", in, err)
	}
	outf, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := Pack(outf, data, capacity); err != nil {
		outf.Close()
		return err
	}
	return outf.Close()
}
