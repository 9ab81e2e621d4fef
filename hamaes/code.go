package hamaes

// codeState holds one 4-bit integrity code per State byte, addressed
// [column][row] like the State itself.
type codeState [4][4]byte

// EncodeByte derives the 4-bit integrity code of b.
//
// Each code bit is the parity of a fixed subset of the data bits (a linear
// code over GF(2)). The subsets are idiosyncratic to this system, not a
// textbook extended Hamming code, and the syndrome decode table in
// correct.go assumes them exactly.
func EncodeByte(b byte) byte {
	bit := func(n int) byte { return (b >> uint(n)) & 1 }
	c0 := bit(3) ^ bit(2) ^ bit(1) ^ bit(0)
	c1 := bit(6) ^ bit(5) ^ bit(4) ^ bit(0)
	c2 := bit(7) ^ bit(5) ^ bit(4) ^ bit(2) ^ bit(1)
	c3 := bit(7) ^ bit(6) ^ bit(4) ^ bit(3) ^ bit(1)
	return c0 | c1<<1 | c2<<2 | c3<<3
}

// encodeState refreshes codes from the actual state contents.
func encodeState(st *State, codes *codeState) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			codes[col][row] = EncodeByte(st[col][row])
		}
	}
}
