package hamaes

// xtime doubles x in GF(2^8) modulo the AES polynomial x^8+x^4+x^3+x+1.
func xtime(x byte) byte {
	return (x << 1) ^ (((x >> 7) & 1) * 0x1b)
}

// gmul multiplies x by y in GF(2^8) via repeated doubling and conditional
// XOR. y never exceeds 0x0e in this cipher, so four doublings suffice.
func gmul(x, y byte) byte {
	return ((y & 1) * x) ^
		((y >> 1 & 1) * xtime(x)) ^
		((y >> 2 & 1) * xtime(xtime(x))) ^
		((y >> 3 & 1) * xtime(xtime(xtime(x))))
}
