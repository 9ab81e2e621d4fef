package hamaes

import (
	"math/bits"
	"testing"
)

// Independent reference for the codec: each code bit as the parity of a
// masked byte, masks taken straight from the parity equations.
func refEncode(b byte) byte {
	parity := func(mask byte) byte { return byte(bits.OnesCount8(b&mask) & 1) }
	return parity(0x0f) | parity(0x71)<<1 | parity(0xb6)<<2 | parity(0xda)<<3
}

func TestEncodeByteExhaustive(t *testing.T) {
	for b := 0; b < 256; b++ {
		got := EncodeByte(byte(b))
		if want := refEncode(byte(b)); got != want {
			t.Fatalf("EncodeByte(%#02x) = %#x, want %#x", b, got, want)
		}
		if got>>4 != 0 {
			t.Fatalf("EncodeByte(%#02x) = %#x, exceeds 4 bits", b, got)
		}
		if again := EncodeByte(byte(b)); again != got {
			t.Fatalf("EncodeByte(%#02x) not deterministic: %#x then %#x", b, got, again)
		}
	}
}

func TestEncodeByteLinearity(t *testing.T) {
	// The AddRoundKey predictor relies on encode(a^b) == encode(a)^encode(b).
	for a := 0; a < 256; a += 7 {
		for b := 0; b < 256; b++ {
			if EncodeByte(byte(a)^byte(b)) != EncodeByte(byte(a))^EncodeByte(byte(b)) {
				t.Fatalf("linearity broken at a=%#02x b=%#02x", a, b)
			}
		}
	}
}

func TestCombinedSubstituteEncodeTable(t *testing.T) {
	for b := 0; b < 256; b++ {
		if hbox[b] != EncodeByte(sbox[b]) {
			t.Fatalf("hbox[%#02x] = %#x, want EncodeByte(sbox[%#02x]) = %#x",
				b, hbox[b], b, EncodeByte(sbox[b]))
		}
	}
}

func TestSBoxInverse(t *testing.T) {
	for b := 0; b < 256; b++ {
		if rsbox[sbox[b]] != byte(b) {
			t.Fatalf("rsbox[sbox[%#02x]] = %#02x", b, rsbox[sbox[b]])
		}
	}
}

func TestSingleBitSyndromesDecodeToTheirBit(t *testing.T) {
	// Flipping data bit i changes the code by EncodeByte(1<<i); the
	// zero-bit scan of that diff must decode back to bit i for all 8 bits.
	for i := uint(0); i < 8; i++ {
		diff := EncodeByte(1 << i)
		if diff == 0 {
			t.Fatalf("bit %d is invisible to the code", i)
		}
		pone, ptwo := int8(-1), int8(-1)
		for x := 3; x >= 0; x-- {
			if (diff>>uint(x))&1 == 0 {
				if pone == -1 {
					pone = int8(x)
				} else if ptwo == -1 {
					ptwo = int8(x)
				}
			}
		}
		bit, ok := syndromeBit[[2]int8{pone, ptwo}]
		if !ok {
			t.Fatalf("syndrome %#x of bit %d not in decode table", diff, i)
		}
		if uint(bit) != i {
			t.Fatalf("syndrome %#x decodes to bit %d, want %d", diff, bit, i)
		}
	}
}
