package hamaes

// State is the 16-byte AES working buffer viewed as a 4x4 byte matrix.
//
// Addressing is [column][row] throughout the package: byte i of a block
// maps to State[i/4][i%4]. Getting this order wrong does not fail loudly,
// it silently breaks NIST vector compatibility, so every transform and
// every predictor follows this one convention.
type State [4][4]byte

// LoadState unpacks a 16-byte block into column-major State form.
func LoadState(block []byte) State {
	var st State
	for i := 0; i < BlockLen; i++ {
		st[i/4][i%4] = block[i]
	}
	return st
}

// StoreState packs st back into block.
func StoreState(st *State, block []byte) {
	for i := 0; i < BlockLen; i++ {
		block[i] = st[i/4][i%4]
	}
}
