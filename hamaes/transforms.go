package hamaes

// Every guarded step follows one protocol: predict the post-transform codes
// from the pre-transform state, run the real transform, re-derive the
// observed codes from whatever the state now holds, then verify and repair.
// The fault hook sits in the window between the transform and the
// re-encode, which is where an SEU must land to be caught.

func (c *Ctx) subBytes(round int, st *State, ham, pcode *codeState) error {
	predictSub(st, pcode)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			st[col][row] = sbox[st[col][row]]
		}
	}
	c.inject(StepSubBytes, round, st)
	encodeState(st, ham)
	return c.verify(StepSubBytes, round, st, ham, pcode)
}

func (c *Ctx) shiftRows(round int, st *State, ham, pcode *codeState) error {
	predictShift(pcode)
	rotateRowsLeft((*[4][4]byte)(st))
	c.inject(StepShiftRows, round, st)
	encodeState(st, ham)
	return c.verify(StepShiftRows, round, st, ham, pcode)
}

func (c *Ctx) mixColumns(round int, st *State, ham, pcode *codeState) error {
	predictMixCols(st, pcode)
	for i := 0; i < 4; i++ {
		t := st[i][0]
		tmp := st[i][0] ^ st[i][1] ^ st[i][2] ^ st[i][3]
		tm := xtime(st[i][0] ^ st[i][1])
		st[i][0] ^= tm ^ tmp
		tm = xtime(st[i][1] ^ st[i][2])
		st[i][1] ^= tm ^ tmp
		tm = xtime(st[i][2] ^ st[i][3])
		st[i][2] ^= tm ^ tmp
		tm = xtime(st[i][3] ^ t)
		st[i][3] ^= tm ^ tmp
	}
	c.inject(StepMixColumns, round, st)
	encodeState(st, ham)
	return c.verify(StepMixColumns, round, st, ham, pcode)
}

func (c *Ctx) addRoundKey(round int, st *State, ham, pcode *codeState) error {
	predictAddKey(round, c.roundKey, pcode)
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			st[col][row] ^= c.roundKey[round*Nb*4+col*Nb+row]
		}
	}
	c.inject(StepAddRoundKey, round, st)
	encodeState(st, ham)
	return c.verify(StepAddRoundKey, round, st, ham, pcode)
}

// rotateRowsLeft rotates row r left by r positions. Shared by the real
// ShiftRows and its code-matrix prediction, which apply the identical
// permutation.
func rotateRowsLeft(m *[4][4]byte) {
	m[0][1], m[1][1], m[2][1], m[3][1] = m[1][1], m[2][1], m[3][1], m[0][1]
	m[0][2], m[1][2], m[2][2], m[3][2] = m[2][2], m[3][2], m[0][2], m[1][2]
	m[0][3], m[1][3], m[2][3], m[3][3] = m[3][3], m[0][3], m[1][3], m[2][3]
}

func rotateRowsRight(m *[4][4]byte) {
	m[0][1], m[1][1], m[2][1], m[3][1] = m[3][1], m[0][1], m[1][1], m[2][1]
	m[0][2], m[1][2], m[2][2], m[3][2] = m[2][2], m[3][2], m[0][2], m[1][2]
	m[0][3], m[1][3], m[2][3], m[3][3] = m[1][3], m[2][3], m[3][3], m[0][3]
}

// The inverse transforms run outside the fault-tolerant loop; decryption
// guards only its AddRoundKey steps.

func invSubBytes(st *State) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			st[col][row] = rsbox[st[col][row]]
		}
	}
}

func invShiftRows(st *State) {
	rotateRowsRight((*[4][4]byte)(st))
}

func invMixColumns(st *State) {
	for i := 0; i < 4; i++ {
		a, b, c, d := st[i][0], st[i][1], st[i][2], st[i][3]
		st[i][0] = gmul(a, 0x0e) ^ gmul(b, 0x0b) ^ gmul(c, 0x0d) ^ gmul(d, 0x09)
		st[i][1] = gmul(a, 0x09) ^ gmul(b, 0x0e) ^ gmul(c, 0x0b) ^ gmul(d, 0x0d)
		st[i][2] = gmul(a, 0x0d) ^ gmul(b, 0x09) ^ gmul(c, 0x0e) ^ gmul(d, 0x0b)
		st[i][3] = gmul(a, 0x0b) ^ gmul(b, 0x0d) ^ gmul(c, 0x09) ^ gmul(d, 0x0e)
	}
}
