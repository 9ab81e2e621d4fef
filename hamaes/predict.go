package hamaes

// The prediction engine computes, from the pre-transform state, the
// integrity code every byte should carry after the transform runs. Two
// deliberately different data paths are in use: SubBytes predicts through
// the fused substitute-and-encode table, while MixColumns re-derives the
// column arithmetic redundantly and encodes the results. Keeping both
// paths distinct trades code size for independence of fault coverage.

// predictSub looks up the code of each byte's S-box image without touching
// the real S-box.
func predictSub(st *State, pcode *codeState) {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			pcode[col][row] = hbox[st[col][row]]
		}
	}
}

// predictShift permutes the predicted codes with the same row rotation
// ShiftRows applies to the state. Valid because the transform moves bytes
// without changing their values.
func predictShift(pcode *codeState) {
	rotateRowsLeft((*[4][4]byte)(pcode))
}

// predictMixCols recomputes each output byte of the column mix from the
// four pre-transform bytes and encodes it, using the same {02,03,01,01}
// GF(2^8) arithmetic as the real transform.
func predictMixCols(st *State, pcode *codeState) {
	for c := 0; c < 4; c++ {
		s0, s1, s2, s3 := st[c][0], st[c][1], st[c][2], st[c][3]
		pcode[c][0] = EncodeByte(xtime(s0)) ^ EncodeByte(gmul(s1, 0x03)) ^ EncodeByte(s2) ^ EncodeByte(s3)
		pcode[c][1] = EncodeByte(s0) ^ EncodeByte(xtime(s1)) ^ EncodeByte(gmul(s2, 0x03)) ^ EncodeByte(s3)
		pcode[c][2] = EncodeByte(s0) ^ EncodeByte(s1) ^ EncodeByte(xtime(s2)) ^ EncodeByte(gmul(s3, 0x03))
		pcode[c][3] = EncodeByte(gmul(s0, 0x03)) ^ EncodeByte(s1) ^ EncodeByte(s2) ^ EncodeByte(xtime(s3))
	}
}

// predictAddKey folds the round key's codes into the prediction, exploiting
// linearity of the codec: EncodeByte(a^b) == EncodeByte(a)^EncodeByte(b).
func predictAddKey(round int, roundKey []byte, pcode *codeState) {
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			pcode[col][row] ^= EncodeByte(roundKey[round*Nb*4+col*Nb+row])
		}
	}
}
