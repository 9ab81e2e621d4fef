package hamaes

// expandKey produces the Nb*(Nr+1) round-key words from the cipher key.
// The schedule is the standard AES key expansion and runs outside the
// fault-tolerant loop; only the round transforms are guarded.
func expandKey(p Params, key []byte) []byte {
	rk := make([]byte, p.expandedKeyLen())
	copy(rk, key[:p.Nk*4])

	var tmp [4]byte
	for i := p.Nk; i < Nb*(p.Nr+1); i++ {
		k := (i - 1) * 4
		tmp[0], tmp[1], tmp[2], tmp[3] = rk[k], rk[k+1], rk[k+2], rk[k+3]

		if i%p.Nk == 0 {
			// RotWord then SubWord, then Rcon folded into the first byte.
			tmp[0], tmp[1], tmp[2], tmp[3] = sbox[tmp[1]], sbox[tmp[2]], sbox[tmp[3]], sbox[tmp[0]]
			tmp[0] ^= rcon[i/p.Nk]
		} else if p.Nk > 6 && i%p.Nk == 4 {
			// AES256 applies an extra SubWord mid-key.
			tmp[0], tmp[1], tmp[2], tmp[3] = sbox[tmp[0]], sbox[tmp[1]], sbox[tmp[2]], sbox[tmp[3]]
		}

		j := i * 4
		k = (i - p.Nk) * 4
		rk[j+0] = rk[k+0] ^ tmp[0]
		rk[j+1] = rk[k+1] ^ tmp[1]
		rk[j+2] = rk[k+2] ^ tmp[2]
		rk[j+3] = rk[k+3] ^ tmp[3]
	}
	return rk
}
