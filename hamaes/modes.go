package hamaes

// Block-chaining wrappers. Each drives the guarded block state machine one
// 16-byte chunk at a time; any fault error from a block aborts the whole
// buffer operation.

// EncryptECB encrypts buf in place, one independent block at a time.
// Padding to a whole number of blocks is the caller's job.
func (c *Ctx) EncryptECB(buf []byte) error {
	if len(buf)%BlockLen != 0 {
		return ErrInputLength
	}
	for i := 0; i < len(buf); i += BlockLen {
		if err := c.EncryptBlock(buf[i : i+BlockLen]); err != nil {
			return err
		}
	}
	return nil
}

// DecryptECB decrypts buf in place, one independent block at a time.
func (c *Ctx) DecryptECB(buf []byte) error {
	if len(buf)%BlockLen != 0 {
		return ErrInputLength
	}
	for i := 0; i < len(buf); i += BlockLen {
		if err := c.DecryptBlock(buf[i : i+BlockLen]); err != nil {
			return err
		}
	}
	return nil
}

// EncryptCBC XORs each plaintext block with the previous ciphertext block
// (initially the stored IV) before encryption, and leaves the last
// ciphertext block stored as the IV for the next call.
func (c *Ctx) EncryptCBC(buf []byte) error {
	if len(buf)%BlockLen != 0 {
		return ErrInputLength
	}
	iv := c.iv[:]
	for i := 0; i < len(buf); i += BlockLen {
		block := buf[i : i+BlockLen]
		xorBlock(block, iv)
		if err := c.EncryptBlock(block); err != nil {
			return err
		}
		iv = block
	}
	copy(c.iv[:], iv)
	return nil
}

// DecryptCBC un-chains symmetrically, updating the stored IV to the last
// ciphertext block processed.
func (c *Ctx) DecryptCBC(buf []byte) error {
	if len(buf)%BlockLen != 0 {
		return ErrInputLength
	}
	var next [BlockLen]byte
	for i := 0; i < len(buf); i += BlockLen {
		block := buf[i : i+BlockLen]
		copy(next[:], block)
		if err := c.DecryptBlock(block); err != nil {
			return err
		}
		xorBlock(block, c.iv[:])
		c.iv = next
	}
	return nil
}

// XcryptCTR encrypts or decrypts buf of any length by XORing it with the
// keystream of successive encrypted counter blocks. The same call serves
// both directions. The stored counter advances once per 16 keystream bytes
// consumed; an IV/nonce must never be reused under the same key.
func (c *Ctx) XcryptCTR(buf []byte) error {
	var stream [BlockLen]byte
	bi := BlockLen
	for i := 0; i < len(buf); i++ {
		if bi == BlockLen {
			stream = c.iv
			if err := c.EncryptBlock(stream[:]); err != nil {
				return err
			}
			incCounter(&c.iv)
			bi = 0
		}
		buf[i] ^= stream[bi]
		bi++
	}
	return nil
}

// incCounter advances the 16-byte counter as a big-endian integer,
// propagating carries from the least significant byte and wrapping to
// all-zero on full overflow.
func incCounter(ctr *[BlockLen]byte) {
	for i := BlockLen - 1; i >= 0; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			break
		}
	}
}

func xorBlock(dst, src []byte) {
	for i := 0; i < BlockLen; i++ {
		dst[i] ^= src[i]
	}
}
