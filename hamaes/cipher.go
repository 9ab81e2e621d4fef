// Package hamaes implements AES (128/192/256, ECB/CBC/CTR) hardened
// against transient single-bit faults of the working state. Around every
// round transform of encryption a prediction engine derives, from the
// pre-transform state, the 4-bit integrity code each byte should carry
// afterwards; after the transform the actual codes are re-derived and
// compared, and a mismatch is decoded into a single-bit repair of the
// state. Decryption guards only its AddRoundKey steps.
package hamaes

import "fmt"

// Ctx holds the expanded round-key material for one key plus the IV or
// counter block consumed by the chaining modes. The round keys are
// read-only after New and may be shared through independent Ctx values;
// the IV mutates with every chained block, so a single Ctx must not be
// used by concurrent block streams.
type Ctx struct {
	params    Params
	roundKey  []byte
	iv        [BlockLen]byte
	faultHook FaultHook
}

// New runs the key schedule for the chosen variant.
func New(v Variant, key []byte) (*Ctx, error) {
	p, err := v.Params()
	if err != nil {
		return nil, err
	}
	if len(key) != p.KeyLen {
		return nil, fmt.Errorf("%s key is %d bytes: %w", v, len(key), ErrKeyLength)
	}
	return &Ctx{params: p, roundKey: expandKey(p, key)}, nil
}

// NewWithIV runs the key schedule and stores the initial IV/counter block.
func NewWithIV(v Variant, key, iv []byte) (*Ctx, error) {
	c, err := New(v, key)
	if err != nil {
		return nil, err
	}
	if err := c.SetIV(iv); err != nil {
		return nil, err
	}
	return c, nil
}

// SetIV replaces the stored IV/counter block.
func (c *Ctx) SetIV(iv []byte) error {
	if len(iv) != BlockLen {
		return ErrIVLength
	}
	copy(c.iv[:], iv)
	return nil
}

// Params returns the active variant dimensions.
func (c *Ctx) Params() Params { return c.params }

// EncryptBlock runs the guarded encryption state machine over one 16-byte
// block in place. A detected fault the corrector cannot repair aborts the
// operation with a FaultError; the buffer is then left unchanged.
func (c *Ctx) EncryptBlock(buf []byte) error {
	if len(buf) != BlockLen {
		return ErrInputLength
	}
	st := LoadState(buf)
	if err := c.cipher(&st); err != nil {
		return err
	}
	StoreState(&st, buf)
	return nil
}

// DecryptBlock runs the inverse state machine over one 16-byte block in
// place, with integrity checking on the AddRoundKey steps only.
func (c *Ctx) DecryptBlock(buf []byte) error {
	if len(buf) != BlockLen {
		return ErrInputLength
	}
	st := LoadState(buf)
	if err := c.invCipher(&st); err != nil {
		return err
	}
	StoreState(&st, buf)
	return nil
}

// cipher drives Init -> Round[1..Nr-1] -> FinalRound. The prediction
// baseline is seeded from the plaintext state, then every step updates it
// incrementally.
func (c *Ctx) cipher(st *State) error {
	var ham, pcode codeState
	encodeState(st, &pcode)

	if err := c.addRoundKey(0, st, &ham, &pcode); err != nil {
		return err
	}
	for round := 1; ; round++ {
		if err := c.subBytes(round, st, &ham, &pcode); err != nil {
			return err
		}
		if err := c.shiftRows(round, st, &ham, &pcode); err != nil {
			return err
		}
		if round == c.params.Nr {
			break
		}
		if err := c.mixColumns(round, st, &ham, &pcode); err != nil {
			return err
		}
		if err := c.addRoundKey(round, st, &ham, &pcode); err != nil {
			return err
		}
	}
	return c.addRoundKey(c.params.Nr, st, &ham, &pcode)
}

// invCipher mirrors the inverse sequence. The inverse transforms mutate
// the state outside the protocol, so each guarded AddRoundKey re-baselines
// the predicted codes from the state it actually sees before predicting.
func (c *Ctx) invCipher(st *State) error {
	var ham, pcode codeState
	encodeState(st, &pcode)

	if err := c.addRoundKey(c.params.Nr, st, &ham, &pcode); err != nil {
		return err
	}
	for round := c.params.Nr - 1; ; round-- {
		invShiftRows(st)
		invSubBytes(st)
		encodeState(st, &pcode)
		if err := c.addRoundKey(round, st, &ham, &pcode); err != nil {
			return err
		}
		if round == 0 {
			break
		}
		invMixColumns(st)
	}
	return nil
}
