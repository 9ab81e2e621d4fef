package hamaes

import "errors"

// Nb is the number of 32-bit columns in the AES state, fixed by the standard.
const Nb = 4

// BlockLen is the AES block size in bytes, independent of key size.
const BlockLen = 16

// Variant selects the AES key-size parameterization.
type Variant int

const (
	AES128 Variant = iota
	AES192
	AES256
)

// ErrVariant reports an unknown Variant value.
var ErrVariant = errors.New("unknown AES variant")

func (v Variant) String() string {
	switch v {
	case AES128:
		return "AES128"
	case AES192:
		return "AES192"
	case AES256:
		return "AES256"
	}
	return "AES?"
}

// Params carries the round and key-schedule dimensions of a Variant.
type Params struct {
	Nk     int // key length in 32-bit words
	Nr     int // number of rounds
	KeyLen int // key length in bytes
}

// Params returns the dimensions for the variant.
func (v Variant) Params() (Params, error) {
	switch v {
	case AES128:
		return Params{Nk: 4, Nr: 10, KeyLen: 16}, nil
	case AES192:
		return Params{Nk: 6, Nr: 12, KeyLen: 24}, nil
	case AES256:
		return Params{Nk: 8, Nr: 14, KeyLen: 32}, nil
	}
	return Params{}, ErrVariant
}

// VariantForKeyLen maps a raw key length in bytes to its Variant.
func VariantForKeyLen(n int) (Variant, error) {
	switch n {
	case 16:
		return AES128, nil
	case 24:
		return AES192, nil
	case 32:
		return AES256, nil
	}
	return 0, ErrKeyLength
}

// expandedKeyLen is the byte length of the round-key material, Nb*(Nr+1) words.
func (p Params) expandedKeyLen() int { return Nb * (p.Nr + 1) * 4 }
