package hamaes

import "golang.org/x/crypto/sha3"

// KeyFromPassphrase stretches a passphrase to the variant's key length
// with SHAKE128. It is a convenience for the CLI harness and test rigs;
// there is no salt or work factor, so it is not a substitute for a real
// KDF on low-entropy input.
func KeyFromPassphrase(v Variant, passphrase []byte) ([]byte, error) {
	p, err := v.Params()
	if err != nil {
		return nil, err
	}
	h := sha3.NewShake128()
	h.Write(passphrase)
	key := make([]byte, p.KeyLen)
	if _, err := h.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
