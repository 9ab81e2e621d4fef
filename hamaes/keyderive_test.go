package hamaes

import (
	"bytes"
	"testing"
)

func TestKeyFromPassphrase(t *testing.T) {
	for _, v := range []Variant{AES128, AES192, AES256} {
		p, err := v.Params()
		if err != nil {
			t.Fatalf("%s params: %v", v, err)
		}
		k1, err := KeyFromPassphrase(v, []byte("correct horse"))
		if err != nil {
			t.Fatalf("%s: derive: %v", v, err)
		}
		if len(k1) != p.KeyLen {
			t.Fatalf("%s: key is %d bytes, want %d", v, len(k1), p.KeyLen)
		}
		k2, err := KeyFromPassphrase(v, []byte("correct horse"))
		if err != nil {
			t.Fatalf("%s: derive: %v", v, err)
		}
		if !bytes.Equal(k1, k2) {
			t.Fatalf("%s: derivation not deterministic", v)
		}
		k3, err := KeyFromPassphrase(v, []byte("battery staple"))
		if err != nil {
			t.Fatalf("%s: derive: %v", v, err)
		}
		if bytes.Equal(k1, k3) {
			t.Fatalf("%s: distinct passphrases collided", v)
		}
		if _, err := New(v, k1); err != nil {
			t.Fatalf("%s: derived key rejected: %v", v, err)
		}
	}
}
