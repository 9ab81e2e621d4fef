package hamaes

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
)

// oneShotFlip returns a hook that flips one state bit the first time the
// targeted guarded step runs.
func oneShotFlip(step Step, round, col, row int, bit uint) FaultHook {
	fired := false
	return func(s Step, r int, st *State) {
		if fired || s != step || r != round {
			return
		}
		fired = true
		st[col][row] ^= 1 << bit
	}
}

func cleanCiphertext(t *testing.T) ([]byte, []byte) {
	t.Helper()
	pt := mustHex(t, ecb128Vectors[0].pt)
	ct := append([]byte(nil), pt...)
	c, err := New(AES128, mustHex(t, nistKey128))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.EncryptBlock(ct); err != nil {
		t.Fatalf("reference encrypt: %v", err)
	}
	return pt, ct
}

func TestSingleBitFaultsAreCorrected(t *testing.T) {
	pt, want := cleanCiphertext(t)

	targets := []struct {
		step  Step
		round int
	}{
		{StepAddRoundKey, 0},
		{StepSubBytes, 1},
		{StepShiftRows, 1},
		{StepMixColumns, 1},
		{StepAddRoundKey, 1},
		{StepSubBytes, 10},
		{StepAddRoundKey, 10},
	}
	positions := [][2]int{{0, 0}, {1, 2}, {2, 3}, {3, 1}}

	for _, tgt := range targets {
		for _, pos := range positions {
			for bit := uint(0); bit < 8; bit++ {
				c, err := New(AES128, mustHex(t, nistKey128))
				if err != nil {
					t.Fatalf("New: %v", err)
				}
				c.SetFaultHook(oneShotFlip(tgt.step, tgt.round, pos[0], pos[1], bit))
				buf := append([]byte(nil), pt...)
				if err := c.EncryptBlock(buf); err != nil {
					t.Fatalf("%s round %d [%d][%d] bit %d: %v",
						tgt.step, tgt.round, pos[0], pos[1], bit, err)
				}
				if !bytes.Equal(buf, want) {
					t.Fatalf("%s round %d [%d][%d] bit %d: ciphertext %x, want %x",
						tgt.step, tgt.round, pos[0], pos[1], bit, buf, want)
				}
			}
		}
	}
}

func TestDoubleBitFaultUnrecognized(t *testing.T) {
	// Bits 0 and 7 of one byte change the code by 0b1111: no zero bits in
	// the diff, so the syndrome is outside the decode table and the byte
	// must be left alone.
	pt, _ := cleanCiphertext(t)
	c, err := New(AES128, mustHex(t, nistKey128))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.SetFaultHook(func(s Step, r int, st *State) {
		if s == StepMixColumns && r == 1 {
			st[2][3] ^= 1<<0 | 1<<7
		}
	})
	buf := append([]byte(nil), pt...)
	err = c.EncryptBlock(buf)
	if !errors.Is(err, ErrUnrecognizedSyndrome) {
		t.Fatalf("got %v, want ErrUnrecognizedSyndrome", err)
	}
	var fe *FaultError
	if !errors.As(err, &fe) {
		t.Fatalf("error %v is not a FaultError", err)
	}
	if fe.Step != StepMixColumns || fe.Round != 1 {
		t.Fatalf("fault located at %s round %d, want MixColumns round 1", fe.Step, fe.Round)
	}
	// The block op failed, so the caller's buffer still holds plaintext.
	if !bytes.Equal(buf, pt) {
		t.Fatalf("buffer modified on failed encryption: %x", buf)
	}
}

func TestVerifyRestoresExactByte(t *testing.T) {
	c, err := New(AES128, mustHex(t, nistKey128))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := LoadState(mustHex(t, "00112233445566778899aabbccddeeff"))
	orig := st
	var ham, pcode codeState
	encodeState(&st, &pcode)

	for bit := uint(0); bit < 8; bit++ {
		st[1][2] ^= 1 << bit
		encodeState(&st, &ham)
		if err := c.verify(StepShiftRows, 3, &st, &ham, &pcode); err != nil {
			t.Fatalf("bit %d: verify: %v", bit, err)
		}
		if st != orig {
			t.Fatalf("bit %d: state not restored: %x", bit, st)
		}
	}
}

func TestVerifyUnrecognizedLeavesStateUntouched(t *testing.T) {
	c, err := New(AES128, mustHex(t, nistKey128))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := LoadState(mustHex(t, "00112233445566778899aabbccddeeff"))
	var ham, pcode codeState
	encodeState(&st, &pcode)

	st[0][1] ^= 1<<0 | 1<<7
	faulted := st
	encodeState(&st, &ham)
	verr := c.verify(StepSubBytes, 2, &st, &ham, &pcode)
	if !errors.Is(verr, ErrUnrecognizedSyndrome) {
		t.Fatalf("got %v, want ErrUnrecognizedSyndrome", verr)
	}
	if st != faulted {
		t.Fatalf("corrector modified the state on an unrecognized syndrome: %x", st)
	}
}

func TestVerifyEscalatesWhenRepairFails(t *testing.T) {
	// A flipped prediction bit decodes to a valid table entry, the repair
	// flips a healthy data bit, and the re-check must then escalate.
	c, err := New(AES128, mustHex(t, nistKey128))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := LoadState(mustHex(t, "00112233445566778899aabbccddeeff"))
	var ham, pcode codeState
	encodeState(&st, &pcode)
	encodeState(&st, &ham)
	pcode[0][0] ^= 0x01

	verr := c.verify(StepAddRoundKey, 4, &st, &ham, &pcode)
	if !errors.Is(verr, ErrUncorrectable) {
		t.Fatalf("got %v, want ErrUncorrectable", verr)
	}
}

func TestDecryptAddRoundKeyGuard(t *testing.T) {
	pt, ct := cleanCiphertext(t)
	c, err := New(AES128, mustHex(t, nistKey128))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.SetFaultHook(oneShotFlip(StepAddRoundKey, 5, 2, 1, 3))
	buf := append([]byte(nil), ct...)
	if err := c.DecryptBlock(buf); err != nil {
		t.Fatalf("decrypt with injected fault: %v", err)
	}
	if !bytes.Equal(buf, pt) {
		t.Fatalf("decrypted %x, want %x", buf, pt)
	}
}

func TestCorrectionNarrativeLogged(t *testing.T) {
	logger, hook := test.NewNullLogger()
	SetTraceLogger(logger)
	defer SetTraceLogger(nil)

	pt, _ := cleanCiphertext(t)
	c, err := New(AES128, mustHex(t, nistKey128))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.SetFaultHook(oneShotFlip(StepSubBytes, 1, 0, 0, 4))
	buf := append([]byte(nil), pt...)
	if err := c.EncryptBlock(buf); err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	found := false
	for _, e := range hook.AllEntries() {
		if e.Message == "corrected single-bit state fault" {
			found = true
			if e.Data["step"] != "SubBytes" {
				t.Fatalf("correction logged for step %v, want SubBytes", e.Data["step"])
			}
		}
	}
	if !found {
		t.Fatal("no correction entry logged")
	}
}
