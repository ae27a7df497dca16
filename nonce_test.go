package arsenic

import "testing"

func TestIncrementOneCarry(t *testing.T) {
	tests := []struct {
		name  string
		start [nonceSize]byte
		want  [nonceSize]byte
	}{
		{
			name:  "zero to one",
			start: [nonceSize]byte{},
			want:  func() (w [nonceSize]byte) { w[0] = 1; return }(),
		},
		{
			name:  "single byte carry",
			start: func() (s [nonceSize]byte) { s[0] = 0xff; return }(),
			want:  func() (w [nonceSize]byte) { w[1] = 1; return }(),
		},
		{
			name:  "full carry propagation",
			start: func() (s [nonceSize]byte) { for i := range s { s[i] = 0xff }; return }(),
			want:  [nonceSize]byte{}, // wraps to all zero
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.start
			incrementOne(&c)
			if c != tt.want {
				t.Fatalf("incrementOne(%v) = %v, want %v", tt.start, c, tt.want)
			}
		})
	}
}

func TestTripleNonceNextNeverReturnsSeed(t *testing.T) {
	seed := make([]byte, tripleNonceSize)
	tn, err := newTripleNonce(seed)
	if err != nil {
		t.Fatalf("newTripleNonce failed: %v", err)
	}

	chacha, aes, serpent := tn.next()
	for _, counter := range [][]byte{chacha, aes, serpent} {
		allZero := true
		for _, b := range counter {
			if b != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			t.Fatalf("next() returned the zero seed directly, want pre-incremented value")
		}
	}
}

func TestTripleNonceMonotonic(t *testing.T) {
	tn, err := generateTripleNonce()
	if err != nil {
		t.Fatalf("generateTripleNonce failed: %v", err)
	}

	first := tn.seed()
	tn.next()
	second := tn.seed()
	tn.next()
	third := tn.seed()

	if string(first) == string(second) || string(second) == string(third) {
		t.Fatalf("successive nonce states must differ")
	}
}

func TestNewTripleNonceRejectsWrongSize(t *testing.T) {
	if _, err := newTripleNonce(make([]byte, 10)); err == nil {
		t.Fatalf("newTripleNonce accepted a short seed, want error")
	}
	if code, ok := CodeOf(func() error { _, err := newTripleNonce(make([]byte, 10)); return err }()); !ok || code != InvalidCryptoboxInput {
		t.Fatalf("CodeOf = %v, %v, want InvalidCryptoboxInput", code, ok)
	}
}
