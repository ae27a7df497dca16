package arsenic

import "fmt"

// nonceSize is the width of each of the three per-cipher nonces. XChaCha20,
// EAX over AES, and GCM-mode Serpent are all configured to accept 24-byte
// nonces so the three counters share one seed layout.
const nonceSize = 24

// tripleNonceSize is the width of the seed stored in the header: three
// 24-byte counters concatenated in cipher order.
const tripleNonceSize = 3 * nonceSize

// tripleNonce holds three independent little-endian counters seeded once
// per file and incremented in lockstep, one increment per chunk, before any
// cipher start. It never exposes the un-incremented seed: next always
// increments first and returns the result, so nonce 0 never reaches a
// cipher under a derived key.
type tripleNonce struct {
	counters [3][nonceSize]byte
}

// newTripleNonce splits a freshly drawn 72-byte seed into three 24-byte
// counters, in the order [ChaCha20, AES, Serpent].
func newTripleNonce(seed []byte) (*tripleNonce, error) {
	if len(seed) != tripleNonceSize {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("nonce seed must be %d bytes, got %d", tripleNonceSize, len(seed)))
	}
	tn := &tripleNonce{}
	for i := 0; i < 3; i++ {
		copy(tn.counters[i][:], seed[i*nonceSize:(i+1)*nonceSize])
	}
	return tn, nil
}

// generateTripleNonce draws a fresh random 72-byte seed for a new file.
func generateTripleNonce() (*tripleNonce, error) {
	seed, err := randomBytes(tripleNonceSize)
	if err != nil {
		return nil, err
	}
	return newTripleNonce(seed)
}

// seed returns the 72-byte concatenation of the three counters in their
// current state, for writing into (or comparing against) the header.
func (tn *tripleNonce) seed() []byte {
	out := make([]byte, 0, tripleNonceSize)
	for i := 0; i < 3; i++ {
		out = append(out, tn.counters[i][:]...)
	}
	return out
}

// incrementOne performs sodium_increment-style little-endian add-one with
// full carry propagation across all 24 bytes of a single counter.
func incrementOne(counter *[nonceSize]byte) {
	carry := uint16(1)
	for i := 0; i < nonceSize; i++ {
		sum := uint16(counter[i]) + carry
		counter[i] = byte(sum)
		carry = sum >> 8
		if carry == 0 {
			break
		}
	}
}

// next increments all three counters independently, then returns them as
// three fresh 24-byte nonces in cipher order [ChaCha20, AES, Serpent]. Each
// call corresponds to exactly one chunk; callers must not reuse the
// returned nonces across chunks or ciphers.
func (tn *tripleNonce) next() (chacha, aes, serpent []byte) {
	for i := range tn.counters {
		incrementOne(&tn.counters[i])
	}
	chacha = append([]byte(nil), tn.counters[0][:]...)
	aes = append([]byte(nil), tn.counters[1][:]...)
	serpent = append([]byte(nil), tn.counters[2][:]...)
	return
}
