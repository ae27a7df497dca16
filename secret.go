package arsenic

import (
	"crypto/rand"
	"fmt"
	"sync"
)

// SecretBytes is an owned, resizable byte buffer that zeroes its backing
// memory on every exit path. Passphrases, derived keys, and plaintext
// chunks in flight are all carried in one of these rather than a bare
// []byte, so a single Zero call at the end of a job's scope (or a deferred
// one on every early return) is enough to guarantee nothing sensitive
// survives past it.
type SecretBytes struct {
	mu   sync.Mutex
	data []byte
	zero bool
}

// NewSecretBytes takes ownership of buf. The caller must not retain or
// mutate buf after this call; arsenic treats it as moved in.
func NewSecretBytes(buf []byte) *SecretBytes {
	return &SecretBytes{data: buf}
}

// NewSecretBytesSize allocates a new zeroed SecretBytes of the given length.
func NewSecretBytesSize(n int) *SecretBytes {
	return &SecretBytes{data: make([]byte, n)}
}

// Bytes returns the current backing slice. The returned slice aliases the
// SecretBytes' memory and must not be retained past the next Zero call.
func (s *SecretBytes) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Len reports the current length.
func (s *SecretBytes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Grow resizes the buffer to length n. Growing preserves existing content
// and zero-fills the new tail; shrinking zeroes the bytes past n before
// truncating. It fails if n is negative.
func (s *SecretBytes) Grow(n int) error {
	if n < 0 {
		return NewError(InvalidCryptoboxInput, "", fmt.Errorf("secret buffer: negative length %d", n))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= len(s.data) {
		zeroBytes(s.data[n:])
		s.data = s.data[:n]
		return nil
	}
	grown := make([]byte, n)
	copy(grown, s.data)
	zeroBytes(s.data)
	s.data = grown
	return nil
}

// Zero overwrites the backing memory with zeros and releases it. Zero is
// idempotent and safe to call more than once (e.g. from both a success path
// and a deferred cleanup).
func (s *SecretBytes) Zero() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.zero {
		return
	}
	zeroBytes(s.data)
	s.data = nil
	s.zero = true
}

// zeroBytes overwrites every byte of b with zero. Kept as a free function so
// non-SecretBytes transit buffers (e.g. a stack-local chunk slice) can be
// zeroed the same way without boxing them first.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// randomBytes draws n cryptographically secure random bytes. It is the sole
// RNG entry point for Salt and TripleNonce generation and fails loudly
// (rather than silently degrading) if the OS source is unavailable.
func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("reading random bytes: %w", err))
	}
	return buf, nil
}
