package arsenic

import "fmt"

// Input validation helpers, kept separate from the components they guard so
// every component fails the same way on the same class of bad input.

// validateBuffer checks that a buffer is non-nil and meets a minimum size.
func validateBuffer(buf []byte, name string, minSize int) error {
	if buf == nil {
		return NewError(InvalidCryptoboxInput, "", fmt.Errorf("%s: buffer cannot be nil", name))
	}
	if minSize > 0 && len(buf) < minSize {
		return NewError(InvalidCryptoboxInput, "", fmt.Errorf("%s: buffer too small: got %d bytes, need at least %d", name, len(buf), minSize))
	}
	return nil
}

// validateKeySize checks that a derived key has the exact expected length.
func validateKeySize(key []byte, expected int, name string) error {
	if len(key) != expected {
		return NewError(InvalidCryptoboxInput, "", fmt.Errorf("%s: invalid key size: got %d bytes, expected %d", name, len(key), expected))
	}
	return nil
}

// validateNonceSize checks that a nonce has the exact expected length.
func validateNonceSize(nonce []byte, expected int, name string) error {
	if len(nonce) != expected {
		return NewError(InvalidCryptoboxInput, "", fmt.Errorf("%s: invalid nonce size: got %d bytes, expected %d", name, len(nonce), expected))
	}
	return nil
}

// validateFrameLength checks a chunk frame's declared ciphertext length
// against the bounds a well-formed container can contain, rejecting the
// pathological values a corrupted length prefix could otherwise induce
// (e.g. an attempt to allocate gigabytes for a single frame).
func validateFrameLength(length uint32, maxFrameSize uint32) error {
	if length > maxFrameSize {
		return NewError(InvalidCryptoboxInput, "", fmt.Errorf("frame length %d exceeds maximum %d", length, maxFrameSize))
	}
	return nil
}

// validatePassphrase enforces the EmptyPassword precondition shared by the
// KDF driver and the orchestrator's pre-flight checks.
func validatePassphrase(passphrase []byte) error {
	if len(passphrase) == 0 {
		return NewError(EmptyPassword, "", nil)
	}
	return nil
}
