package arsenic

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/aead/eax"
	"github.com/aead/serpent"
	"golang.org/x/crypto/chacha20poly1305"
)

// engine holds three independently keyed AEAD contexts plus the nonce
// pipeline driving them. Two directions are exposed: seal applies the
// cascade ChaCha20-Poly1305 -> AES-256/EAX -> Serpent/GCM; open reverses it.
// No associated data is used by any layer: the header is instead bound in
// by being the source of the salt and nonce seed that produced these very
// keys.
type engine struct {
	chacha  cipher.AEAD
	aesEAX  cipher.AEAD
	serpGCM cipher.AEAD
	nonces  *tripleNonce
}

// newEngine builds the triple-AEAD engine from derived keys and a nonce
// pipeline already seeded for this file. It fails with InvalidCryptoboxInput
// if any of the three primitives rejects its key.
func newEngine(keys *DerivedKeys, nonces *tripleNonce) (*engine, error) {
	chachaAEAD, err := chacha20poly1305.NewX(keys.ChaCha20Key())
	if err != nil {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("chacha20-poly1305: %w", err))
	}

	aesBlock, err := aes.NewCipher(keys.AESKey())
	if err != nil {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("aes-256: %w", err))
	}
	aesEAX, err := eax.NewEAXWithNonceAndTagSize(aesBlock, nonceSize, 16)
	if err != nil {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("aes-256/eax: %w", err))
	}

	serpentBlock, err := serpent.NewCipher(keys.SerpentKey())
	if err != nil {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("serpent: %w", err))
	}
	serpGCM, err := cipher.NewGCMWithNonceSize(serpentBlock, nonceSize)
	if err != nil {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("serpent/gcm: %w", err))
	}

	if chachaAEAD.NonceSize() != nonceSize {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("chacha20-poly1305: unexpected nonce size %d", chachaAEAD.NonceSize()))
	}
	if aesEAX.NonceSize() != nonceSize {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("aes-256/eax: unexpected nonce size %d", aesEAX.NonceSize()))
	}

	return &engine{chacha: chachaAEAD, aesEAX: aesEAX, serpGCM: serpGCM, nonces: nonces}, nil
}

// seal applies the cascade to plaintext and returns the triple-authenticated
// ciphertext: ChaCha20-Poly1305, then AES-256/EAX, then Serpent/GCM, each
// under a freshly incremented nonce.
func (e *engine) seal(plaintext []byte) []byte {
	chachaNonce, aesNonce, serpNonce := e.nonces.next()

	stage1 := e.chacha.Seal(nil, chachaNonce, plaintext, nil)
	stage2 := e.aesEAX.Seal(nil, aesNonce, stage1, nil)
	stage3 := e.serpGCM.Seal(nil, serpNonce, stage2, nil)
	return stage3
}

// open reverses the cascade: Serpent/GCM, then AES-256/EAX, then
// ChaCha20-Poly1305. A tag mismatch at any stage aborts immediately with
// DecryptFail; later stages never run over data that failed an earlier
// stage's authentication.
func (e *engine) open(ciphertext []byte) ([]byte, error) {
	chachaNonce, aesNonce, serpNonce := e.nonces.next()

	stage2, err := e.serpGCM.Open(nil, serpNonce, ciphertext, nil)
	if err != nil {
		return nil, NewError(DecryptFail, "", err)
	}
	stage1, err := e.aesEAX.Open(nil, aesNonce, stage2, nil)
	if err != nil {
		return nil, NewError(DecryptFail, "", err)
	}
	plaintext, err := e.chacha.Open(nil, chachaNonce, stage1, nil)
	if err != nil {
		return nil, NewError(DecryptFail, "", err)
	}
	return plaintext, nil
}

// overhead returns the total number of authentication-tag bytes the cascade
// adds to a plaintext chunk (three 16-byte tags).
func (e *engine) overhead() int {
	return e.chacha.Overhead() + e.aesEAX.Overhead() + e.serpGCM.Overhead()
}
