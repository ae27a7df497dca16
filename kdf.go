package arsenic

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

// saltSize is the fixed width of the per-file Argon2id salt.
const saltSize = 16

// derivedKeysSize is the width of the keying material Argon2id produces:
// three 32-byte keys concatenated in cipher order.
const derivedKeysSize = 3 * 32

// DerivedKeys is the 96-byte keying material split into three contiguous
// 32-byte keys in the order [ChaCha20, AES, Serpent]. It is held in a
// SecretBytes and is derived once per file.
type DerivedKeys struct {
	buf *SecretBytes
}

// ChaCha20Key returns the first 32-byte key.
func (d *DerivedKeys) ChaCha20Key() []byte { return d.buf.Bytes()[0:32] }

// AESKey returns the second 32-byte key.
func (d *DerivedKeys) AESKey() []byte { return d.buf.Bytes()[32:64] }

// SerpentKey returns the third 32-byte key.
func (d *DerivedKeys) SerpentKey() []byte { return d.buf.Bytes()[64:96] }

// Zero releases the underlying keying material.
func (d *DerivedKeys) Zero() { d.buf.Zero() }

// generateSalt draws a fresh 16-byte Argon2id salt for a new file.
func generateSalt() ([]byte, error) {
	return randomBytes(saltSize)
}

// deriveKeys runs Argon2id over passphrase and salt with the given cost
// parameters and splits the 96-byte result into three keys. Parallelism is
// always 1, matching the fixed interactive constant every preset shares.
//
// It fails with EmptyPassword if the passphrase is empty and with
// InvalidCryptoboxInput if salt is not exactly 16 bytes.
func deriveKeys(passphrase []byte, salt []byte, params KDFParams) (*DerivedKeys, error) {
	if err := validatePassphrase(passphrase); err != nil {
		return nil, err
	}
	if err := validateBuffer(salt, "salt", saltSize); err != nil {
		return nil, err
	}
	if len(salt) != saltSize {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("salt must be %d bytes, got %d", saltSize, len(salt)))
	}

	raw := argon2.IDKey(passphrase, salt, params.Iterations, params.MemoryKiB, 1, derivedKeysSize)
	return &DerivedKeys{buf: NewSecretBytes(raw)}, nil
}
