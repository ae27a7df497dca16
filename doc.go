// Package arsenic implements the cryptographic core of a desktop file
// encryption utility: passphrase-to-keys derivation, a triple-AEAD cascade,
// and a streaming, self-describing file container.
//
// # Overview
//
// arsenic turns a plaintext file into a container encrypted under three
// independent authenticated ciphers keyed from a single passphrase. The
// container can be restored only by someone holding the same passphrase;
// any single-byte corruption or wrong-passphrase attempt is detected. A
// chunk's plaintext is written only after that chunk authenticates, and a
// failed decryption removes the partially written destination.
//
// # Cipher Cascade
//
//   - ChaCha20-Poly1305 (XChaCha20 construction, 24-byte nonce)
//   - AES-256 in EAX mode
//   - Serpent in GCM mode
//
// Encryption applies the ciphers in that order; decryption reverses it. All
// three share keys derived once per file but advance independent nonce
// counters per chunk, so a break of one cipher does not expose the
// plaintext protected by the others.
//
// # Basic Usage
//
//	job := arsenic.Job{
//	    Mode:       arsenic.Encrypt,
//	    InputPath:  "report.pdf",
//	    OutputPath: "report.pdf.arsn",
//	    Passphrase: arsenic.NewSecretBytes([]byte("correct horse battery staple")),
//	    KDFParams:  arsenic.PresetInteractive.Params(),
//	}
//
//	orchestrator := arsenic.NewOrchestrator()
//	handle, err := orchestrator.Submit(job)
//	if err != nil {
//	    panic(err)
//	}
//	if err := handle.Await(); err != nil {
//	    panic(err)
//	}
//
// # Security Considerations
//
// Protected Against:
//   - Unauthorized access to the container at rest
//   - Tampering and bit-level corruption (three independent auth tags)
//   - Wrong-passphrase restoration attempts
//   - Offline brute force (Argon2id is memory-hard)
//
// Not Protected Against:
//   - Memory dumps while a job has plaintext or keys resident
//   - Side-channel attacks (timing, cache)
//   - A compromised host capturing the passphrase at entry
//   - Metadata leakage (container size, timestamps)
//
// # Key Derivation
//
// Argon2id is the sole key-derivation function; it derives 96 bytes of
// keying material split into three 32-byte keys (ChaCha20, AES, Serpent).
// Memory cost and iteration count are stored in the header so decryption
// reconstructs identical derivation; parallelism is fixed at 1.
//
// # Container Format
//
// See the Header type and the offset constants beside it for the exact
// byte layout. In summary: a fixed-offset header carrying the salt,
// nonce seed, KDF parameters and an advisory original filename, followed by
// a sequence of length-prefixed ciphertext frames terminated by a
// zero-length sentinel frame.
package arsenic
