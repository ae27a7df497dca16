package arsenic

import (
	"encoding/binary"
	"fmt"
	"io"
)

// On-disk byte offsets, all little-endian. These are frozen: changing any
// of them breaks every container written by a prior version.
const (
	offsetMagic       = 0
	offsetVersion     = 4
	offsetKDFMemory   = 6
	offsetKDFIter     = 10
	offsetAlgo        = 14
	offsetReserved    = 15
	reservedSize      = 15
	offsetSalt        = 30
	offsetNonceSeed   = 46
	offsetNameLen     = 118
	offsetName        = 120
	headerFixedSize   = 120 // everything up to and including the name-length field

	// magic identifies an arsenic container. ASCII "ARSN".
	magicValue = "ARSN"

	// currentVersion is the only version this package writes or accepts.
	currentVersion = uint16(1)

	// plaintextChunkSize is the configured size of each plaintext chunk fed
	// through the cascade.
	plaintextChunkSize = 65536

	// maxFrameSize bounds a single ciphertext frame's declared length: a
	// full chunk plus the three 16-byte cascade tags, with headroom.
	maxFrameSize = plaintextChunkSize + 3*16 + 4096
)

// Header is the fixed-layout prefix of every container, carrying everything
// needed to reproduce the keys and nonce sequence that produced the body
// that follows it.
type Header struct {
	Version      uint16
	KDFParams    KDFParams
	Algo         AlgoSelector
	Salt         []byte // exactly 16 bytes
	NonceSeed    []byte // exactly 72 bytes
	OriginalName string // advisory only; never used to choose a destination path
}

// newHeader builds a header for a fresh encryption, drawing a new salt and
// nonce seed.
func newHeader(params KDFParams, originalName string) (*Header, []byte, *tripleNonce, error) {
	salt, err := generateSalt()
	if err != nil {
		return nil, nil, nil, err
	}
	nonces, err := generateTripleNonce()
	if err != nil {
		return nil, nil, nil, err
	}
	h := &Header{
		Version:      currentVersion,
		KDFParams:    params,
		Algo:         AlgoTripleCascade,
		Salt:         salt,
		NonceSeed:    nonces.seed(),
		OriginalName: originalName,
	}
	return h, salt, nonces, nil
}

// WriteTo serializes the header to w at the exact byte offsets §6 defines.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	if len(h.Salt) != saltSize {
		return 0, NewError(InvalidCryptoboxInput, "", fmt.Errorf("header: salt must be %d bytes, got %d", saltSize, len(h.Salt)))
	}
	if len(h.NonceSeed) != tripleNonceSize {
		return 0, NewError(InvalidCryptoboxInput, "", fmt.Errorf("header: nonce seed must be %d bytes, got %d", tripleNonceSize, len(h.NonceSeed)))
	}
	nameBytes := []byte(h.OriginalName)

	buf := make([]byte, headerFixedSize+len(nameBytes))
	copy(buf[offsetMagic:], magicValue)
	binary.LittleEndian.PutUint16(buf[offsetVersion:], h.Version)
	binary.LittleEndian.PutUint32(buf[offsetKDFMemory:], h.KDFParams.MemoryKiB)
	binary.LittleEndian.PutUint32(buf[offsetKDFIter:], h.KDFParams.Iterations)
	buf[offsetAlgo] = byte(h.Algo)
	// offsetReserved..offsetSalt is already zero from make().
	copy(buf[offsetSalt:], h.Salt)
	copy(buf[offsetNonceSeed:], h.NonceSeed)
	binary.LittleEndian.PutUint16(buf[offsetNameLen:], uint16(len(nameBytes)))
	copy(buf[offsetName:], nameBytes)

	n, err := w.Write(buf)
	return int64(n), err
}

// ReadHeader parses a header from r, validating the magic and version.
func ReadHeader(r io.Reader) (*Header, error) {
	fixed := make([]byte, headerFixedSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, NewError(SrcHeaderReadError, "", err)
	}

	if string(fixed[offsetMagic:offsetMagic+4]) != magicValue {
		return nil, NewError(NotAnArsenicFile, "", nil)
	}

	version := binary.LittleEndian.Uint16(fixed[offsetVersion:])
	if version != currentVersion {
		return nil, NewError(BadCryptoboxVersion, "", fmt.Errorf("got version %d", version))
	}

	h := &Header{
		Version: version,
		KDFParams: KDFParams{
			MemoryKiB:  binary.LittleEndian.Uint32(fixed[offsetKDFMemory:]),
			Iterations: binary.LittleEndian.Uint32(fixed[offsetKDFIter:]),
		},
		Algo:      AlgoSelector(fixed[offsetAlgo]),
		Salt:      append([]byte(nil), fixed[offsetSalt:offsetSalt+saltSize]...),
		NonceSeed: append([]byte(nil), fixed[offsetNonceSeed:offsetNonceSeed+tripleNonceSize]...),
	}

	nameLen := binary.LittleEndian.Uint16(fixed[offsetNameLen:])
	if nameLen > 0 {
		nameBuf := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBuf); err != nil {
			return nil, NewError(SrcHeaderReadError, "", err)
		}
		h.OriginalName = string(nameBuf)
	}

	if h.Algo != AlgoTripleCascade {
		return nil, NewError(InvalidCryptoboxInput, "", fmt.Errorf("unsupported algo selector %d", h.Algo))
	}

	return h, nil
}

// writeFrame emits one body frame: a u32_le length prefix followed by the
// ciphertext bytes.
func writeFrame(w io.Writer, ciphertext []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(ciphertext)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(ciphertext)
	return err
}

// writeSentinel emits the zero-length frame marking clean end-of-stream.
func writeSentinel(w io.Writer) error {
	var lenBuf [4]byte // already zero
	_, err := w.Write(lenBuf[:])
	return err
}

// readFrame reads one body frame. ok is false when the frame was the
// zero-length sentinel, in which case ciphertext is nil and no further
// frames should be read.
func readFrame(r io.Reader) (ciphertext []byte, ok bool, err error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return nil, false, NewError(SrcHeaderReadError, "", fmt.Errorf("truncated stream: missing end-of-stream sentinel"))
		}
		return nil, false, NewError(SrcHeaderReadError, "", err)
	}
	length := binary.LittleEndian.Uint32(lenBuf[:])
	if length == 0 {
		return nil, false, nil
	}
	if err := validateFrameLength(length, maxFrameSize); err != nil {
		return nil, false, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, false, NewError(SrcHeaderReadError, "", err)
	}
	return buf, true, nil
}
