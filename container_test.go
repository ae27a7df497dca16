package arsenic

import (
	"bytes"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	params := PresetModerate.Params()
	header, salt, nonces, err := newHeader(params, "report.pdf")
	if err != nil {
		t.Fatalf("newHeader failed: %v", err)
	}
	if len(salt) != saltSize {
		t.Fatalf("len(salt) = %d, want %d", len(salt), saltSize)
	}
	if len(nonces.seed()) != tripleNonceSize {
		t.Fatalf("len(nonce seed) = %d, want %d", len(nonces.seed()), tripleNonceSize)
	}

	var buf bytes.Buffer
	if _, err := header.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	got, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}

	if got.Version != currentVersion {
		t.Errorf("Version = %d, want %d", got.Version, currentVersion)
	}
	if got.KDFParams.MemoryKiB != params.MemoryKiB || got.KDFParams.Iterations != params.Iterations {
		t.Errorf("KDFParams = %+v, want MemoryKiB=%d Iterations=%d (parallelism is not stored on disk)", got.KDFParams, params.MemoryKiB, params.Iterations)
	}
	if got.Algo != AlgoTripleCascade {
		t.Errorf("Algo = %d, want %d", got.Algo, AlgoTripleCascade)
	}
	if !bytes.Equal(got.Salt, salt) {
		t.Errorf("Salt = %x, want %x", got.Salt, salt)
	}
	if !bytes.Equal(got.NonceSeed, nonces.seed()) {
		t.Errorf("NonceSeed = %x, want %x", got.NonceSeed, nonces.seed())
	}
	if got.OriginalName != "report.pdf" {
		t.Errorf("OriginalName = %q, want %q", got.OriginalName, "report.pdf")
	}
}

func TestHeaderRoundTripEmptyName(t *testing.T) {
	header, _, _, err := newHeader(PresetInteractive.Params(), "")
	if err != nil {
		t.Fatalf("newHeader failed: %v", err)
	}

	var buf bytes.Buffer
	if _, err := header.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if buf.Len() != headerFixedSize {
		t.Fatalf("buf.Len() = %d, want %d for an empty name", buf.Len(), headerFixedSize)
	}

	got, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if got.OriginalName != "" {
		t.Errorf("OriginalName = %q, want empty", got.OriginalName)
	}
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	buf := make([]byte, headerFixedSize)
	copy(buf, "XXXX")
	if _, err := ReadHeader(bytes.NewReader(buf)); !IsCode(err, NotAnArsenicFile) {
		t.Fatalf("ReadHeader(bad magic) error = %v, want NotAnArsenicFile", err)
	}
}

func TestReadHeaderRejectsBadVersion(t *testing.T) {
	header, _, _, _ := newHeader(PresetInteractive.Params(), "")
	var buf bytes.Buffer
	header.WriteTo(&buf)

	raw := buf.Bytes()
	raw[offsetVersion] = 0xff
	raw[offsetVersion+1] = 0xff

	if _, err := ReadHeader(bytes.NewReader(raw)); !IsCode(err, BadCryptoboxVersion) {
		t.Fatalf("ReadHeader(bad version) error = %v, want BadCryptoboxVersion", err)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("ciphertext-bytes-go-here")
	if err := writeFrame(&buf, payload); err != nil {
		t.Fatalf("writeFrame failed: %v", err)
	}
	if err := writeSentinel(&buf); err != nil {
		t.Fatalf("writeSentinel failed: %v", err)
	}

	got, ok, err := readFrame(&buf)
	if err != nil {
		t.Fatalf("readFrame failed: %v", err)
	}
	if !ok {
		t.Fatalf("readFrame reported sentinel on the first frame")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("readFrame = %q, want %q", got, payload)
	}

	_, ok, err = readFrame(&buf)
	if err != nil {
		t.Fatalf("readFrame(sentinel) failed: %v", err)
	}
	if ok {
		t.Fatalf("readFrame did not report the sentinel frame")
	}
}

func TestReadFrameRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, make([]byte, maxFrameSize+1))
	if _, _, err := readFrame(&buf); !IsCode(err, InvalidCryptoboxInput) {
		t.Fatalf("readFrame(oversized) error = %v, want InvalidCryptoboxInput", err)
	}
}

func TestReadFrameRejectsTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	writeFrame(&buf, []byte("partial"))
	truncated := buf.Bytes()[:buf.Len()-3]
	if _, _, err := readFrame(bytes.NewReader(truncated)); !IsCode(err, SrcHeaderReadError) {
		t.Fatalf("readFrame(truncated) error = %v, want SrcHeaderReadError", err)
	}
}
