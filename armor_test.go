package arsenic

import (
	"bytes"
	"testing"
)

func TestArmorUnarmorRoundTrip(t *testing.T) {
	binary := []byte("ARSN\x01\x00binary-container-bytes")

	armored := armor(binary)
	if !isArmored(armored) {
		t.Fatalf("isArmored(armored output) = false, want true")
	}

	got, err := unarmor(armored)
	if err != nil {
		t.Fatalf("unarmor failed: %v", err)
	}
	if !bytes.Equal(got, binary) {
		t.Fatalf("unarmor() = %q, want %q", got, binary)
	}
}

func TestIsArmoredRejectsBinary(t *testing.T) {
	if isArmored([]byte("ARSN\x01\x00\x00\x00")) {
		t.Fatalf("isArmored(binary container) = true, want false")
	}
}

func TestUnarmorRejectsInvalidEnvelope(t *testing.T) {
	_, err := unarmor([]byte("not a pem block at all"))
	if !IsCode(err, BadCryptoboxPemHeader) {
		t.Fatalf("unarmor(garbage) error = %v, want BadCryptoboxPemHeader", err)
	}
}

func TestUnarmorRejectsWrongBlockType(t *testing.T) {
	wrongType := []byte("-----BEGIN SOMETHING ELSE-----\nAAAA\n-----END SOMETHING ELSE-----\n")
	_, err := unarmor(wrongType)
	if !IsCode(err, BadCryptoboxPemHeader) {
		t.Fatalf("unarmor(wrong type) error = %v, want BadCryptoboxPemHeader", err)
	}
}
