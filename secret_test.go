package arsenic

import (
	"bytes"
	"testing"
)

func TestSecretBytesZero(t *testing.T) {
	s := NewSecretBytes([]byte("hunter2hunter2"))
	if s.Len() != 14 {
		t.Fatalf("Len() = %d, want 14", s.Len())
	}

	s.Zero()

	if s.Len() != 0 {
		t.Fatalf("Len() after Zero() = %d, want 0", s.Len())
	}
	if s.Bytes() != nil {
		t.Fatalf("Bytes() after Zero() = %v, want nil", s.Bytes())
	}

	// Zero must be idempotent.
	s.Zero()
}

func TestSecretBytesGrow(t *testing.T) {
	s := NewSecretBytes([]byte{1, 2, 3})

	if err := s.Grow(5); err != nil {
		t.Fatalf("Grow(5) failed: %v", err)
	}
	want := []byte{1, 2, 3, 0, 0}
	if !bytes.Equal(s.Bytes(), want) {
		t.Fatalf("Bytes() = %v, want %v", s.Bytes(), want)
	}

	if err := s.Grow(2); err != nil {
		t.Fatalf("Grow(2) failed: %v", err)
	}
	if !bytes.Equal(s.Bytes(), []byte{1, 2}) {
		t.Fatalf("Bytes() after shrink = %v, want [1 2]", s.Bytes())
	}

	if err := s.Grow(-1); err == nil {
		t.Fatalf("Grow(-1) succeeded, want error")
	}
}

func TestSecretBytesSize(t *testing.T) {
	s := NewSecretBytesSize(32)
	if s.Len() != 32 {
		t.Fatalf("Len() = %d, want 32", s.Len())
	}
	for _, b := range s.Bytes() {
		if b != 0 {
			t.Fatalf("NewSecretBytesSize did not zero-fill")
		}
	}
}

func TestRandomBytesDistinct(t *testing.T) {
	a, err := randomBytes(32)
	if err != nil {
		t.Fatalf("randomBytes failed: %v", err)
	}
	b, err := randomBytes(32)
	if err != nil {
		t.Fatalf("randomBytes failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two calls to randomBytes returned identical output")
	}
	if len(a) != 32 {
		t.Fatalf("len(a) = %d, want 32", len(a))
	}
}
