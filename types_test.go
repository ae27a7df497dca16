package arsenic

import "testing"

func TestKDFPresetParams(t *testing.T) {
	tests := []struct {
		preset     KDFPreset
		memoryKiB  uint32
		iterations uint32
	}{
		{PresetInteractive, 64 * 1024, 2},
		{PresetModerate, 256 * 1024, 3},
		{PresetSensitive, 1024 * 1024, 4},
	}

	for _, tt := range tests {
		t.Run(tt.preset.String(), func(t *testing.T) {
			params := tt.preset.Params()
			if params.MemoryKiB != tt.memoryKiB {
				t.Errorf("MemoryKiB = %d, want %d", params.MemoryKiB, tt.memoryKiB)
			}
			if params.Iterations != tt.iterations {
				t.Errorf("Iterations = %d, want %d", params.Iterations, tt.iterations)
			}
			if params.Parallelism != 1 {
				t.Errorf("Parallelism = %d, want 1", params.Parallelism)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("moderate"); !ok || p != PresetModerate {
		t.Errorf("ParsePreset(moderate) = %v, %v, want PresetModerate, true", p, ok)
	}
	if _, ok := ParsePreset("nonsense"); ok {
		t.Errorf("ParsePreset(nonsense) ok = true, want false")
	}
}

func TestModeString(t *testing.T) {
	if Encrypt.String() != "encrypt" {
		t.Errorf("Encrypt.String() = %q, want encrypt", Encrypt.String())
	}
	if Decrypt.String() != "decrypt" {
		t.Errorf("Decrypt.String() = %q, want decrypt", Decrypt.String())
	}
}
