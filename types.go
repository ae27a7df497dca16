package arsenic

// Mode selects the direction a Job runs in.
type Mode uint8

const (
	// Encrypt transforms a plaintext source into an encrypted container.
	Encrypt Mode = iota
	// Decrypt restores a plaintext source from an encrypted container.
	Decrypt
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return "unknown"
	}
}

// AlgoSelector identifies the on-disk cascade layout recorded in the header.
type AlgoSelector uint8

const (
	// AlgoTripleCascade is the only defined value: ChaCha20-Poly1305 -> AES-256/EAX -> Serpent/GCM.
	AlgoTripleCascade AlgoSelector = 0
)

// KDFPreset names one of the three reference Argon2id cost presets exposed
// at the orchestrator boundary.
type KDFPreset uint8

const (
	// PresetInteractive favors latency: 64 MiB memory, 2 iterations.
	PresetInteractive KDFPreset = iota
	// PresetModerate balances latency and cost: 256 MiB memory, 3 iterations.
	PresetModerate
	// PresetSensitive favors resistance to offline attack: 1 GiB memory, 4 iterations.
	PresetSensitive
)

// String returns the preset's name.
func (p KDFPreset) String() string {
	switch p {
	case PresetInteractive:
		return "interactive"
	case PresetModerate:
		return "moderate"
	case PresetSensitive:
		return "sensitive"
	default:
		return "unknown"
	}
}

// Params returns the KDFParams this preset expands to. Parallelism is fixed
// at 1 across every preset so that derivation is reproducible regardless of
// the host's core count.
func (p KDFPreset) Params() KDFParams {
	switch p {
	case PresetInteractive:
		return KDFParams{MemoryKiB: 64 * 1024, Iterations: 2, Parallelism: 1}
	case PresetModerate:
		return KDFParams{MemoryKiB: 256 * 1024, Iterations: 3, Parallelism: 1}
	case PresetSensitive:
		return KDFParams{MemoryKiB: 1024 * 1024, Iterations: 4, Parallelism: 1}
	default:
		return KDFParams{MemoryKiB: 64 * 1024, Iterations: 2, Parallelism: 1}
	}
}

// ParsePreset looks up a preset by its String() name, used by config and
// CLI flag parsing.
func ParsePreset(name string) (KDFPreset, bool) {
	switch name {
	case "interactive":
		return PresetInteractive, true
	case "moderate":
		return PresetModerate, true
	case "sensitive":
		return PresetSensitive, true
	default:
		return 0, false
	}
}

// KDFParams mirrors the on-disk KDF cost fields. Parallelism is carried for
// completeness but is not stored in the header; it is always 1.
type KDFParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
}
