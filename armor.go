package arsenic

import (
	"bytes"
	"encoding/pem"
)

// armorBlockType is the label inside the BEGIN/END lines of an armored
// container: "-----BEGIN ARSENIC-----" / "-----END ARSENIC-----".
const armorBlockType = "ARSENIC"

// armor wraps a binary container in a PEM-like envelope: a BEGIN line, the
// body base64-encoded and wrapped at a fixed column width, and an END line.
func armor(binary []byte) []byte {
	block := &pem.Block{Type: armorBlockType, Bytes: binary}
	return pem.EncodeToMemory(block)
}

// unarmor strips a PEM-like envelope and returns the inner binary bytes.
// Input that is not a valid envelope fails with BadCryptoboxPemHeader. The
// unwrapped bytes are handed to the same binary header parser used for
// unarmored containers: there is exactly one magic value and one header
// format regardless of which form the container arrived in.
func unarmor(data []byte) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != armorBlockType {
		return nil, NewError(BadCryptoboxPemHeader, "", nil)
	}
	return block.Bytes, nil
}

// isArmored reports whether data looks like an armored container, by its
// leading dash sequence, without fully parsing it.
func isArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, "\r\n\t "), []byte("-----BEGIN "))
}
