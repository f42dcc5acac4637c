package ipc

import "crypto/sha256"

// checksumSize is the SHA-256 digest size in bytes.
const checksumSize = 32

// checksum computes the SHA-256 digest of the blob section.
func checksum(data []byte) [checksumSize]byte {
	return sha256.Sum256(data)
}
