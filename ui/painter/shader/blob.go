package shader

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"os"
	"path/filepath"
)

// Blob file layout: 4-byte magic, 1-byte format version, 32-byte cache key
// hash, 32-byte payload checksum, then the raw SPIR-V payload. Any field that
// fails verification makes the loader fall back to a fresh compile — a stale
// or tampered blob must never reach the device.

var blobMagic = []byte("OXSB")

const blobVersion = 1

const blobHeaderLen = 4 + 1 + 32 + 32

// blobPath returns the on-disk path for a cache key hash.
func (m *manager) blobPath(hash [32]byte) string {
	return filepath.Join(m.blobDir, hex.EncodeToString(hash[:])+".oxsb")
}

// loadBlob reads and verifies a persisted bytecode blob for the given key.
// Returns ok=false on any read, format, or hash mismatch so the caller
// recompiles instead of using questionable bytecode.
func (m *manager) loadBlob(hash [32]byte) ([]byte, bool) {
	data, err := os.ReadFile(m.blobPath(hash))
	if err != nil {
		return nil, false
	}
	if len(data) <= blobHeaderLen {
		m.reject(hash, "truncated")
		return nil, false
	}
	if !bytes.Equal(data[:4], blobMagic) {
		m.reject(hash, "bad magic")
		return nil, false
	}
	if data[4] != blobVersion {
		m.reject(hash, "unsupported version")
		return nil, false
	}
	if !bytes.Equal(data[5:37], hash[:]) {
		m.reject(hash, "key hash mismatch")
		return nil, false
	}
	payload := data[blobHeaderLen:]
	sum := sha256.Sum256(payload)
	if !bytes.Equal(data[37:69], sum[:]) {
		m.reject(hash, "payload checksum mismatch")
		return nil, false
	}
	return payload, true
}

// storeBlob writes the bytecode blob for the given key to the blob directory,
// creating it if needed.
func (m *manager) storeBlob(hash [32]byte, spirv []byte) error {
	if err := os.MkdirAll(m.blobDir, 0o755); err != nil {
		return err
	}
	sum := sha256.Sum256(spirv)
	buf := make([]byte, 0, blobHeaderLen+len(spirv))
	buf = append(buf, blobMagic...)
	buf = append(buf, blobVersion)
	buf = append(buf, hash[:]...)
	buf = append(buf, sum[:]...)
	buf = append(buf, spirv...)
	return os.WriteFile(m.blobPath(hash), buf, 0o644)
}

// reject logs why a blob was discarded unless the manager runs quiet.
func (m *manager) reject(hash [32]byte, reason string) {
	if m.quiet {
		return
	}
	logf("shader: discarding cached blob %s: %s", hex.EncodeToString(hash[:8]), reason)
}

// logf is indirected so tests can silence diagnostics.
var logf = log.Printf
