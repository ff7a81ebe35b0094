package utils

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrInvalidAddress is returned for strings that are not 20-byte hex addresses.
var ErrInvalidAddress = errors.New("invalid wallet address")

// IsWalletAddress reports whether s looks like a 0x-prefixed 20-byte hex address.
func IsWalletAddress(s string) bool {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}

// ChecksumAddress normalizes a wallet address to its EIP-55 checksummed form.
// Scheduling users are keyed by this canonical form so that lookups are
// insensitive to the casing a client happens to send.
func ChecksumAddress(address string) (string, error) {
	if !IsWalletAddress(address) {
		return "", ErrInvalidAddress
	}
	lower := strings.ToLower(address[2:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := make([]byte, len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if c >= 'a' && c <= 'f' {
			// Uppercase when the corresponding nibble of the hash is >= 8.
			nibble := digest[i/2]
			if i%2 == 0 {
				nibble >>= 4
			}
			if nibble&0x0f >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}
	return "0x" + string(out), nil
}
