package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainSource separates source-token hashing from any other use of SHA-256.
const DomainSource = "bestiary/source/v1"

// SourceHashPrefix starts every source hash token.
const SourceHashPrefix = "src"

// sourceHashHexLen is the number of hex digits kept from the digest.
const sourceHashHexLen = 16

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SourceHash computes the stable token stored in monsters.sourcehashes for a
// source name. The name is normalized first, so "Tome of Beasts" and
// " Tome  of Beasts" share a token.
//
// Every token has the same length and contains no comma, so a token can
// never be a substring of another token or straddle a list separator.
func SourceHash(name string) string {
	sum := hashWithDomain(DomainSource, []byte(NormalizeName(name)))
	return SourceHashPrefix + sum[:sourceHashHexLen]
}
