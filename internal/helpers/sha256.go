package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// shortHashLen is the number of hex characters used in source identifiers.
const shortHashLen = 8

func SHA256(input string) string {
	return SHA256Bytes([]byte(input))
}

func SHA256Bytes(input []byte) string {
	hash := sha256.Sum256(input)
	return hex.EncodeToString(hash[:])
}

func SHA256Reader(reader io.Reader) (string, error) {
	hash := sha256.New()
	if _, err := io.Copy(hash, reader); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

// ShortSHA256 returns the leading characters of the content hash, used to build
// stable source URLs for in-memory configuration sources.
func ShortSHA256(input string) string {
	return SHA256(input)[:shortHashLen]
}
