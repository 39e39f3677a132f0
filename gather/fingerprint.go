package gather

import (
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Fingerprint returns a 64-bit hash of data
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

func textFingerprint(text string) uint64 {
	// the key is 32 bytes long, so hashing cannot fail
	hash, _ := Fingerprint([]byte(text))
	return hash
}
