package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Useful for scrubbing passwords from memory once they have been used.
// Safe to call with a nil slice.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
