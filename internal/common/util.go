package common

// WipeByteArray zeroes the slice in place. Used for secret key input buffers
// once a signer has been constructed from them. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
