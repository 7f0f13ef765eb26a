package mocks

// Reader allows mocking io.Reader.
type Reader struct {
	MockRead func(b []byte) (int, error)
}

// Read calls MockRead.
func (r *Reader) Read(b []byte) (int, error) {
	return r.MockRead(b)
}
