package mocks

// Compressor is a mock implementation of ports.Compressor. By default it
// passes data through unchanged, which keeps payload assertions simple.
type Compressor struct {
	CompressFunc   func(src []byte) ([]byte, error)
	DecompressFunc func(src []byte) ([]byte, error)
}

func (m *Compressor) Compress(src []byte) ([]byte, error) {
	if m.CompressFunc != nil {
		return m.CompressFunc(src)
	}
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}

func (m *Compressor) Decompress(src []byte) ([]byte, error) {
	if m.DecompressFunc != nil {
		return m.DecompressFunc(src)
	}
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}
