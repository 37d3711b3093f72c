package ports

// Compressor abstracts the byte-oriented compression applied to subtitle
// payloads before embedding. The steganographic core treats the compressed
// bytes as opaque.
type Compressor interface {
	// Compress returns the compressed form of src.
	Compress(src []byte) ([]byte, error)

	// Decompress reverses Compress.
	Decompress(src []byte) ([]byte, error)
}
