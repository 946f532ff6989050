// Package aapc defines the capability interface shared by all codecs in this
// module.
//
// The only concrete codec today is the escape-marker run-length encoder in the
// [github.com/adacomp/aapc/rle] package. Callers that may want to swap in a
// different compression scheme later (e.g. a dictionary coder) should depend
// on [Codec] rather than on the rle package directly; the container layer and
// the aapc command both do this.
package aapc

// Codec is a whole-buffer, lossless byte-stream transform.
//
// Implementations must be pure: no I/O, no retained state between calls, and
// no mutation of the input slice. Encode and Decode may therefore be called
// concurrently from multiple goroutines on different buffers.
type Codec interface {
	// Encode compresses the input. It is a total function: every input,
	// including an empty one, has a defined encoding. The output may be
	// larger than the input for data the scheme handles poorly.
	Encode(input []byte) []byte

	// Decode reverses Encode. For any input b, Decode(Encode(b)) must return
	// a byte-for-byte copy of b. Decoding malformed data returns an error
	// and no output; partial results are never returned.
	Decode(input []byte) ([]byte, error)
}
