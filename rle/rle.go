package rle

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/adacomp/aapc"
)

// These constants define the wire format. Changing the marker byte of a codec
// breaks compatibility with data encoded under the old value, so DefaultMarker
// must never change for streams that are stored long-term.
const (
	// DefaultMarker is the marker byte used by the package-level Encode and
	// Decode functions.
	DefaultMarker byte = 0xFE

	// MaxRunLength is the longest run a single escape triple can represent,
	// bounded by its one-byte count field. Longer runs are split into
	// multiple triples.
	MaxRunLength = 255

	// tripleSize is the encoded size of an escape triple: marker byte,
	// value byte, count byte.
	tripleSize = 3

	// BreakEvenRunLength is the shortest run for which a triple is strictly
	// smaller than writing the bytes literally. A three-byte run costs three
	// bytes either way; ties go to literal emission.
	BreakEvenRunLength = tripleSize + 1
)

var (
	// ErrTruncatedEscape is returned by Decode when a marker byte starts an
	// escape triple but fewer than two bytes follow it.
	ErrTruncatedEscape = fmt.Errorf(
		"truncated escape triple: %w", io.ErrUnexpectedEOF)

	// ErrInvalidCount is returned by Decode when an escape triple carries a
	// count of zero. The encoder never produces one, so a zero count means
	// the stream is corrupted or was never this format to begin with.
	ErrInvalidCount = errors.New("escape triple has a count of zero")
)

// Codec encodes and decodes the escape-triple format under a particular
// marker byte. Codecs with different marker bytes produce incompatible
// streams.
//
// A Codec holds no mutable state; its methods can be used concurrently.
type Codec struct {
	marker byte
}

// Interface check so the container layer and CLI can hold this as an
// [aapc.Codec].
var _ aapc.Codec = Codec{}

// New returns a codec using the given marker byte. Unless you need to match
// an existing stream that reserved a different value, use the package-level
// functions, which encode with [DefaultMarker].
func New(marker byte) Codec {
	return Codec{marker: marker}
}

// Marker returns the byte value this codec reserves as its escape marker.
func (codec Codec) Marker() byte {
	return codec.marker
}

// Encode compresses input and returns the encoded stream in a newly
// allocated slice. It never fails; input the format handles badly (isolated
// marker bytes, no runs) comes out larger than it went in, up to three times
// the input size in the worst case.
func (codec Codec) Encode(input []byte) []byte {
	output := make([]byte, 0, len(input))
	scanner := NewRunScanner(input)
	for {
		run, ok := scanner.Next()
		if !ok {
			return output
		}
		output = codec.appendRun(output, run)
	}
}

// appendRun writes the encoded form of a single run to output.
func (codec Codec) appendRun(output []byte, run ByteRun) []byte {
	if run.Byte != codec.marker && run.Length < BreakEvenRunLength {
		return appendRepeated(output, run.Byte, run.Length)
	}

	for run.Length > MaxRunLength {
		output = append(output, codec.marker, run.Byte, MaxRunLength)
		run.Length -= MaxRunLength
	}

	switch {
	case run.Length == 0:
		// Run was a multiple of MaxRunLength, nothing left over.
	case run.Byte == codec.marker || run.Length >= BreakEvenRunLength:
		output = append(output, codec.marker, run.Byte, byte(run.Length))
	default:
		output = appendRepeated(output, run.Byte, run.Length)
	}
	return output
}

// EncodedLen returns the exact size Encode would produce for input, without
// building the output. Useful for preallocating or for deciding whether
// encoding is worthwhile at all.
func (codec Codec) EncodedLen(input []byte) int {
	size := 0
	scanner := NewRunScanner(input)
	for {
		run, ok := scanner.Next()
		if !ok {
			return size
		}
		size += codec.runEncodedLen(run)
	}
}

// runEncodedLen mirrors appendRun exactly; the two must never disagree.
func (codec Codec) runEncodedLen(run ByteRun) int {
	if run.Byte != codec.marker && run.Length < BreakEvenRunLength {
		return run.Length
	}

	size := 0
	for run.Length > MaxRunLength {
		size += tripleSize
		run.Length -= MaxRunLength
	}

	switch {
	case run.Length == 0:
	case run.Byte == codec.marker || run.Length >= BreakEvenRunLength:
		size += tripleSize
	default:
		size += run.Length
	}
	return size
}

// Decode expands an encoded stream back into the original bytes. The result
// is a newly allocated slice; the input is not modified.
//
// Decoding is all-or-nothing: on a malformed stream it returns a nil slice
// and one of [ErrTruncatedEscape] or [ErrInvalidCount], wrapped with the
// offset of the offending triple.
func (codec Codec) Decode(input []byte) ([]byte, error) {
	output := make([]byte, 0, len(input))

	for position := 0; position < len(input); {
		currentByte := input[position]
		if currentByte != codec.marker {
			output = append(output, currentByte)
			position++
			continue
		}

		// Hit the marker; the next two bytes are the run value and count.
		if len(input)-position < tripleSize {
			return nil, fmt.Errorf(
				"%w: marker %#02x at offset %d followed by %d byte(s)",
				ErrTruncatedEscape,
				codec.marker,
				position,
				len(input)-position-1,
			)
		}

		value := input[position+1]
		count := input[position+2]
		if count == 0 {
			return nil, fmt.Errorf(
				"%w: triple at offset %d", ErrInvalidCount, position)
		}

		output = append(output, bytes.Repeat([]byte{value}, int(count))...)
		position += tripleSize
	}
	return output, nil
}

func appendRepeated(output []byte, value byte, count int) []byte {
	for i := 0; i < count; i++ {
		output = append(output, value)
	}
	return output
}

// Default is the codec the package-level functions delegate to.
var Default = New(DefaultMarker)

// Encode compresses input using [DefaultMarker] as the escape marker.
func Encode(input []byte) []byte {
	return Default.Encode(input)
}

// Decode expands a stream that was encoded with [DefaultMarker].
func Decode(input []byte) ([]byte, error) {
	return Default.Decode(input)
}
