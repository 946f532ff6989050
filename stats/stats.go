// Package stats profiles the run structure of a byte stream before it is
// encoded. The aapc command uses it for its verbose output; it is also handy
// on its own for deciding whether run-length encoding is worth applying to a
// given input at all.
package stats

import (
	"github.com/boljen/go-bitmap"

	"github.com/adacomp/aapc/rle"
)

// RunProfile summarizes how compressible a byte stream is under a particular
// run-length codec.
type RunProfile struct {
	// InputSize is the length of the profiled stream.
	InputSize int
	// RunCount is the number of maximal runs in the stream.
	RunCount int
	// LongestRun is the length of the longest run.
	LongestRun int
	// CompressibleBytes counts the bytes belonging to runs at or past the
	// break-even length, i.e. the bytes the encoder will collapse.
	CompressibleBytes int
	// MarkerBytes counts literal occurrences of the codec's marker value.
	// Each one costs two extra bytes in the output, so a high count here
	// predicts inflation.
	MarkerBytes int
	// EncodedSize is the exact output size the codec will produce for this
	// stream.
	EncodedSize int

	seenValues bitmap.Bitmap
}

// Profile scans data once and returns its profile under the given codec.
func Profile(data []byte, codec rle.Codec) RunProfile {
	profile := RunProfile{
		InputSize:  len(data),
		seenValues: bitmap.New(256),
	}

	scanner := rle.NewRunScanner(data)
	for {
		run, ok := scanner.Next()
		if !ok {
			break
		}

		profile.RunCount++
		profile.seenValues.Set(int(run.Byte), true)
		if run.Length > profile.LongestRun {
			profile.LongestRun = run.Length
		}
		if run.Length >= rle.BreakEvenRunLength {
			profile.CompressibleBytes += run.Length
		}
		if run.Byte == codec.Marker() {
			profile.MarkerBytes += run.Length
		}
	}

	profile.EncodedSize = codec.EncodedLen(data)
	return profile
}

// Seen reports whether the given byte value occurs anywhere in the stream.
func (profile RunProfile) Seen(value byte) bool {
	if profile.seenValues == nil {
		return false
	}
	return profile.seenValues.Get(int(value))
}

// DistinctValues returns how many different byte values occur in the stream.
func (profile RunProfile) DistinctValues() int {
	if profile.seenValues == nil {
		return 0
	}
	count := 0
	for i := 0; i < 256; i++ {
		if profile.seenValues.Get(i) {
			count++
		}
	}
	return count
}

// Ratio returns the predicted compression ratio, encoded size over input
// size. Values above 1 mean the encoding inflates this stream. An empty
// stream has a ratio of 0.
func (profile RunProfile) Ratio() float64 {
	if profile.InputSize == 0 {
		return 0
	}
	return float64(profile.EncodedSize) / float64(profile.InputSize)
}
