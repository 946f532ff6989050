package rle

// ByteRun represents a single run of a particular byte value.
type ByteRun struct {
	// Byte is the byte value for this run.
	Byte byte
	// Length gives the number of times the byte occurs in the run (not the
	// number of times it's repeated).
	//
	// A valid run will always have this be 1 or greater. A value less than 1
	// indicates the end of the input.
	Length int
}

// InvalidRun is what [RunScanner.Next] returns once the input is exhausted.
var InvalidRun = ByteRun{Byte: 0, Length: 0}

// RunScanner splits a byte slice into maximal runs of identical byte values,
// scanning left to right.
type RunScanner struct {
	data []byte
	pos  int
}

func NewRunScanner(data []byte) *RunScanner {
	return &RunScanner{data: data}
}

// Next returns a [ByteRun] for the next byte or run of byte values in the
// input. The second return value is false once no bytes remain.
func (scanner *RunScanner) Next() (ByteRun, bool) {
	if scanner.pos >= len(scanner.data) {
		return InvalidRun, false
	}

	firstByte := scanner.data[scanner.pos]
	var runLength int
	for runLength = 1; scanner.pos+runLength < len(scanner.data); runLength++ {
		if scanner.data[scanner.pos+runLength] != firstByte {
			break
		}
	}
	scanner.pos += runLength
	return ByteRun{Byte: firstByte, Length: runLength}, true
}
