// Package container frames codec output into independently encoded blocks so
// whole files can be compressed and expanded without the codec itself needing
// a header.
//
// The layout is a big-endian uint32 block count, then for each block a
// big-endian uint32 payload length followed by that many bytes of encoded
// data. Blocks cover [BlockSize] bytes of original data each, except the last
// one, which covers whatever remains.
package container

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/adacomp/aapc"
)

// BlockSize is how many bytes of original data each block covers.
const BlockSize = 256 * 1024

// headerSize is the size of the uint32 fields framing the stream.
const headerSize = 4

var (
	// ErrTruncatedHeader is returned when the stream ends inside the block
	// count or inside a block's length field.
	ErrTruncatedHeader = errors.New("container stream ends inside a header")

	// ErrTruncatedBlock is returned when a block's length field promises
	// more payload bytes than the stream holds.
	ErrTruncatedBlock = errors.New("container block is shorter than its header claims")

	// ErrTrailingData is returned when bytes remain after the last block.
	ErrTrailingData = errors.New("container stream has data past the final block")
)

// Pack compresses data with the given codec and frames the result. Packing
// never fails: every block has a defined encoding, and empty input produces
// a frame with a block count of zero.
func Pack(codec aapc.Codec, data []byte) []byte {
	blockCount := (len(data) + BlockSize - 1) / BlockSize

	output := make([]byte, headerSize, headerSize+len(data)/2)
	binary.BigEndian.PutUint32(output, uint32(blockCount))

	for start := 0; start < len(data); start += BlockSize {
		end := start + BlockSize
		if end > len(data) {
			end = len(data)
		}

		encoded := codec.Encode(data[start:end])
		output = binary.BigEndian.AppendUint32(output, uint32(len(encoded)))
		output = append(output, encoded...)
	}
	return output
}

// Unpack reverses Pack, decoding each block with the given codec and
// concatenating the results. Every header field is checked against the
// actual stream length before being trusted; a malformed or truncated
// stream yields an error and no output.
func Unpack(codec aapc.Codec, data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf(
			"%w: %d byte(s) total", ErrTruncatedHeader, len(data))
	}
	blockCount := int(binary.BigEndian.Uint32(data))
	offset := headerSize

	var output []byte
	for blockIndex := 0; blockIndex < blockCount; blockIndex++ {
		if len(data)-offset < headerSize {
			return nil, fmt.Errorf(
				"%w: block %d of %d", ErrTruncatedHeader, blockIndex, blockCount)
		}
		payloadLen := int(binary.BigEndian.Uint32(data[offset:]))
		offset += headerSize

		if len(data)-offset < payloadLen {
			return nil, fmt.Errorf(
				"%w: block %d claims %d bytes, %d remain",
				ErrTruncatedBlock,
				blockIndex,
				payloadLen,
				len(data)-offset,
			)
		}

		decoded, err := codec.Decode(data[offset : offset+payloadLen])
		if err != nil {
			return nil, fmt.Errorf("decoding block %d: %w", blockIndex, err)
		}
		output = append(output, decoded...)
		offset += payloadLen
	}

	if offset != len(data) {
		return nil, fmt.Errorf(
			"%w: %d byte(s) left over", ErrTrailingData, len(data)-offset)
	}
	return output, nil
}
