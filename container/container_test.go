package container_test

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adacomp/aapc/container"
	"github.com/adacomp/aapc/rle"
	aapctesting "github.com/adacomp/aapc/testing"
)

func TestRoundTrip(t *testing.T) {
	// Three blocks' worth of data: long runs, noise, and marker bytes mixed
	// together so every encoder path shows up in at least one block.
	noise := make([]byte, 100_000)
	rand.Read(noise)

	multiBlock := bytes.Repeat([]byte{0}, 300_000)
	multiBlock = append(multiBlock, noise...)
	multiBlock = append(multiBlock, bytes.Repeat([]byte{rle.DefaultMarker}, 200_000)...)

	testData := []struct {
		Name string
		Data []byte
	}{
		{"empty", []byte{}},
		{"single block", []byte("abbcccddddeeeee")},
		{"exactly one block", bytes.Repeat([]byte{7}, container.BlockSize)},
		{"one byte past a block", bytes.Repeat([]byte{7}, container.BlockSize+1)},
		{"multiple blocks", multiBlock},
	}

	for _, test := range testData {
		t.Run(
			test.Name,
			func(t *testing.T) {
				packed := container.Pack(rle.Default, test.Data)
				t.Logf("packed %d to %d", len(test.Data), len(packed))

				unpacked, err := container.Unpack(rle.Default, packed)
				require.NoError(t, err, "unexpected error while unpacking")

				if len(test.Data) == 0 {
					assert.Empty(t, unpacked)
				} else {
					assert.Equal(t, test.Data, unpacked, "round trip is lossy")
				}
			},
		)
	}
}

func TestRoundTrip__CustomCodec(t *testing.T) {
	codec := rle.New(0x00)
	data := append(bytes.Repeat([]byte{0}, 5000), []byte{1, 2, 3}...)

	packed := container.Pack(codec, data)
	unpacked, err := container.Unpack(codec, packed)
	require.NoError(t, err)
	assert.Equal(t, data, unpacked)
}

func TestUnpack__TruncatedHeaders(t *testing.T) {
	tests := []struct {
		Input []byte
		Name  string
	}{
		{[]byte{}, "empty stream"},
		{[]byte{0, 0}, "cut inside block count"},
		{[]byte{0, 0, 0, 1}, "block count without block header"},
		{[]byte{0, 0, 0, 1, 0, 0}, "cut inside block length"},
	}

	for _, test := range tests {
		t.Run(
			test.Name,
			func(t *testing.T) {
				unpacked, err := container.Unpack(rle.Default, test.Input)
				require.Error(t, err)
				assert.ErrorIs(t, err, container.ErrTruncatedHeader)
				assert.Nil(t, unpacked)
			},
		)
	}
}

func TestUnpack__TruncatedBlock(t *testing.T) {
	packed := container.Pack(rle.Default, bytes.Repeat([]byte{9}, 1000))

	unpacked, err := container.Unpack(rle.Default, packed[:len(packed)-1])
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrTruncatedBlock)
	assert.Nil(t, unpacked)
}

// A block count of 0xFFFFFFFF with no payload must fail cleanly instead of
// trying to allocate for four billion blocks.
func TestUnpack__AdversarialBlockCount(t *testing.T) {
	input := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	_, err := container.Unpack(rle.Default, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrTruncatedHeader)
}

func TestUnpack__TrailingData(t *testing.T) {
	packed := container.Pack(rle.Default, []byte("hello"))
	packed = append(packed, 0xAA)

	_, err := container.Unpack(rle.Default, packed)
	require.Error(t, err)
	assert.ErrorIs(t, err, container.ErrTrailingData)
}

// A packed bitmap fixture comes back through the stream helper at its
// original dimensions and contents.
func TestRoundTrip__ImageFixture(t *testing.T) {
	const width, height = 640, 480
	image := aapctesting.CreateRunImage(width, height, 0, t)

	packed := container.Pack(rle.Default, image)
	t.Logf("image packed %d -> %d", len(image), len(packed))
	assert.Less(t, len(packed), len(image), "bitmap-shaped data should shrink")

	stream := aapctesting.LoadImage(t, rle.Default, packed, width, height)
	unpacked := make([]byte, width*height)
	_, err := io.ReadFull(stream, unpacked)
	require.NoError(t, err)
	assert.Equal(t, image, unpacked)
}

// Corruption inside a block surfaces the codec's own error, wrapped with the
// block index.
func TestUnpack__CorruptPayload(t *testing.T) {
	payload := []byte{1, 2, rle.DefaultMarker}

	packed := make([]byte, 4)
	binary.BigEndian.PutUint32(packed, 1)
	packed = binary.BigEndian.AppendUint32(packed, uint32(len(payload)))
	packed = append(packed, payload...)

	_, err := container.Unpack(rle.Default, packed)
	require.Error(t, err)
	assert.ErrorIs(t, err, rle.ErrTruncatedEscape)
	assert.Contains(t, err.Error(), "block 0")
}
