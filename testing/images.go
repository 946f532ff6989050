package testing

import (
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/adacomp/aapc"
	"github.com/adacomp/aapc/container"
)

// CreateRandomImage returns an image-sized buffer of random noise. It is
// guaranteed to either return a valid slice or fail the test and abort.
// Random data is the codec's pathological case, so this is what inflation
// tests should feed it.
func CreateRandomImage(width, height uint, t *testing.T) []byte {
	backingData := make([]byte, width*height)

	_, err := rand.Read(backingData)
	require.NoErrorf(
		t,
		err,
		"failed to fill a %dx%d image with random bytes",
		width,
		height,
	)
	return backingData
}

// CreateRunImage returns an image-sized buffer shaped like a real raw
// bitmap: rows of a single background value with a short noisy span at the
// start of each row. Compression tests want this shape since it exercises
// both the run and the literal paths.
func CreateRunImage(width, height uint, background byte, t *testing.T) []byte {
	backingData := make([]byte, 0, width*height)

	noiseLen := width / 8
	if noiseLen == 0 {
		noiseLen = 1
	}
	noise := make([]byte, noiseLen)

	for row := uint(0); row < height; row++ {
		_, err := rand.Read(noise)
		require.NoError(t, err, "failed to generate row noise")

		backingData = append(backingData, noise...)
		for col := noiseLen; col < width; col++ {
			backingData = append(backingData, background)
		}
	}
	return backingData
}

// LoadImage takes a container-packed image and returns a stream to access the
// unpacked data.
//
//   - Writes to the stream do not affect `packedImageBytes`.
//   - While the stream can be written to, its size is fixed to
//     `width * height`. Attempting to write past the end of this buffer will
//     trigger an error.
func LoadImage(
	t *testing.T, codec aapc.Codec, packedImageBytes []byte, width, height uint,
) io.ReadWriteSeeker {
	require.Greater(t, len(packedImageBytes), 0, "packed image is empty")

	imageBytes, err := container.Unpack(codec, packedImageBytes)
	require.NoError(t, err)

	require.Equal(
		t,
		width*height,
		uint(len(imageBytes)),
		"unpacked image is wrong size",
	)
	return bytesextra.NewReadWriteSeeker(imageBytes)
}
