package main

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"

	"github.com/adacomp/aapc/container"
	"github.com/adacomp/aapc/rle"
)

var errRoundTripMismatch = errors.New("expanded data differs from the original")

// runSelfTest round-trips either the named file or a megabyte of generated
// data mixing runs with noise, and reports sizes and timings.
func runSelfTest(context *cli.Context) error {
	var data []byte
	var label string

	if context.Args().Present() {
		label = context.Args().First()
		var err error
		data, err = os.ReadFile(label)
		if err != nil {
			return fmt.Errorf("reading %s: %w", label, err)
		}
	} else {
		label = "generated data"
		data = generateTestData(1024 * 1024)
	}

	if context.Bool("verbose") {
		printProfile(data)
	}

	result, err := roundTrip(data)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	fmt.Printf("Original size: %d bytes\n", result.OriginalSize)
	fmt.Printf(
		"Compressed size: %d bytes (ratio: %.2f) in %v\n",
		result.PackedSize,
		result.Ratio,
		result.CompressTime,
	)
	fmt.Printf("Decompressed in %v, data is identical.\n", result.DecompressTime)
	return nil
}

// runFolderTest round-trips every regular file in the folder, writes a CSV
// report, and returns the collected failures, if any.
func runFolderTest(context *cli.Context) error {
	folder := context.String("dir")
	entries, err := os.ReadDir(folder)
	if err != nil {
		return fmt.Errorf("reading folder %s: %w", folder, err)
	}

	var failures *multierror.Error
	var reports []*FileReport

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(folder, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			failures = multierror.Append(failures, err)
			continue
		}
		if context.Bool("verbose") {
			fmt.Printf("%s: ", path)
			printProfile(data)
		}

		result, err := roundTrip(data)
		if err != nil {
			failures = multierror.Append(
				failures, fmt.Errorf("%s: %w", path, err))
			continue
		}
		reports = append(reports, result.Report(entry.Name()))
		fmt.Printf("Tested %s successfully.\n", entry.Name())
	}

	if len(reports) == 0 {
		fmt.Printf("No files found in %s.\n", folder)
	} else {
		reportPath := context.String("report")
		err = writeReport(reportPath, reports)
		if err != nil {
			failures = multierror.Append(failures, err)
		} else {
			fmt.Printf(
				"Tested %d file(s). Report written to %s.\n",
				len(reports),
				reportPath,
			)
		}
	}
	return failures.ErrorOrNil()
}

// roundTripResult holds the measurements from one compress/expand cycle.
type roundTripResult struct {
	OriginalSize   int
	PackedSize     int
	Ratio          float64
	CompressTime   time.Duration
	DecompressTime time.Duration
}

func roundTrip(data []byte) (roundTripResult, error) {
	start := time.Now()
	packed := container.Pack(rle.Default, data)
	compressTime := time.Since(start)

	start = time.Now()
	expanded, err := container.Unpack(rle.Default, packed)
	if err != nil {
		return roundTripResult{}, err
	}
	decompressTime := time.Since(start)

	if !bytes.Equal(data, expanded) {
		return roundTripResult{}, errRoundTripMismatch
	}

	return roundTripResult{
		OriginalSize:   len(data),
		PackedSize:     len(packed),
		Ratio:          ratio(len(packed), len(data)),
		CompressTime:   compressTime,
		DecompressTime: decompressTime,
	}, nil
}

// generateTestData builds roughly `size` bytes mixing runs of random length
// with spans of random noise, the shape the codec is meant for.
func generateTestData(size int) []byte {
	data := make([]byte, 0, size)
	for len(data) < size {
		runByte := byte(rand.Intn(256))
		runLength := 1 + rand.Intn(99)
		data = append(data, bytes.Repeat([]byte{runByte}, runLength)...)

		for i := 1 + rand.Intn(49); i > 0; i-- {
			data = append(data, byte(rand.Intn(256)))
		}
	}
	return data[:size]
}
