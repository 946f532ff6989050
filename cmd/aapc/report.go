package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// FileReport is one row of the CSV report written by the test-folder command.
type FileReport struct {
	Timestamp         int64   `csv:"timestamp"`
	File              string  `csv:"file"`
	OriginalSize      int     `csv:"original_size"`
	PackedSize        int     `csv:"packed_size"`
	Ratio             float64 `csv:"ratio"`
	CompressSeconds   float64 `csv:"compress_seconds"`
	DecompressSeconds float64 `csv:"decompress_seconds"`
	CompressSpeed     float64 `csv:"compress_bytes_per_second"`
	DecompressSpeed   float64 `csv:"decompress_bytes_per_second"`
}

// Report converts the measurements into a CSV row for the named file.
func (result roundTripResult) Report(name string) *FileReport {
	return &FileReport{
		Timestamp:         time.Now().Unix(),
		File:              name,
		OriginalSize:      result.OriginalSize,
		PackedSize:        result.PackedSize,
		Ratio:             result.Ratio,
		CompressSeconds:   result.CompressTime.Seconds(),
		DecompressSeconds: result.DecompressTime.Seconds(),
		CompressSpeed:     speed(result.OriginalSize, result.CompressTime),
		DecompressSpeed:   speed(result.OriginalSize, result.DecompressTime),
	}
}

func speed(size int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(size) / elapsed.Seconds()
}

func writeReport(path string, reports []*FileReport) error {
	reportFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	defer reportFile.Close()

	err = gocsv.MarshalFile(&reports, reportFile)
	if err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
