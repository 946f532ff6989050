package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/adacomp/aapc/container"
	"github.com/adacomp/aapc/rle"
	"github.com/adacomp/aapc/stats"
)

func main() {
	app := cli.App{
		Name:  "aapc",
		Usage: "Compress and expand files with the AAPC run-length format",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "print a run profile of the input before processing",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Compress a file",
				Action:    compressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
			},
			{
				Name:      "decompress",
				Usage:     "Expand a compressed file",
				Action:    decompressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
			},
			{
				Name:      "test",
				Usage:     "Round-trip generated data, or a file if one is given",
				Action:    runSelfTest,
				ArgsUsage: "[FILE]",
			},
			{
				Name:   "test-folder",
				Usage:  "Round-trip every file in a folder and write a CSV report",
				Action: runFolderTest,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Value: "test_data",
						Usage: "folder holding the files to test",
					},
					&cli.StringFlag{
						Name:  "report",
						Value: "test_log.csv",
						Usage: "where to write the per-file report",
					},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func compressFile(context *cli.Context) error {
	inputPath, outputPath, err := twoPathArguments(context)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}
	if context.Bool("verbose") {
		printProfile(data)
	}

	start := time.Now()
	packed := container.Pack(rle.Default, data)
	elapsed := time.Since(start)

	err = os.WriteFile(outputPath, packed, 0o644)
	if err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Printf(
		"Compressed %s (%d bytes) to %s (%d bytes) in %v. Ratio: %.2f\n",
		inputPath,
		len(data),
		outputPath,
		len(packed),
		elapsed,
		ratio(len(packed), len(data)),
	)
	return nil
}

func decompressFile(context *cli.Context) error {
	inputPath, outputPath, err := twoPathArguments(context)
	if err != nil {
		return err
	}

	packed, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	start := time.Now()
	data, err := container.Unpack(rle.Default, packed)
	if err != nil {
		return fmt.Errorf("expanding %s: %w", inputPath, err)
	}
	elapsed := time.Since(start)

	err = os.WriteFile(outputPath, data, 0o644)
	if err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Printf(
		"Decompressed %s (%d bytes) to %s (%d bytes) in %v.\n",
		inputPath,
		len(packed),
		outputPath,
		len(data),
		elapsed,
	)
	return nil
}

func twoPathArguments(context *cli.Context) (string, string, error) {
	if context.NArg() != 2 {
		return "", "", fmt.Errorf(
			"expected an input and an output path, got %d argument(s)",
			context.NArg(),
		)
	}
	return context.Args().Get(0), context.Args().Get(1), nil
}

func printProfile(data []byte) {
	profile := stats.Profile(data, rle.Default)
	fmt.Printf(
		"%d bytes, %d runs (longest %d), %d distinct values, "+
			"%d marker bytes, predicted output %d bytes (ratio %.2f)\n",
		profile.InputSize,
		profile.RunCount,
		profile.LongestRun,
		profile.DistinctValues(),
		profile.MarkerBytes,
		profile.EncodedSize,
		profile.Ratio(),
	)
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
