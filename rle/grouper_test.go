package rle_test

import (
	"testing"

	"github.com/adacomp/aapc/rle"
)

type scannerTestCase struct {
	Data           []byte
	ExpectedResult rle.ByteRun
	Name           string
}

var scannerTestCases = []scannerTestCase{
	{[]byte{}, rle.InvalidRun, "empty"},
	{[]byte{0, 0, 1, 0, 0, 0, 0}, rle.ByteRun{Byte: 0, Length: 2}, "two initial"},
	{[]byte{6, 1, 5, 20, 31}, rle.ByteRun{Byte: 6, Length: 1}, "one byte"},
	{[]byte{9, 9, 9, 9, 9, 9}, rle.ByteRun{Byte: 9, Length: 6}, "entire run"},
}

func runScannerTestCase(t *testing.T, test scannerTestCase) {
	scanner := rle.NewRunScanner(test.Data)
	result, ok := scanner.Next()
	if result != test.ExpectedResult {
		t.Errorf("expected %+v, got %+v", test.ExpectedResult, result)
	}
	if ok != (len(test.Data) > 0) {
		t.Errorf("expected ok=%v, got %v", len(test.Data) > 0, ok)
	}
}

func TestRunScanner__Basic(t *testing.T) {
	for _, test := range scannerTestCases {
		t.Run(
			test.Name,
			func(t *testing.T) {
				runScannerTestCase(t, test)
			},
		)
	}
}

func TestRunScanner__Sequence(t *testing.T) {
	data := []byte{1, 9, 4, 4, 4, 4, 4, 6, 6, 0, 1, 0, 0, 0}
	expected := []rle.ByteRun{
		{Byte: 1, Length: 1}, {Byte: 9, Length: 1}, {Byte: 4, Length: 5},
		{Byte: 6, Length: 2}, {Byte: 0, Length: 1}, {Byte: 1, Length: 1},
		{Byte: 0, Length: 3}, rle.InvalidRun,
	}

	scanner := rle.NewRunScanner(data)
	for i, expectedRun := range expected {
		result, ok := scanner.Next()
		if result != expectedRun {
			t.Errorf(
				"run %d is wrong: expected %+v but got %+v",
				i,
				expectedRun,
				result,
			)
		}
		if expectedRun == rle.InvalidRun && ok {
			t.Errorf("run %d: expected ok to be false at end of input", i)
		}
	}
}
