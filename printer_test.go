package HEMark

import (
	"testing"
)

func TestPrintSummarizedVector(t *testing.T) {
	logger := NewLogger(true)

	logger.PrintSummarizedVector("empty", nil, 8)
	logger.PrintSummarizedVector("short", []uint64{1, 2, 3}, 3)
	// numElements larger than the vector must clamp, not panic
	logger.PrintSummarizedVector("clamped", []uint64{1, 2, 3}, 100)
	logger.PrintSummarizedVector("long", ConstantVector(64, 5), 32)
}

func TestPrintMessages(t *testing.T) {
	logger := NewLogger(true)
	logger.PrintMessages("setup failed for N=", 1024, ": ", nil)

	quiet := NewLogger(false)
	quiet.PrintMessages("suppressed")
	quiet.PrintSummarizedVector("suppressed", []uint64{1}, 1)
}
