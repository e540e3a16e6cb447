package parquet

// Strategy is the materialization strategy selected from row count N and
// column count C (spec §4.H step 6).
type Strategy int

const (
	StrategySmall  Strategy = iota // N <= 50_000: single-pass synchronous
	StrategyMedium                 // 50_000 < N <= 100_000: async micro-batches
	StrategyLarge                  // N > 100_000: streaming, worker or main-thread
)

const (
	smallRowCap  = 50_000
	mediumRowCap = 100_000

	// workerMemoryThresholdBytes is the 500 MB estimated-transfer ceiling
	// past which the large-N streaming path falls back to main-thread
	// batching instead of a background worker (spec §4.H step 6).
	workerMemoryThresholdBytes = 500 * 1024 * 1024

	// bytesPerCellEstimate is the fixed per-cell memory estimate
	// used only to pick a materialization path, not to size an allocation.
	bytesPerCellEstimate = 50

	maxBatchSize = 2_000_000
	minBatchSize = 100_000
)

// selectStrategy picks the materialization strategy for N rows.
func selectStrategy(n int) Strategy {
	switch {
	case n <= smallRowCap:
		return StrategySmall
	case n <= mediumRowCap:
		return StrategyMedium
	default:
		return StrategyLarge
	}
}

// batchSize implements `clamp(min(2_000_000, max(100_000, 10_000_000 / C)))`
// (spec §4.H step 6) for the medium and large-main-thread paths.
func batchSize(columnCount int) int {
	if columnCount <= 0 {
		columnCount = 1
	}
	b := 10_000_000 / columnCount
	if b > maxBatchSize {
		b = maxBatchSize
	}
	if b < minBatchSize {
		b = minBatchSize
	}
	return b
}

// estimatedTransferBytes is `N * C * 50 bytes` (spec §4.H step 6).
func estimatedTransferBytes(rowCount, columnCount int) int64 {
	return int64(rowCount) * int64(columnCount) * bytesPerCellEstimate
}

// useWorker reports whether the large-N path should hand rows to a
// background worker (here: a goroutine consuming a channel) instead of
// streaming on the main thread.
func useWorker(rowCount, columnCount int) bool {
	return estimatedTransferBytes(rowCount, columnCount) <= workerMemoryThresholdBytes
}
