package parquet

import "testing"

func TestSelectStrategy(t *testing.T) {
	cases := []struct {
		n    int
		want Strategy
	}{
		{1, StrategySmall},
		{50_000, StrategySmall},
		{50_001, StrategyMedium},
		{100_000, StrategyMedium},
		{100_001, StrategyLarge},
	}
	for _, c := range cases {
		if got := selectStrategy(c.n); got != c.want {
			t.Errorf("selectStrategy(%d) = %v, want %v", c.n, got, c.want)
		}
	}
}

func TestBatchSize_ClampsToBounds(t *testing.T) {
	// 10_000_000 / 5 = 2_000_000, exactly the max.
	if got := batchSize(5); got != 2_000_000 {
		t.Errorf("batchSize(5) = %d, want 2_000_000", got)
	}
	// Many columns drives the raw formula below the 100_000 floor.
	if got := batchSize(1000); got != 100_000 {
		t.Errorf("batchSize(1000) = %d, want 100_000 (floor)", got)
	}
	// A single column would blow past the 2_000_000 ceiling unclamped.
	if got := batchSize(1); got != 2_000_000 {
		t.Errorf("batchSize(1) = %d, want 2_000_000 (ceiling)", got)
	}
}

func TestUseWorker_MemoryThreshold(t *testing.T) {
	// 200_000 rows * 10 cols * 50 bytes = 100_000_000 bytes, under 500MB.
	if !useWorker(200_000, 10) {
		t.Error("expected useWorker true under the 500MB estimate")
	}
	// 3_000_000 rows * 10 cols * 50 bytes = 1_500_000_000 bytes, over 500MB.
	if useWorker(3_000_000, 10) {
		t.Error("expected useWorker false over the 500MB estimate")
	}
}

func TestCheckRowCap(t *testing.T) {
	if err := checkRowCap(MaxRows); err != nil {
		t.Errorf("expected MaxRows itself to be allowed, got %v", err)
	}
	err := checkRowCap(MaxRows + 1)
	if err == nil {
		t.Fatal("expected an error for a row count over the cap")
	}
	if !contains(err.Error(), "too large") {
		t.Errorf("expected error message to mention %q, got %q", "too large", err.Error())
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
