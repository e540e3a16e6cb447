package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idx(fields ...string) map[string]int {
	m := map[string]int{}
	for i, f := range fields {
		m[f] = i
	}
	return m
}

func TestEvaluateRow_SimpleSelection(t *testing.T) {
	q, err := Parse(`WHERE "age" >= "18"`)
	require.NoError(t, err)
	fi := idx("name", "age")

	assert.True(t, EvaluateRow([]string{"Alice", "30"}, fi, q))
	assert.False(t, EvaluateRow([]string{"Bob", "17"}, fi, q))
	assert.True(t, EvaluateRow([]string{"Cleo", "21"}, fi, q))
}

func TestEvaluateRow_NumericStringNormalization(t *testing.T) {
	// "1 234,5" under ScanNumber is 1234.5, so > 1000 matches.
	q, err := Parse(`WHERE "x" > "1000"`)
	require.NoError(t, err)
	fi := idx("x")
	assert.True(t, EvaluateRow([]string{"1 234,5"}, fi, q))
	assert.False(t, EvaluateRow([]string{"500"}, fi, q))
}

func TestEvaluateRow_EqualStar(t *testing.T) {
	q, _ := Parse(`WHERE "name" = "*"`)
	fi := idx("name")
	assert.True(t, EvaluateRow([]string{"Alice"}, fi, q))
	assert.False(t, EvaluateRow([]string{"  "}, fi, q))
}

func TestEvaluateRow_NotEqual(t *testing.T) {
	q, _ := Parse(`WHERE "n" <> "5"`)
	fi := idx("n")
	assert.False(t, EvaluateRow([]string{"5"}, fi, q))
	assert.True(t, EvaluateRow([]string{"6"}, fi, q))
}

func TestEvaluateRow_LikeAndNot(t *testing.T) {
	q, _ := Parse(`WHERE "name" LIKE "ali"`)
	fi := idx("name")
	assert.True(t, EvaluateRow([]string{"Alice"}, fi, q))

	q2, _ := Parse(`WHERE "name" NOT "ali"`)
	assert.False(t, EvaluateRow([]string{"Alice"}, fi, q2))
	assert.True(t, EvaluateRow([]string{"Bob"}, fi, q2))
}

func TestEvaluateRow_In(t *testing.T) {
	q, _ := Parse(`WHERE "cat" IN ("A","B")`)
	fi := idx("cat")
	assert.True(t, EvaluateRow([]string{"A"}, fi, q))
	assert.False(t, EvaluateRow([]string{"Z"}, fi, q))
}

func TestEvaluateRow_Between(t *testing.T) {
	q, _ := Parse(`WHERE "n" BETWEEN "10" AND "20"`)
	fi := idx("n")
	assert.True(t, EvaluateRow([]string{"15"}, fi, q))
	assert.False(t, EvaluateRow([]string{"25"}, fi, q))
}

func TestEvaluateRow_ColumnRefSubstitution(t *testing.T) {
	q, _ := Parse(`WHERE "a" = "$b$"`)
	fi := idx("a", "b")
	assert.True(t, EvaluateRow([]string{"5", "5"}, fi, q))
	assert.False(t, EvaluateRow([]string{"5", "6"}, fi, q))
}

func TestEvaluateRow_LeftAssociativeNoPrecedence(t *testing.T) {
	// a=1 OR a=2 AND a=3: left-associative means ((a=1 OR a=2) AND a=3), not
	// the usual AND-binds-tighter precedence.
	q, err := Parse(`WHERE "a" = "1" OR "a" = "2" AND "a" = "3"`)
	require.NoError(t, err)
	fi := idx("a")
	// For a=1: (true OR false) AND false = false; AND-binds-tighter would
	// give true OR (false AND false) = true.
	assert.False(t, EvaluateRow([]string{"1"}, fi, q))
	// For a=2: (false OR true) AND false = false
	assert.False(t, EvaluateRow([]string{"2"}, fi, q))
	// For a=3: (false OR false) AND true = false
	assert.False(t, EvaluateRow([]string{"3"}, fi, q))
}

func TestEvaluateRow_MissingFieldYieldsEmptyCell(t *testing.T) {
	q, _ := Parse(`WHERE "ghost" = "x"`)
	fi := idx("a")
	assert.False(t, EvaluateRow([]string{"x"}, fi, q))
}

func TestEvaluateRow_EmptyQueryMatchesEverything(t *testing.T) {
	q := &Query{}
	assert.True(t, EvaluateRow([]string{"anything"}, idx("a"), q))
}

func TestEvaluateRow_UnknownOperatorFallsBackToLike(t *testing.T) {
	q, _ := Parse(`WHERE "name" ~ "ali"`)
	fi := idx("name")
	assert.True(t, EvaluateRow([]string{"Alice"}, fi, q))
}
