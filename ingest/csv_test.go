package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_CommaDelimited(t *testing.T) {
	rows, err := ParseCSV([]byte("a,b\n1,2\n3,4\n"), "", false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}, rows)
}

func TestParseCSV_FallsBackToSemicolon(t *testing.T) {
	rows, err := ParseCSV([]byte("a;b\n1;2\n3;4\n"), "", false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}, rows)
}

func TestParseCSV_ExplicitDelimiter(t *testing.T) {
	rows, err := ParseCSV([]byte("a|b\n1|2\n"), "|", false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}

func TestParseCSV_DropsTrailingShortRow(t *testing.T) {
	rows, err := ParseCSV([]byte("a,b\n1,2\n3\n"), "", false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}

func TestParseCSV_TrimsTrailingEmptyHeaderColumn(t *testing.T) {
	rows, err := ParseCSV([]byte("a,b,\n1,2,3\n"), "", false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, rows[0])
}

func TestParseCSV_TrailingEmptyHeaderKeepsDataRows(t *testing.T) {
	rows, err := ParseCSV([]byte("a,b,\n1,2,3\n"), "", false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}
