package specctra

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra/problem"
)

// gzipFixture writes a compressed copy of the fixture and returns its path
func gzipFixture(t *testing.T) string {
	t.Helper()

	raw, err := os.ReadFile(fixture)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "simple.dsn.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := gzip.NewWriter(f)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return path
}

func TestOpenPlainAndGzip(t *testing.T) {
	want, err := os.ReadFile(fixture)
	require.NoError(t, err)

	for _, path := range []string{fixture, gzipFixture(t)} {
		in, err := Open(path)
		require.NoError(t, err)

		got, err := io.ReadAll(in)
		require.NoError(t, err)
		require.NoError(t, in.Close())

		assert.Equal(t, string(want), string(got), path)
	}
}

func TestConvertGzipFile(t *testing.T) {
	res, err := ConvertFile(gzipFixture(t), problem.ExtraInfo{})
	require.NoError(t, err)
	assert.Len(t, res.Problem.Nets(), 3)
}

func TestOpenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dsn")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	in, err := Open(path)
	require.NoError(t, err)
	defer in.Close()

	_, err = Convert(in, problem.ExtraInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty input")
}
