package storage

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReaderMonotonicAndCompletes(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1000)
	var reported []float64
	pr := newProgressReader(bytes.NewReader(payload), int64(len(payload)), func(pct float64) {
		reported = append(reported, pct)
	})

	buf := make([]byte, 64)
	for {
		_, err := pr.Read(buf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	pr.finish()

	require.NotEmpty(t, reported)
	for i := 1; i < len(reported); i++ {
		assert.GreaterOrEqual(t, reported[i], reported[i-1], "progress must never decrease")
	}
	assert.Equal(t, 100.0, reported[len(reported)-1])
}

func TestProgressReaderEmptyPayload(t *testing.T) {
	var reported []float64
	pr := newProgressReader(bytes.NewReader(nil), 0, func(pct float64) {
		reported = append(reported, pct)
	})

	_, err := pr.Read(make([]byte, 8))
	assert.Equal(t, io.EOF, err)

	pr.finish()
	assert.Equal(t, []float64{100}, reported, "empty transfers still report completion")
}

func TestProgressReaderFinishIsIdempotent(t *testing.T) {
	var terminal int
	pr := newProgressReader(bytes.NewReader([]byte("a")), 1, func(pct float64) {
		if pct == 100 {
			terminal++
		}
	})

	_, _ = io.ReadAll(pr)
	pr.finish()
	pr.finish()

	assert.Equal(t, 1, terminal, "100 is reported exactly once")
}

func TestProgressReaderWithholds100UntilFinish(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 1000)
	var reported []float64
	pr := newProgressReader(bytes.NewReader(payload), int64(len(payload)), func(pct float64) {
		reported = append(reported, pct)
	})

	_, err := io.Copy(io.Discard, pr)
	require.NoError(t, err)

	require.NotEmpty(t, reported)
	for _, pct := range reported {
		assert.Less(t, pct, 100.0, "consuming the payload must not report completion")
	}

	pr.finish()
	assert.Equal(t, 100.0, reported[len(reported)-1])
}

func TestProgressReaderNilCallback(t *testing.T) {
	pr := newProgressReader(bytes.NewReader([]byte("abc")), 3, nil)

	data, err := io.ReadAll(pr)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
	pr.finish()
}
