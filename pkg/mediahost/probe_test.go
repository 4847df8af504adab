package mediahost

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRunner(t *testing.T, out []byte, err error) {
	t.Helper()
	original := Run
	Run = func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		assert.Equal(t, "ffprobe", binary)
		return out, err
	}
	t.Cleanup(func() { Run = original })
}

func TestProbeDuration(t *testing.T) {
	stubRunner(t, []byte("128.734694\n"), nil)

	c := &Client{}
	duration, err := c.ProbeDuration(context.Background(), "/tmp/in.mp4")
	require.NoError(t, err)
	assert.InDelta(t, 128.734694, duration, 0.0001)
}

func TestProbeDurationCommandFailure(t *testing.T) {
	stubRunner(t, nil, errors.New("exit status 1"))

	c := &Client{}
	_, err := c.ProbeDuration(context.Background(), "/tmp/in.mp4")
	assert.Error(t, err)
}

func TestProbeDurationGarbageOutput(t *testing.T) {
	stubRunner(t, []byte("N/A\n"), nil)

	c := &Client{}
	_, err := c.ProbeDuration(context.Background(), "/tmp/in.mp4")
	assert.Error(t, err)
}
