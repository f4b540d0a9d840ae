package realtime

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var errChannelBroken = errors.New("channel broken")

type recordingChannel struct {
	mu     sync.Mutex
	msgs   [][]byte
	fail   bool
	closed int
}

func (c *recordingChannel) Send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errChannelBroken
	}
	c.msgs = append(c.msgs, append([]byte(nil), msg...))
	return nil
}

func (c *recordingChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *recordingChannel) messages() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]byte(nil), c.msgs...)
}

func (c *recordingChannel) last(t *testing.T) map[string]any {
	t.Helper()
	msgs := c.messages()
	require.NotEmpty(t, msgs)
	var out map[string]any
	require.NoError(t, json.Unmarshal(msgs[len(msgs)-1], &out))
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
