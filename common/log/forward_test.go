package log

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/diamondburned/arikawa/v3/api/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type fakeExecutor struct {
	mu    sync.Mutex
	calls []webhook.ExecuteData
}

func (f *fakeExecutor) Execute(data webhook.ExecuteData) error {
	f.mu.Lock()
	f.calls = append(f.calls, data)
	f.mu.Unlock()
	return nil
}

func (f *fakeExecutor) embeds() (titles []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		for _, e := range c.Embeds {
			titles = append(titles, e.Title+":"+e.Description)
		}
	}
	return titles
}

func runForwarder(t *testing.T, f *Forwarder, entries ...zapcore.Entry) {
	t.Helper()

	for _, e := range entries {
		require.NoError(t, f.Hook(e))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwarder did not stop")
	}
}

func TestForwarderSkipsLowLevels(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	f := newForwarder(exec, "bot", time.Minute)

	runForwarder(t, f,
		zapcore.Entry{Level: zapcore.DebugLevel, Message: "debug"},
		zapcore.Entry{Level: zapcore.InfoLevel, Message: "info"},
		zapcore.Entry{Level: zapcore.WarnLevel, Message: "warn"},
	)

	assert.Equal(t, []string{"WARN:```\nwarn\n```"}, exec.embeds())
}

func TestForwarderDedupes(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	f := newForwarder(exec, "bot", time.Minute)

	runForwarder(t, f,
		zapcore.Entry{Level: zapcore.ErrorLevel, Message: "connection lost"},
		zapcore.Entry{Level: zapcore.ErrorLevel, Message: "connection lost"},
		zapcore.Entry{Level: zapcore.ErrorLevel, Message: "something else"},
	)

	assert.Len(t, exec.embeds(), 2)
}

func TestForwarderBatches(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{}
	f := newForwarder(exec, "bot", time.Minute)

	var entries []zapcore.Entry
	for _, msg := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		entries = append(entries, zapcore.Entry{Level: zapcore.ErrorLevel, Message: msg})
	}
	runForwarder(t, f, entries...)

	exec.mu.Lock()
	defer exec.mu.Unlock()
	require.Len(t, exec.calls, 2)
	assert.Len(t, exec.calls[0].Embeds, maxBatch)
	assert.Len(t, exec.calls[1].Embeds, 2)
	assert.Equal(t, "bot", exec.calls[0].Username)
}

func TestEntryEmbedTruncatesRunes(t *testing.T) {
	t.Parallel()

	e := entryEmbed(zapcore.Entry{Level: zapcore.ErrorLevel, Message: strings.Repeat("é", 5000)})
	assert.True(t, utf8.ValidString(e.Description))
	assert.Contains(t, e.Description, "…")
	assert.Less(t, utf8.RuneCountInString(e.Description), 4100)
}
