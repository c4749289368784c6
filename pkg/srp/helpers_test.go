package srp_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// queuedRandom hashes with the system provider but serves queued random bytes first.
type queuedRandom struct {
	*srp.SystemProvider

	mu    sync.Mutex
	queue [][]byte
}

func newQueuedRandom(queue ...[]byte) *queuedRandom {
	return &queuedRandom{SystemProvider: srp.NewSystemProvider(), queue: queue}
}

func (q *queuedRandom) RandomBytes(n int) ([]byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.queue) == 0 {
		return q.SystemProvider.RandomBytes(n)
	}
	next := q.queue[0]
	q.queue = q.queue[1:]
	return next, nil
}

// recordingLogger captures log calls.
type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func (r *recordingLogger) record(level, msg string, fields []map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	merged := map[string]any{}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	r.entries = append(r.entries, logEntry{level: level, msg: msg, fields: merged})
}

func (r *recordingLogger) Debug(msg string, fields ...map[string]any) { r.record("debug", msg, fields) }
func (r *recordingLogger) Warn(msg string, fields ...map[string]any)  { r.record("warn", msg, fields) }

func (r *recordingLogger) byLevel(level string) []logEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []logEntry
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

func newParams(t *testing.T, alg srp.HashAlgorithm, group srp.PrimeGroup) *srp.Params {
	t.Helper()

	p, err := srp.NewParams(context.Background(), srp.NewSystemProvider(), alg, group)
	require.NoError(t, err)
	return p
}

// registration holds what a server stores plus the password-derived x.
type registration struct {
	username   string
	salt       string
	privateKey string
	verifier   string
}

func register(t *testing.T, p *srp.Params, username, password string) registration {
	t.Helper()
	ctx := context.Background()

	client := srp.NewClient(p)
	salt, err := client.GenerateSalt()
	require.NoError(t, err)

	x, err := srp.RFC5054Deriver{Params: p}.PrivateKey(ctx, salt, username, password)
	require.NoError(t, err)

	v, err := client.DeriveVerifier(x)
	require.NoError(t, err)

	return registration{username: username, salt: salt, privateKey: x, verifier: v}
}
