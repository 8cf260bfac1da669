package store

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithLogger_SetsOnStore(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opt := WithLogger(zerolog.New(&buf))

	s := &Store{}
	if err := opt(s); err != nil {
		t.Fatalf("WithLogger returned error: %v", err)
	}
	s.Log.Info().Str("tree", "meta").Msg("hello")
	for _, want := range []string{`"tree":"meta"`, `"component":"store"`} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Fatalf("log line missing %s, got %q", want, buf.String())
		}
	}
}
