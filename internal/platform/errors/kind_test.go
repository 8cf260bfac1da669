package errors

import (
	stderrs "errors"
	"strings"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{NotFoundf("day 2025-01-01"), KindHistory},
		{InvalidArgf("bad date"), KindHistory},
		{New(ErrorCodeNetwork, "dial"), KindNetwork},
		{New(ErrorCodeStorage, "write"), KindStorage},
		{New(ErrorCodeCodec, "decode"), KindStorage},
		{stderrs.New("plain"), KindUnknown},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.want {
			t.Fatalf("KindOf(%v) = %v, want %v", c.err, got, c.want)
		}
	}
	if KindStorage.String() != "Storage" || KindHistory.String() != "History" ||
		KindNetwork.String() != "Network" || KindUnknown.String() != "Unknown" {
		t.Fatalf("kind labels mismatch")
	}
}

func TestSummaryLine(t *testing.T) {
	if got := SummaryLine(nil); got != "" {
		t.Fatalf("SummaryLine(nil) = %q", got)
	}

	got := SummaryLine(stderrs.New("failed  to\n\tload   day"))
	if got != "failed to load day" {
		t.Fatalf("SummaryLine collapse = %q", got)
	}

	long := strings.Repeat("x", 200)
	got = SummaryLine(stderrs.New(long))
	if len([]rune(got)) != 120 || !strings.HasSuffix(got, "...") {
		t.Fatalf("SummaryLine truncate len=%d tail=%q", len([]rune(got)), got[len(got)-3:])
	}

	exact := strings.Repeat("y", 120)
	if got := SummaryLine(stderrs.New(exact)); got != exact {
		t.Fatalf("SummaryLine at limit should not truncate")
	}
}
