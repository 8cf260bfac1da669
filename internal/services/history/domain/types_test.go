package domain

import (
	"encoding/json"
	"testing"
)

func TestHexKey_JSON(t *testing.T) {
	t.Parallel()
	item := EncounterSummaryItem{Key: HexKey{0x65, 0x1f, 0xff}}
	b, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Key != "651fff" {
		t.Fatalf("got %q want 651fff", back.Key)
	}

	var k HexKey
	if err := k.UnmarshalText([]byte("651fff")); err != nil || k.String() != "651fff" {
		t.Fatalf("round trip got %q err=%v", k.String(), err)
	}
	if err := k.UnmarshalText([]byte("zz")); err == nil {
		t.Fatalf("expected error for non hex input")
	}
}
