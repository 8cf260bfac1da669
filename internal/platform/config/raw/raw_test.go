package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("LOG_LEVEL", " debug ")
	lc := New().Prefix("LOG_")

	if got := lc.Get("LEVEL", "info"); got != "debug" {
		t.Fatalf("Get(LEVEL) = %q, want debug", got)
	}
	if got := lc.Get("MISSING", "info"); got != "info" {
		t.Fatalf("Get(MISSING) = %q, want info", got)
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("RB_")
	cases := []struct {
		env  string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"YES", false, true},
		{"  true  ", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"", true, true},
		{"", false, false},
	}
	for _, tc := range cases {
		t.Setenv("RB_V", tc.env)
		if got := c.GetBool("V", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v, want %v", tc.env, tc.def, got, tc.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("RI_")
	cases := []struct {
		env  string
		want int
	}{
		{"5", 5},
		{" 12 ", 12},
		{"", 3},
		{"-1", 3},
		{"4x", 3},
	}
	for _, tc := range cases {
		t.Setenv("RI_V", tc.env)
		if got := c.GetInt("V", 3); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.env, got, tc.want)
		}
	}
}
