package module

import (
	"testing"

	phttp "combatlog/internal/platform/net/http"
	kit "combatlog/internal/platform/testkit"
)

type reader interface{ Read() string }

type readerImpl struct{}

func (readerImpl) Read() string { return "r" }

type bundle struct {
	Reader reader
	hidden reader
}

type fakeModule struct{ ports any }

func (fakeModule) MountRoutes(phttp.Router) {}
func (m fakeModule) Ports() any             { return m.ports }
func (fakeModule) Name() string             { return "fake" }

func TestPortsOf(t *testing.T) {
	cases := []struct {
		name  string
		ports any
		ok    bool
	}{
		{"nil", nil, false},
		{"direct", readerImpl{}, true},
		{"struct field", bundle{Reader: readerImpl{}}, true},
		{"pointer to struct", &bundle{Reader: readerImpl{}}, true},
		{"nil pointer", (*bundle)(nil), false},
		{"unexported only", bundle{hidden: readerImpl{}}, false},
		{"scalar", 42, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := PortsOf[reader](fakeModule{ports: c.ports})
			if ok != c.ok {
				t.Fatalf("ok: got %v want %v", ok, c.ok)
			}
			if ok && got.Read() != "r" {
				t.Fatalf("unexpected reader")
			}
		})
	}
}

func TestMustPortsOf_Panics(t *testing.T) {
	kit.MustPanic(t, func() { _ = MustPortsOf[reader](fakeModule{}) })
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("b", readerImpl{})
	Register("a", 7)

	if got, ok := PortsAs[reader]("b"); !ok || got.Read() != "r" {
		t.Fatalf("PortsAs(b) failed")
	}
	if _, ok := PortsAs[reader]("a"); ok {
		t.Fatalf("PortsAs(a) should fail type assertion")
	}
	if _, ok := PortsAs[reader]("missing"); ok {
		t.Fatalf("PortsAs(missing) should fail")
	}
	names := Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names: got %v", names)
	}
}
