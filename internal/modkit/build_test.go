package modkit

import (
	"net/http"
	"testing"

	"combatlog/internal/modkit/httpkit"
)

type fakePorts struct{ Name string }

func TestBuild_Defaults(t *testing.T) {
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil {
		t.Fatalf("unexpected defaults: %+v", b)
	}
	if b.Register == nil {
		t.Fatalf("Register should default to a no op")
	}
	b.Register(nil)
}

func TestBuild_AppliesOptions(t *testing.T) {
	called := 0
	mw := func(next http.Handler) http.Handler { return next }
	b := Build(
		WithName("history"),
		WithPrefix("/history"),
		WithMiddlewares(mw, mw),
		WithPorts(fakePorts{Name: "p"}),
		WithRegister(func(httpkit.Router) { called++ }),
	)
	if b.Name != "history" || b.Prefix != "/history" {
		t.Fatalf("name/prefix: got %q %q", b.Name, b.Prefix)
	}
	if len(b.Mw) != 2 {
		t.Fatalf("mw len: got %d want 2", len(b.Mw))
	}
	p, ok := b.Ports.(fakePorts)
	if !ok || p.Name != "p" {
		t.Fatalf("ports: got %#v", b.Ports)
	}
	b.Register(nil)
	if called != 1 {
		t.Fatalf("register calls: got %d want 1", called)
	}
}

func TestDeps_HasStore(t *testing.T) {
	if (Deps{}).HasStore() {
		t.Fatalf("zero deps should not report a store")
	}
}
