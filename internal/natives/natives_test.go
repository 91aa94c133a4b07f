package natives

import (
	"testing"

	"minilang/internal/value"
)

func TestRegistryHasDomainFunctions(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"uuid", "sha3", "db_open", "db_exec", "db_query", "ws_dial", "ws_send", "ws_recv"} {
		if r.Has(name) {
			t.Errorf("Has(%q) reported callable before its module was imported", name)
		}
	}
	for _, module := range []string{"uuid", "hash", "db", "ws"} {
		if !r.Import(module) {
			t.Errorf("Import(%q) reported an unknown native module", module)
		}
	}
	for _, name := range []string{"uuid", "sha3", "db_open", "db_exec", "db_query", "ws_dial", "ws_send", "ws_recv"} {
		if !r.Has(name) {
			t.Errorf("Registry missing native function %q after its module was imported", name)
		}
	}
	if r.Has("not_a_native") {
		t.Errorf("Has reported a function that was never registered")
	}
	if r.Import("not_a_module") {
		t.Errorf("Import reported a module that was never registered")
	}
}

func TestNativeCallFailsBeforeImport(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Call("uuid", nil); err == nil {
		t.Fatalf("expected an error calling uuid() before import \"uuid\"")
	}
}

func TestUUIDReturnsDistinctStrings(t *testing.T) {
	r := NewRegistry()
	r.Import("uuid")
	a, err := r.Call("uuid", nil)
	if err != nil {
		t.Fatalf("Call(uuid): %v", err)
	}
	b, err := r.Call("uuid", nil)
	if err != nil {
		t.Fatalf("Call(uuid): %v", err)
	}
	sa, _ := value.ToStr(a)
	sb, _ := value.ToStr(b)
	a.Decref()
	b.Decref()
	if sa == "" || sb == "" {
		t.Fatalf("uuid() returned an empty string")
	}
	if sa == sb {
		t.Fatalf("two calls to uuid() returned the same value: %q", sa)
	}
}

func TestSha3IsDeterministicAndHexEncoded(t *testing.T) {
	r := NewRegistry()
	r.Import("hash")
	arg := value.NewStr("minilang")
	out, err := r.Call("sha3", []value.Object{arg})
	if err != nil {
		t.Fatalf("Call(sha3): %v", err)
	}
	digest, _ := value.ToStr(out)
	out.Decref()
	if len(digest) != 64 {
		t.Fatalf("sha3 digest length = %d, want 64 hex characters", len(digest))
	}

	arg2 := value.NewStr("minilang")
	out2, err := r.Call("sha3", []value.Object{arg2})
	if err != nil {
		t.Fatalf("Call(sha3): %v", err)
	}
	digest2, _ := value.ToStr(out2)
	out2.Decref()
	if digest != digest2 {
		t.Fatalf("sha3 is not deterministic: %q != %q", digest, digest2)
	}
}

func TestCallUnknownNativeIsNameError(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Call("does_not_exist", nil); err == nil {
		t.Fatalf("expected an error calling an unregistered native")
	}
}
