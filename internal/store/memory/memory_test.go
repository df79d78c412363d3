package memory

import (
	"context"
	"testing"
)

func TestLoadMissingKey(t *testing.T) {
	st := New()
	raw, ok, err := st.Load(context.Background(), "nope")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok || raw != nil {
		t.Fatalf("expected miss, got ok=%v raw=%v", ok, raw)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New()
	ctx := context.Background()

	if err := st.Save(ctx, "k", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, ok, err := st.Load(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if string(raw) != `[1,2,3]` {
		t.Fatalf("unexpected value %s", raw)
	}
}

func TestValuesAreCopied(t *testing.T) {
	st := New()
	ctx := context.Background()

	in := []byte("abc")
	if err := st.Save(ctx, "k", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in[0] = 'z' // mutating the caller's slice must not touch the store

	raw, _, _ := st.Load(ctx, "k")
	if string(raw) != "abc" {
		t.Fatalf("stored value aliased caller slice: %s", raw)
	}

	raw[0] = 'z' // mutating the loaded slice must not touch the store
	again, _, _ := st.Load(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("loaded value aliased stored slice: %s", again)
	}
}

func TestSeededKeys(t *testing.T) {
	st := NewSeeded(map[string][]byte{"a": []byte("1"), "b": []byte("2")})
	keys := st.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}
}
