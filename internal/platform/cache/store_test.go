package cache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_SetGetDelete(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "k", "v")
	if got, ok := store.Get(ctx, "k"); !ok || got != "v" {
		t.Fatalf("unexpected get result: %v %v", got, ok)
	}

	store.Delete(ctx, "k")
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestStore_GetOrLoad_CachesValue(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		got, err := store.GetOrLoad(ctx, "answer", loader)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got != 42 {
			t.Fatalf("unexpected value: %v", got)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected single load, got %d", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "room:1", "a")
	store.Set(ctx, "room:2", "b")
	store.Set(ctx, "player:1", "c")

	store.DeletePrefix(ctx, "room:")

	if _, ok := store.Get(ctx, "room:1"); ok {
		t.Fatal("expected room:1 evicted")
	}
	if _, ok := store.Get(ctx, "room:2"); ok {
		t.Fatal("expected room:2 evicted")
	}
	if _, ok := store.Get(ctx, "player:1"); !ok {
		t.Fatal("expected player:1 retained")
	}
}
