package api

import (
	"context"
	"testing"
	"time"
)

func TestDeduperAdd(t *testing.T) {
	d := newTestDeduper(t)
	ctx := context.Background()

	added, err := d.Add(ctx, "k1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !added {
		t.Fatal("expected first add to succeed")
	}

	added, err = d.Add(ctx, "k1")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if added {
		t.Fatal("expected duplicate add to be rejected")
	}
}

func TestDeduperRemoveAllowsRetry(t *testing.T) {
	d := newTestDeduper(t)
	ctx := context.Background()

	if _, err := d.Add(ctx, "k1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := d.Remove(ctx, "k1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	added, err := d.Add(ctx, "k1")
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if !added {
		t.Fatal("expected key to be addable after removal")
	}
}

func TestDeduperAddMany(t *testing.T) {
	d := newTestDeduper(t)
	ctx := context.Background()

	if _, err := d.Add(ctx, "seen"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	results, err := d.AddMany(ctx, []string{"fresh-1", "seen", "fresh-2"})
	if err != nil {
		t.Fatalf("addmany: %v", err)
	}
	want := []bool{true, false, true}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("key %d: expected fresh=%v got %v", i, want[i], results[i])
		}
	}
}

func TestDeduperAddManyEmpty(t *testing.T) {
	d := newTestDeduper(t)

	results, err := d.AddMany(context.Background(), nil)
	if err != nil {
		t.Fatalf("addmany: %v", err)
	}
	if results != nil {
		t.Fatalf("expected nil results for empty batch, got %v", results)
	}
}

func TestDeduperKeysAreNamespaced(t *testing.T) {
	d := newTestDeduper(t)
	ctx := context.Background()

	if _, err := d.Add(ctx, "k1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	exists, err := d.client.Exists(ctx, "cmd:k1").Result()
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists != 1 {
		t.Fatal("expected key stored under the cmd namespace")
	}
}

func TestDeduperKeysExpire(t *testing.T) {
	d := newTestDeduper(t)
	ctx := context.Background()

	if _, err := d.Add(ctx, "k1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	ttl, err := d.client.TTL(ctx, "cmd:k1").Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}
