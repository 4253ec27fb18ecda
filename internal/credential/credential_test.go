// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package credential

import (
	"context"
	"sync"
	"testing"

	"github.com/olegiv/newsdash/internal/testutil"
)

func TestStore_CheckSetClear(t *testing.T) {
	n := NewNotifier()
	notified := 0
	n.Subscribe(func() { notified++ })

	s := NewStore(testutil.TestDB(t), n, testutil.TestLoggerSilent())
	ctx := context.Background()

	if got := s.Check(ctx); got != Missing {
		t.Fatalf("Check on empty store = %s, want missing", got)
	}

	if err := s.Set(ctx, "  AIzaSyExampleKey1234  "); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := s.Check(ctx); got != Present {
		t.Errorf("Check after Set = %s, want present", got)
	}
	key, err := s.Key(ctx)
	if err != nil || key != "AIzaSyExampleKey1234" {
		t.Errorf("Key() = %q, %v", key, err)
	}

	if err := s.Set(ctx, "   "); err != nil {
		t.Fatalf("Set blank: %v", err)
	}
	if got := s.Check(ctx); got != Missing {
		t.Errorf("Check after blank Set = %s, want missing", got)
	}

	_ = s.Set(ctx, "another-key-5678")
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := s.Check(ctx); got != Missing {
		t.Errorf("Check after Clear = %s, want missing", got)
	}
	// Clearing an empty store is fine.
	if err := s.Clear(ctx); err != nil {
		t.Errorf("second Clear: %v", err)
	}

	// Set, blank Set (clear), Set, Clear, Clear.
	if notified != 5 {
		t.Errorf("notified = %d, want 5", notified)
	}
}

func TestStore_NilNotifier(t *testing.T) {
	s := NewStore(testutil.TestDB(t), nil, nil)
	if err := s.Set(context.Background(), "key"); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func TestStatus_String(t *testing.T) {
	var zero Status
	if zero != Missing || zero.String() != "missing" || Present.String() != "present" {
		t.Errorf("unexpected Status strings: %q %q", zero, Present)
	}
}

func TestCheckerFunc(t *testing.T) {
	var c Checker = CheckerFunc(func(context.Context) Status { return Present })
	if c.Check(context.Background()) != Present {
		t.Error("CheckerFunc did not forward")
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{
		"":                     "",
		"abc":                  "•••",
		"12345678":             "••••••••",
		"AIzaSyExampleKey1234": "••••••••1234",
	}
	for in, want := range tests {
		if got := Mask(in); got != want {
			t.Errorf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNotifier_ZeroValue(t *testing.T) {
	var n Notifier
	n.Notify()

	calls := 0
	unsub := n.Subscribe(func() { calls++ })
	n.Notify()
	unsub()
	n.Notify()

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestNotifier(t *testing.T) {
	n := NewNotifier()

	var order []int
	unsubA := n.Subscribe(func() { order = append(order, 1) })
	n.Subscribe(func() { order = append(order, 2) })

	n.Notify()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order = %v, want [1 2]", order)
	}

	unsubA()
	unsubA()
	order = nil
	n.Notify()
	if len(order) != 1 || order[0] != 2 {
		t.Errorf("after unsubscribe order = %v, want [2]", order)
	}
}

func TestNotifier_Concurrent(t *testing.T) {
	n := NewNotifier()
	var mu sync.Mutex
	calls := 0
	n.Subscribe(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Notify()
		}()
	}
	wg.Wait()

	if calls != 20 {
		t.Errorf("calls = %d, want 20", calls)
	}
}
