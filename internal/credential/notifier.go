// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package credential

import (
	"slices"
	"sync"
)

// Listener is called after the stored credential changes.
type Listener func()

// Notifier fans out credential-change notifications. It carries no payload;
// listeners re-read whatever they need. The zero value is ready to use.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[int]Listener
	next      int
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]Listener)}
}

// Subscribe registers l and returns a function that removes it.
func (n *Notifier) Subscribe(l Listener) (unsubscribe func()) {
	n.mu.Lock()
	if n.listeners == nil {
		n.listeners = make(map[int]Listener)
	}
	id := n.next
	n.next++
	n.listeners[id] = l
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, id)
			n.mu.Unlock()
		})
	}
}

// Notify calls every listener synchronously in subscription order.
func (n *Notifier) Notify() {
	n.mu.RLock()
	ids := make([]int, 0, len(n.listeners))
	for id := range n.listeners {
		ids = append(ids, id)
	}
	n.mu.RUnlock()

	slices.Sort(ids)
	for _, id := range ids {
		n.mu.RLock()
		l, ok := n.listeners[id]
		n.mu.RUnlock()
		if ok {
			l()
		}
	}
}
