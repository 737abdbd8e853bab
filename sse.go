package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// subscriber represents a single SSE connection watching a puzzle.
type subscriber struct {
	ch       chan string
	puzzleID string
}

// Broadcaster manages SSE subscribers grouped by puzzle.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[*subscriber]struct{}),
	}
}

// Register adds a subscriber for a puzzle and returns it.
func (b *Broadcaster) Register(puzzleID string) *subscriber {
	sub := &subscriber{
		ch:       make(chan string, sseChannelBuffer),
		puzzleID: puzzleID,
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Unregister removes a subscriber and closes its channel.
func (b *Broadcaster) Unregister(sub *subscriber) {
	b.mu.Lock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.ch)
	}
	b.mu.Unlock()
}

// Broadcast sends a message to every subscriber of a puzzle.
func (b *Broadcaster) Broadcast(puzzleID, data string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		if sub.puzzleID == puzzleID {
			select {
			case sub.ch <- data:
			default:
				// Channel full, skip slow subscriber.
			}
		}
	}
}

// BroadcastEvent marshals v as JSON and broadcasts it to every
// subscriber of a puzzle.
func (b *Broadcaster) BroadcastEvent(puzzleID string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	b.Broadcast(puzzleID, string(data))
}

// SubscriberCount returns the number of connected subscribers for a
// puzzle.
func (b *Broadcaster) SubscriberCount(puzzleID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for sub := range b.subs {
		if sub.puzzleID == puzzleID {
			n++
		}
	}
	return n
}

// ServeSSE handles an SSE connection for a puzzle.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, puzzleID string, onConnect func(sub *subscriber)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming non supporté", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := b.Register(puzzleID)
	defer b.Unregister(sub)

	if onConnect != nil {
		onConnect(sub)
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-sub.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
