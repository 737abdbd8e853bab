package main

import (
	"encoding/json"
	"sync"
	"testing"
	"time"
)

func TestBroadcasterRegisterUnregister(t *testing.T) {
	b := NewBroadcaster()

	s1 := b.Register("puzzle1")
	s2 := b.Register("puzzle1")
	s3 := b.Register("puzzle2")

	if b.SubscriberCount("puzzle1") != 2 {
		t.Fatalf("expected 2 subscribers for puzzle1, got %d", b.SubscriberCount("puzzle1"))
	}
	if b.SubscriberCount("puzzle2") != 1 {
		t.Fatalf("expected 1 subscriber for puzzle2, got %d", b.SubscriberCount("puzzle2"))
	}

	b.Unregister(s1)
	if b.SubscriberCount("puzzle1") != 1 {
		t.Fatalf("expected 1 subscriber for puzzle1 after unregister, got %d", b.SubscriberCount("puzzle1"))
	}

	b.Unregister(s2)
	b.Unregister(s3)
	if b.SubscriberCount("puzzle1") != 0 || b.SubscriberCount("puzzle2") != 0 {
		t.Fatal("expected 0 subscribers after full unregister")
	}
}

func TestBroadcasterDoubleUnregister(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Register("puzzle1")
	b.Unregister(sub)
	b.Unregister(sub) // should not panic
}

func TestBroadcast(t *testing.T) {
	b := NewBroadcaster()

	s1 := b.Register("puzzle1")
	s2 := b.Register("puzzle2")

	b.Broadcast("puzzle1", "hello")

	select {
	case msg := <-s1.ch:
		if msg != "hello" {
			t.Fatalf("s1 expected 'hello', got %q", msg)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("s1 did not receive message")
	}

	// s2 is on puzzle2, should not receive.
	select {
	case <-s2.ch:
		t.Fatal("s2 should not receive puzzle1 message")
	case <-time.After(50 * time.Millisecond):
		// ok
	}

	b.Unregister(s1)
	b.Unregister(s2)
}

func TestBroadcastEvent(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Register("puzzle1")

	b.BroadcastEvent("puzzle1", map[string]any{"type": "word_found", "word": "LCD", "matches": 1})

	select {
	case msg := <-sub.ch:
		var evt struct {
			Type    string `json:"type"`
			Word    string `json:"word"`
			Matches int    `json:"matches"`
		}
		if err := json.Unmarshal([]byte(msg), &evt); err != nil {
			t.Fatalf("event is not JSON: %v", err)
		}
		if evt.Type != "word_found" || evt.Word != "LCD" || evt.Matches != 1 {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("did not receive event")
	}

	b.Unregister(sub)
}

func TestBroadcastSkipsFullChannel(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Register("puzzle1")

	// Fill the channel.
	for range sseChannelBuffer {
		b.Broadcast("puzzle1", "fill")
	}

	// This should not block.
	b.Broadcast("puzzle1", "overflow")

	b.Unregister(sub)
}

func TestBroadcasterConcurrent(t *testing.T) {
	b := NewBroadcaster()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			puzzleID := "puzzle1"
			if i%2 == 0 {
				puzzleID = "puzzle2"
			}
			sub := b.Register(puzzleID)
			b.Broadcast(puzzleID, "msg")
			b.SubscriberCount(puzzleID)
			b.Unregister(sub)
		}(i)
	}
	wg.Wait()

	if b.SubscriberCount("puzzle1") != 0 || b.SubscriberCount("puzzle2") != 0 {
		t.Fatal("expected 0 subscribers after concurrent test")
	}
}
