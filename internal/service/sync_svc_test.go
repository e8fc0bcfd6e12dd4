package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSyncService_NotLiveBeforeFirstLoad(t *testing.T) {
	s := NewSyncService(nil, newFakeTallyStore(), time.Minute)

	snap, live := s.Current()
	if snap != nil {
		t.Errorf("snapshot before first load = %+v, want nil", snap)
	}
	if live {
		t.Error("live before first load, want false")
	}
}

func TestSyncService_RefreshReplacesSnapshot(t *testing.T) {
	store := newFakeTallyStore()
	store.counts["aaaa"] = 100
	store.counts["bbbb"] = 25
	s := NewSyncService(nil, store, time.Minute)

	s.refresh(context.Background())

	snap, live := s.Current()
	if !live {
		t.Fatal("not live after successful refresh")
	}
	if snap.Get("aaaa") != 100 || snap.Get("bbbb") != 25 {
		t.Errorf("snapshot = %+v, want aaaa=100 bbbb=25", snap)
	}

	// A later refresh replaces wholesale, it never patches.
	delete(store.counts, "bbbb")
	store.counts["aaaa"] = 175
	s.refresh(context.Background())

	snap, _ = s.Current()
	if snap.Get("aaaa") != 175 {
		t.Errorf("aaaa = %d, want 175 after replace", snap.Get("aaaa"))
	}
	if _, ok := snap["bbbb"]; ok {
		t.Error("bbbb survived a full-snapshot replace")
	}
}

func TestSyncService_FailedRefreshKeepsLastKnown(t *testing.T) {
	store := newFakeTallyStore()
	store.counts["aaaa"] = 100
	s := NewSyncService(nil, store, time.Minute)

	s.refresh(context.Background())
	store.err = errors.New("connection refused")
	s.refresh(context.Background())

	snap, live := s.Current()
	if live {
		t.Error("still live after failed refresh")
	}
	if snap.Get("aaaa") != 100 {
		t.Errorf("last-known snapshot lost: aaaa = %d, want 100", snap.Get("aaaa"))
	}
}

func TestSyncService_SubscribeDeliversCurrentAndUpdates(t *testing.T) {
	store := newFakeTallyStore()
	store.counts["aaaa"] = 100
	s := NewSyncService(nil, store, time.Minute)
	s.refresh(context.Background())

	ch, cancel := s.Subscribe()
	defer cancel()

	select {
	case snap := <-ch:
		if snap.Get("aaaa") != 100 {
			t.Errorf("initial emission aaaa = %d, want 100", snap.Get("aaaa"))
		}
	default:
		t.Fatal("current snapshot not delivered on subscribe")
	}

	store.counts["aaaa"] = 200
	s.refresh(context.Background())

	select {
	case snap := <-ch:
		if snap.Get("aaaa") != 200 {
			t.Errorf("update emission aaaa = %d, want 200", snap.Get("aaaa"))
		}
	default:
		t.Fatal("refresh did not emit to subscriber")
	}
}

func TestSyncService_CancelledSubscriberStopsReceiving(t *testing.T) {
	store := newFakeTallyStore()
	s := NewSyncService(nil, store, time.Minute)

	ch, cancel := s.Subscribe()
	cancel()

	store.counts["aaaa"] = 100
	s.refresh(context.Background())

	select {
	case <-ch:
		t.Error("cancelled subscriber still received an emission")
	default:
	}
}
