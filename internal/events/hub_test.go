package events

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/testutil"
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Stop()

	client := NewClient(hub, "gate1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.BroadcastEvent("action", `{"action":"gate_in"}`)

	select {
	case msg := <-client.send:
		got := string(msg)
		want := "event: action\ndata: {\"action\":\"gate_in\"}\n\n"
		if got != want {
			t.Errorf("broadcast message = %q, want %q", got, want)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Stop()

	client := NewClient(hub, "gate1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}

	// Send channel is closed on unregister
	if _, ok := <-client.send; ok {
		t.Error("expected send channel to be closed")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Stop()

	clients := []*Client{
		NewClient(hub, "gate1"),
		NewClient(hub, "desk2"),
	}
	for _, c := range clients {
		hub.Register(c)
	}
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast([]byte("event: ping\ndata: \n\n"))

	for _, c := range clients {
		select {
		case <-c.send:
		case <-time.After(time.Second):
			t.Fatalf("client %s did not receive broadcast", c.username)
		}
	}
}

func TestHub_StopDisconnectsClients(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub, "gate1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.Stop()
	time.Sleep(10 * time.Millisecond)

	if _, ok := <-client.send; ok {
		t.Error("expected send channel to be closed after Stop")
	}
}

func TestHub_RegisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()

	hub.Stop()

	done := make(chan bool, 1)
	go func() {
		done <- hub.Register(NewClient(hub, "gate1"))
	}()

	select {
	case registered := <-done:
		if registered {
			t.Error("Register() = true after Stop, want false")
		}
	case <-time.After(time.Second):
		t.Fatal("Register blocked after Stop")
	}

	// Unregister must not block either
	unregDone := make(chan struct{})
	go func() {
		hub.Unregister(NewClient(hub, "gate1"))
		close(unregDone)
	}()

	select {
	case <-unregDone:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after Stop")
	}
}

func TestFeed_PublishAction(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Stop()

	client := NewClient(hub, "gate1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	feed := NewFeed(hub, testutil.NopLogger())

	entry := &model.ActionLogEntry{
		ID:            "entry-1",
		ParticipantID: "AB23CD",
		Action:        model.ActionGateIn,
		Actor:         "gate1",
		Timestamp:     time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	p := &model.Participant{
		ID:     "AB23CD",
		Name:   "Asha Rao",
		Status: model.StatusGatedIn,
		Flags:  model.CheckpointFlags{GateIn: true, InsideCampus: true},
	}

	feed.PublishAction(entry, p)

	select {
	case msg := <-client.send:
		frame := string(msg)
		if !strings.HasPrefix(frame, "event: action\n") {
			t.Fatalf("unexpected frame: %q", frame)
		}

		data := strings.TrimSuffix(strings.TrimPrefix(frame, "event: action\ndata: "), "\n\n")
		var event ActionEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			t.Fatalf("failed to decode event payload: %v", err)
		}
		if event.ParticipantID != "AB23CD" {
			t.Errorf("ParticipantID = %q, want AB23CD", event.ParticipantID)
		}
		if event.Action != "gate_in" {
			t.Errorf("Action = %q, want gate_in", event.Action)
		}
		if !event.InsideCampus {
			t.Error("InsideCampus = false, want true")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published action")
	}
}
