package notifications

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shelfsync/internal/config"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
}

func newTestService(t *testing.T) (Service, *[]captured) {
	t.Helper()
	var requests []captured
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, captured{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
	}))
	t.Cleanup(server.Close)

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	return NewService(&cfg), &requests
}

func TestNoopWhenTopicUnset(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	service := NewService(&cfg)
	if _, ok := service.(noopService); !ok {
		t.Fatalf("expected noop service, got %T", service)
	}
	if err := service.TestNotification(context.Background()); err != nil {
		t.Fatalf("noop TestNotification returned error: %v", err)
	}
}

func TestNotifySyncCompleted(t *testing.T) {
	service, requests := newTestService(t)
	if err := service.NotifySyncCompleted(context.Background(), 3, 2, 10, 0, 90*time.Second); err != nil {
		t.Fatalf("NotifySyncCompleted returned error: %v", err)
	}
	if len(*requests) != 1 {
		t.Fatalf("expected one request, got %d", len(*requests))
	}
	got := (*requests)[0]
	if got.title != "Shelfsync - Sync Complete" {
		t.Errorf("title = %q", got.title)
	}
	if got.body != "Sync complete: 3 created, 2 updated, 10 skipped in 1m30s" {
		t.Errorf("body = %q", got.body)
	}
}

func TestNotifySyncCompletedWithFailures(t *testing.T) {
	service, requests := newTestService(t)
	if err := service.NotifySyncCompleted(context.Background(), 1, 0, 0, 2, time.Second); err != nil {
		t.Fatalf("NotifySyncCompleted returned error: %v", err)
	}
	got := (*requests)[0]
	if got.title != "Shelfsync - Sync Complete (with errors)" {
		t.Errorf("title = %q", got.title)
	}
	if got.body != "Sync complete: 1 created, 0 updated, 0 skipped, 2 failed in 1s" {
		t.Errorf("body = %q", got.body)
	}
}

func TestNotifyErrorSetsHighPriority(t *testing.T) {
	service, requests := newTestService(t)
	if err := service.NotifyError(context.Background(), errors.New("boom"), "library sync"); err != nil {
		t.Fatalf("NotifyError returned error: %v", err)
	}
	got := (*requests)[0]
	if got.priority != "high" {
		t.Errorf("priority = %q", got.priority)
	}
	if got.body != "Error with library sync: boom" {
		t.Errorf("body = %q", got.body)
	}
}

func TestSendReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	service := NewService(&cfg)
	if err := service.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
