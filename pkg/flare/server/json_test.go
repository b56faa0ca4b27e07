package server

import (
	"strings"
	"testing"

	"github.com/watt-toolkit/flare/pkg/flare/http11"
)

func TestJSON(t *testing.T) {
	resp := http11.NewResponse(http11.StatusOK)
	err := JSON(resp, http11.StatusCreated, map[string]int{"id": 7})
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	if resp.Status != http11.StatusCreated {
		t.Errorf("Status = %d, want %d", resp.Status, http11.StatusCreated)
	}
	if ct, _ := resp.GetHeader(http11.HeaderContentType); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := resp.GetBodyString(); got != `{"id":7}` {
		t.Errorf("body = %q", got)
	}
}

func TestJSONEncodeError(t *testing.T) {
	resp := http11.NewResponse(http11.StatusOK)
	if err := JSON(resp, http11.StatusCreated, make(chan int)); err == nil {
		t.Fatal("expected an encoding error for a channel")
	}

	if resp.Status != http11.StatusOK || resp.HasBody() || resp.Headers().Len() != 0 {
		t.Error("a failed encode must leave the response untouched")
	}
}

func TestErrorResponse(t *testing.T) {
	resp := errorResponse(http11.StatusNotFound)
	if resp.Status != http11.StatusNotFound {
		t.Errorf("Status = %d", resp.Status)
	}
	if got := resp.GetBodyString(); got != `{"error":"Not Found"}` {
		t.Errorf("body = %q", got)
	}
}

func TestStatsSnapshotJSON(t *testing.T) {
	var s Stats
	s.TotalRequests.Add(3)

	resp := http11.NewResponse(http11.StatusOK)
	if err := JSON(resp, http11.StatusOK, s.Snapshot()); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if body := resp.GetBodyString(); !strings.Contains(body, `"total_requests":3`) {
		t.Errorf("snapshot body = %q", body)
	}
}
