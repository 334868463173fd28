package loki

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewWriterDisabled(t *testing.T) {
	if w := NewWriter("", "booking-api"); w != nil {
		t.Fatal("expected nil writer without a url")
	}
	if w := NewWriter("http://localhost:3100", ""); w != nil {
		t.Fatal("expected nil writer without a job")
	}
}

func TestWriterPushesLabeledStream(t *testing.T) {
	received := make(chan pushRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body pushRequest
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("decoding push body: %v", err)
		}
		received <- body
		rw.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	w := NewWriter(server.URL, "booking-api")
	if w == nil {
		t.Fatal("expected a writer")
	}
	if _, err := w.Write([]byte("booking created\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	body := <-received
	if len(body.Streams) != 1 {
		t.Fatalf("expected one stream, got %d", len(body.Streams))
	}
	got := body.Streams[0]
	if got.Stream["job"] != "booking-api" {
		t.Fatalf("expected job label, got %v", got.Stream)
	}
	if len(got.Values) != 1 || got.Values[0][1] != "booking created" {
		t.Fatalf("unexpected values: %v", got.Values)
	}
}
