package loki

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

const flushThreshold = 20

// Writer buffers log lines and ships them to Loki's push API. It implements
// io.Writer so it can sit behind the standard log package via MultiWriter.
type Writer struct {
	url    string
	labels map[string]string
	client *http.Client
	mu     sync.Mutex
	buf    []entry
	ticker *time.Ticker
	done   chan struct{}
}

type entry struct {
	ts   string
	line string
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

// NewWriter returns a Writer pushing to the given Loki base URL. Lines are
// labeled with the job name and the host they came from. An empty url or job
// disables shipping (nil return).
func NewWriter(url, job string) *Writer {
	if url == "" || job == "" {
		return nil
	}
	labels := map[string]string{"job": job}
	if host, err := os.Hostname(); err == nil {
		labels["host"] = host
	}
	w := &Writer{
		url:    strings.TrimSuffix(url, "/") + "/loki/api/v1/push",
		labels: labels,
		client: &http.Client{Timeout: 5 * time.Second},
		buf:    make([]entry, 0, 64),
		ticker: time.NewTicker(time.Second),
		done:   make(chan struct{}),
	}
	go w.flushLoop()
	return w
}

func (w *Writer) Write(p []byte) (int, error) {
	lines := bytes.Split(p, []byte("\n"))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		w.mu.Lock()
		w.buf = append(w.buf, entry{
			ts:   fmt.Sprintf("%d", time.Now().UnixNano()),
			line: string(line),
		})
		needFlush := len(w.buf) >= flushThreshold
		w.mu.Unlock()
		if needFlush {
			w.flush()
		}
	}
	return len(p), nil
}

func (w *Writer) flushLoop() {
	for {
		select {
		case <-w.done:
			return
		case <-w.ticker.C:
			w.flush()
		}
	}
}

func (w *Writer) flush() {
	w.mu.Lock()
	if len(w.buf) == 0 {
		w.mu.Unlock()
		return
	}
	entries := w.buf
	w.buf = make([]entry, 0, 64)
	w.mu.Unlock()

	values := make([][]string, len(entries))
	for i, e := range entries {
		values[i] = []string{e.ts, e.line}
	}
	body := pushRequest{
		Streams: []stream{{Stream: w.labels, Values: values}},
	}
	raw, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(raw))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}

// Close flushes the remaining buffer and stops the background flusher.
func (w *Writer) Close() error {
	w.ticker.Stop()
	close(w.done)
	w.flush()
	return nil
}
