// Package rxhttp serves reactive streams over gin.
package rxhttp

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/code-100-precent/lingrx/pkg/reactive"
	"github.com/gin-gonic/gin"
)

// ReactiveHandler produces the stream answering one request
type ReactiveHandler func(*gin.Context) reactive.Observable

// Handler adapts a ReactiveHandler to a gin.HandlerFunc.
//
// The stream is buffered with ToArray. No values answer 200 with {}, one
// value answers with that value, several answer with a JSON array. A
// failing stream answers 500. A stream still running when the request
// context ends is disposed and answered with 504.
func Handler(reactiveHandler ReactiveHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		source := reactiveHandler(c)
		if source == nil {
			c.JSON(http.StatusOK, gin.H{})
			return
		}

		result := &httpResult{done: make(chan struct{})}
		subscription := source.ToArray().Subscribe(result)
		defer subscription.Dispose()

		select {
		case <-result.done:
		case <-c.Request.Context().Done():
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "stream did not complete"})
			return
		}

		if result.err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": result.err.Error(),
			})
			return
		}

		switch len(result.values) {
		case 0:
			c.JSON(http.StatusOK, gin.H{})
		case 1:
			c.JSON(http.StatusOK, result.values[0])
		default:
			c.JSON(http.StatusOK, result.values)
		}
	}
}

// httpResult receives the single buffered value produced by ToArray.
type httpResult struct {
	once   sync.Once
	done   chan struct{}
	values []any
	err    error
}

func (r *httpResult) OnNext(value any) {
	if values, ok := value.([]any); ok {
		r.values = values
	}
}

func (r *httpResult) OnError(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

func (r *httpResult) OnCompleted() {
	r.once.Do(func() { close(r.done) })
}

// StreamHandler creates a handler that streams Server-Sent Events (SSE).
// The subscription lives until the stream terminates or the client goes away.
func StreamHandler(reactiveHandler ReactiveHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Status(http.StatusOK)

		source := reactiveHandler(c)
		if source == nil {
			source = reactive.Empty()
		}

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		sse := &sseObserver{writer: c.Writer, done: cancel}
		sse.flusher, _ = c.Writer.(http.Flusher)

		subscription := source.Subscribe(sse)
		<-ctx.Done()
		subscription.Dispose()
		sse.close()
	}
}

// sseObserver writes every signal as an SSE frame. Hot sources may emit
// from other goroutines, so writes are serialized. Nothing is written after
// the terminal frame or once the handler has returned.
type sseObserver struct {
	mu         sync.Mutex
	writer     http.ResponseWriter
	flusher    http.Flusher
	done       context.CancelFunc
	closed     bool
	terminated bool
}

func (s *sseObserver) OnNext(value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.OnError(err)
		return
	}
	s.write("", data)
}

func (s *sseObserver) OnError(err error) {
	data, _ := json.Marshal(gin.H{"error": err.Error()})
	s.terminate("error", data)
}

func (s *sseObserver) OnCompleted() {
	s.terminate("close", []byte("{}"))
}

func (s *sseObserver) terminate(event string, data []byte) {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.writeLocked(event, data)
	s.terminated = true
	s.mu.Unlock()
	s.done()
}

func (s *sseObserver) write(event string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLocked(event, data)
}

func (s *sseObserver) writeLocked(event string, data []byte) {
	if s.closed || s.terminated {
		return
	}

	if event != "" {
		s.writer.Write([]byte("event: " + event + "\n"))
	}
	s.writer.Write([]byte("data: "))
	s.writer.Write(data)
	s.writer.Write([]byte("\n\n"))

	if s.flusher != nil {
		s.flusher.Flush()
	}
}

func (s *sseObserver) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// BodyObservable emits the decoded JSON request body once
func BodyObservable(c *gin.Context) reactive.Observable {
	var body any
	if err := c.ShouldBindJSON(&body); err != nil {
		return reactive.Throw(err)
	}
	return reactive.Return(body)
}

// QueryParamsObservable emits the query parameters as one map. Repeated
// keys map to a []string.
func QueryParamsObservable(c *gin.Context) reactive.Observable {
	params := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		if len(values) == 1 {
			params[key] = values[0]
		} else {
			params[key] = values
		}
	}
	return reactive.Return(params)
}
