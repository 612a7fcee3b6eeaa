package rxhttp

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/code-100-precent/lingrx/pkg/reactive"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pingPeriod        = 30 * time.Second
	wsFrameBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketHandler sends every value of the stream as a JSON text message.
// Completion closes the socket normally. An error sends {"error": msg} and
// closes with code 1011. The subscription is disposed when the client leaves.
//
// OnNext blocks while the outgoing buffer is full, so a slow client slows
// a synchronous producer down instead of losing values. For a hot source
// that means the goroutine emitting into it waits on this client.
//
// The handler returns only after the source's Subscribe call has returned
// and the subscription is disposed. Leaving unblocks any OnNext waiting on
// the buffer, but a subscribe function that never returns on its own keeps
// the handler goroutine alive.
func WebSocketHandler(reactiveHandler ReactiveHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade has already answered the request
			return
		}
		defer conn.Close()

		source := reactiveHandler(c)
		if source == nil {
			source = reactive.Empty()
		}

		ws := &wsObserver{
			frames: make(chan wsFrame, wsFrameBufferSize),
			gone:   make(chan struct{}),
		}
		subscribed := make(chan reactive.Disposable, 1)
		go func() { subscribed <- source.Subscribe(ws) }()

		readerDone := make(chan struct{})
		go func() {
			defer close(readerDone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ws.pump(conn, readerDone)
		close(ws.gone)
		(<-subscribed).Dispose()
	}
}

type wsFrame struct {
	data      []byte
	closeCode int
	closeText string
}

type wsObserver struct {
	mu         sync.Mutex
	terminated bool
	frames     chan wsFrame
	// gone is closed once nothing reads frames any more
	gone chan struct{}
}

func (w *wsObserver) OnNext(value any) {
	data, err := json.Marshal(value)
	if err != nil {
		w.OnError(err)
		return
	}
	w.mu.Lock()
	terminated := w.terminated
	w.mu.Unlock()
	if terminated {
		return
	}
	w.enqueue(wsFrame{data: data})
}

func (w *wsObserver) OnError(err error) {
	data, _ := json.Marshal(gin.H{"error": err.Error()})
	w.terminate(wsFrame{data: data, closeCode: websocket.CloseInternalServerErr, closeText: "stream failed"})
}

func (w *wsObserver) OnCompleted() {
	w.terminate(wsFrame{closeCode: websocket.CloseNormalClosure})
}

func (w *wsObserver) terminate(f wsFrame) {
	w.mu.Lock()
	if w.terminated {
		w.mu.Unlock()
		return
	}
	w.terminated = true
	w.mu.Unlock()
	w.enqueue(f)
}

func (w *wsObserver) enqueue(f wsFrame) {
	select {
	case w.frames <- f:
	case <-w.gone:
	}
}

// pump writes queued frames and keepalive pings until a close frame has
// been written, a write fails or the client goes away.
func (w *wsObserver) pump(conn *websocket.Conn, readerDone <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case f := <-w.frames:
			if f.data != nil {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, f.data); err != nil {
					return
				}
			}
			if f.closeCode != 0 {
				msg := websocket.FormatCloseMessage(f.closeCode, f.closeText)
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-readerDone:
			return
		}
	}
}
