package handlers

import (
	"sync"
	"time"

	"github.com/code-100-precent/lingrx/pkg/reactive"
	"github.com/code-100-precent/lingrx/pkg/reactive/rxdb"
	"github.com/code-100-precent/lingrx/pkg/rxprovider"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handlers struct {
	rx    rxprovider.Implementation
	db    *gorm.DB
	store *rxdb.ReactiveDB
	lg    *zap.Logger

	// mu serializes emissions on events; requests publish concurrently
	mu     sync.Mutex
	events reactive.Processor
}

func NewHandlers(rx rxprovider.Implementation, db *gorm.DB, lg *zap.Logger) *Handlers {
	if rx == nil {
		rx = rxprovider.Builtin()
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Handlers{
		rx:     rx,
		db:     db,
		store:  rxdb.NewReactiveDB(db),
		lg:     lg,
		events: rx.NewSubject(),
	}
}

func (h *Handlers) Register(engine *gin.Engine, apiPrefix string) {
	r := engine.Group(apiPrefix)

	r.GET("/health", h.handleHealth)

	r.GET("/entries", h.handleListEntries())
	r.POST("/entries", h.handleCreateEntry)
	r.GET("/entries/stream", h.handleStreamEntries())
	r.GET("/entries/ws", h.handleWatchEntries())
	r.GET("/entries/count", h.handleCountEntries())
	r.GET("/entries/:key", h.handleGetEntry())
	r.DELETE("/entries/:key", h.handleDeleteEntry())
}

// Events is the hot stream of created entries
func (h *Handlers) Events() reactive.Observable {
	return h.events
}

// Close completes the entry stream, which ends every open SSE response
func (h *Handlers) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events.OnCompleted()
}

// KeepAlive publishes {"heartbeat": unix seconds} for every value of ticks,
// which keeps idle SSE connections open through proxies.
func (h *Handlers) KeepAlive(ticks reactive.Observable) reactive.Disposable {
	return ticks.Map(func(v any) any {
		if t, ok := v.(time.Time); ok {
			return gin.H{"heartbeat": t.Unix()}
		}
		return gin.H{"heartbeat": v}
	}).SubscribeFunc(h.publish, func(err error) {
		h.lg.Warn("heartbeat stopped", zap.Error(err))
	}, nil)
}

// publish holds mu for the whole delivery pass. A WebSocket watcher whose
// outgoing buffer is full blocks that pass, and with it every other
// publisher (POST /entries and the heartbeat), until the watcher drains or
// disconnects.
func (h *Handlers) publish(value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events.OnNext(value)
}
