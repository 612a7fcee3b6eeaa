package handlers

import (
	"errors"
	"net/http"

	"github.com/code-100-precent/lingrx/internal/models"
	"github.com/code-100-precent/lingrx/pkg/middleware"
	"github.com/code-100-precent/lingrx/pkg/reactive"
	"github.com/code-100-precent/lingrx/pkg/reactive/rxhttp"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type createEntryRequest struct {
	Key   string `json:"key"`
	Value string `json:"value" binding:"required"`
}

func (h *Handlers) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"implementation": h.rx.Name(),
	})
}

// handleListEntries answers with every entry, oldest first. The rows are
// gathered into one value so the response is always a JSON array.
func (h *Handlers) handleListEntries() gin.HandlerFunc {
	return rxhttp.Handler(func(c *gin.Context) reactive.Observable {
		var entries []models.Entry
		return h.store.Order("id").Find(&entries).ToArray()
	})
}

func (h *Handlers) handleCountEntries() gin.HandlerFunc {
	return rxhttp.Handler(func(c *gin.Context) reactive.Observable {
		var entries []models.Entry
		return h.store.Find(&entries).
			Reduce(0, func(acc, _ any) any { return acc.(int) + 1 }).
			Map(func(n any) any { return gin.H{"count": n} })
	})
}

// handleGetEntry answers a missing key with {"key": key, "missing": true}
// instead of an error.
func (h *Handlers) handleGetEntry() gin.HandlerFunc {
	return rxhttp.Handler(func(c *gin.Context) reactive.Observable {
		key := c.Param("key")
		var entry models.Entry
		return h.store.Where("entry_key = ?", key).First(&entry).Catch(func(err error) reactive.Observable {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return h.rx.Return(gin.H{"key": key, "missing": true})
		})
	})
}

func (h *Handlers) handleCreateEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rxhttp.Handler(func(c *gin.Context) reactive.Observable {
		entry := &models.Entry{Key: req.Key, Value: req.Value}
		return h.store.Create(entry).Map(func(v any) any {
			h.lg.Info("entry created",
				zap.String("key", entry.Key),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
			h.publish(v)
			return v
		})
	})(c)
}

func (h *Handlers) handleDeleteEntry() gin.HandlerFunc {
	return rxhttp.Handler(func(c *gin.Context) reactive.Observable {
		return h.store.Where("entry_key = ?", c.Param("key")).Delete(&models.Entry{})
	})
}

// handleStreamEntries streams every entry created after the client connects
func (h *Handlers) handleStreamEntries() gin.HandlerFunc {
	return rxhttp.StreamHandler(func(c *gin.Context) reactive.Observable {
		return h.events
	})
}

// handleWatchEntries is handleStreamEntries over a WebSocket
func (h *Handlers) handleWatchEntries() gin.HandlerFunc {
	return rxhttp.WebSocketHandler(func(c *gin.Context) reactive.Observable {
		return h.events
	})
}
