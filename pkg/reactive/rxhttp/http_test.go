package rxhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/code-100-precent/lingrx/pkg/reactive"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler(t *testing.T) {
	router := newRouter()
	router.GET("/test", Handler(func(c *gin.Context) reactive.Observable {
		return reactive.Of(gin.H{"message": "test"})
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "test", response["message"])
}

func TestHandler_MultipleValues(t *testing.T) {
	router := newRouter()
	router.GET("/test", Handler(func(c *gin.Context) reactive.Observable {
		return reactive.Of(gin.H{"id": 1}, gin.H{"id": 2})
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
}

func TestHandler_EmptyValues(t *testing.T) {
	router := newRouter()
	router.GET("/test", Handler(func(c *gin.Context) reactive.Observable {
		return reactive.Empty()
	}))
	router.GET("/nil", Handler(func(c *gin.Context) reactive.Observable {
		return nil
	}))

	for _, path := range []string{"/test", "/nil"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
	}
}

func TestHandler_Error(t *testing.T) {
	router := newRouter()
	router.GET("/test", Handler(func(c *gin.Context) reactive.Observable {
		return reactive.Of(1).Map(func(any) any { panic(assert.AnError) })
	}))
	router.GET("/throw", Handler(func(c *gin.Context) reactive.Observable {
		return reactive.Throw(assert.AnError)
	}))

	for _, path := range []string{"/test", "/throw"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), assert.AnError.Error())
	}
}

func TestHandler_AsyncProducer(t *testing.T) {
	router := newRouter()
	router.GET("/async", Handler(func(c *gin.Context) reactive.Observable {
		return reactive.Create(func(o reactive.Observer) reactive.Disposable {
			go func() {
				o.OnNext("a")
				o.OnNext("b")
				o.OnCompleted()
			}()
			return reactive.EmptyDisposable
		})
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/async", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["a","b"]`, w.Body.String())
}

func TestHandler_StreamNeverCompletes(t *testing.T) {
	released := false
	router := newRouter()
	router.GET("/stuck", Handler(func(c *gin.Context) reactive.Observable {
		return reactive.Create(func(o reactive.Observer) reactive.Disposable {
			return reactive.NewDisposable(func() { released = true })
		})
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(ctx, "GET", "/stuck", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.True(t, released)
}

func TestStreamHandler(t *testing.T) {
	router := newRouter()
	router.GET("/stream", StreamHandler(func(c *gin.Context) reactive.Observable {
		return reactive.Of(gin.H{"n": 1}, gin.H{"n": 2})
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/stream", nil)
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, 2, strings.Count(body, `data: {"n":`))
	assert.True(t, strings.HasSuffix(body, "event: close\ndata: {}\n\n"))
}

func TestStreamHandler_Error(t *testing.T) {
	router := newRouter()
	router.GET("/stream", StreamHandler(func(c *gin.Context) reactive.Observable {
		return reactive.Throw(assert.AnError)
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/stream", nil)
	router.ServeHTTP(w, req)

	body := w.Body.String()
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, assert.AnError.Error())
	assert.NotContains(t, body, "event: close")
}

func TestStreamHandler_SubjectUntilClientLeaves(t *testing.T) {
	subject := reactive.NewSubject()
	router := newRouter()
	router.GET("/stream", StreamHandler(func(c *gin.Context) reactive.Observable {
		return subject
	}))

	ctx, cancel := context.WithCancel(context.Background())
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(ctx, "GET", "/stream", nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		router.ServeHTTP(w, req)
	}()

	assert.Eventually(t, subject.HasObservers, time.Second, 5*time.Millisecond)
	subject.OnNext("hello")
	cancel()
	<-done

	assert.False(t, subject.HasObservers())
	assert.Contains(t, w.Body.String(), `data: "hello"`)
}

func TestSSEObserver_JSONError(t *testing.T) {
	w := httptest.NewRecorder()
	cancelled := false
	observer := &sseObserver{writer: w, done: func() { cancelled = true }}

	observer.OnNext(make(chan int))

	assert.Contains(t, w.Body.String(), "event: error")
	assert.True(t, cancelled)
}

func TestSSEObserver_NothingAfterTerminalFrame(t *testing.T) {
	w := httptest.NewRecorder()
	cancels := 0
	observer := &sseObserver{writer: w, done: func() { cancels++ }}

	reactive.Of(make(chan int), "after").Subscribe(observer)
	observer.OnNext("late")
	observer.OnError(assert.AnError)
	observer.OnCompleted()

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: error\n"))
	assert.Equal(t, 1, strings.Count(body, "event: "))
	assert.Equal(t, 1, strings.Count(body, "data: "))
	assert.NotContains(t, body, "after")
	assert.Equal(t, 1, cancels)
}

func TestSSEObserver_SingleCloseFrame(t *testing.T) {
	w := httptest.NewRecorder()
	observer := &sseObserver{writer: w, done: func() {}}

	observer.OnNext(1)
	observer.OnCompleted()
	observer.OnCompleted()
	observer.OnNext(2)

	assert.Equal(t, "data: 1\n\nevent: close\ndata: {}\n\n", w.Body.String())
}

func TestSSEObserver_NoWritesAfterClose(t *testing.T) {
	w := httptest.NewRecorder()
	observer := &sseObserver{writer: w, done: func() {}}
	observer.close()

	observer.OnNext("late")
	assert.Empty(t, w.Body.String())
}

func TestBodyObservable(t *testing.T) {
	router := newRouter()
	router.POST("/body", Handler(func(c *gin.Context) reactive.Observable {
		return BodyObservable(c)
	}))

	body := bytes.NewBufferString(`{"name": "test"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/body", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"test"}`, w.Body.String())
}

func TestBodyObservable_InvalidJSON(t *testing.T) {
	router := newRouter()
	router.POST("/body", Handler(func(c *gin.Context) reactive.Observable {
		return BodyObservable(c)
	}))

	body := bytes.NewBufferString(`invalid json`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/body", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestQueryParamsObservable(t *testing.T) {
	router := newRouter()
	router.GET("/params", Handler(func(c *gin.Context) reactive.Observable {
		return QueryParamsObservable(c)
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/params?key1=value1&key2=value2&multi=a&multi=b", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "value1", response["key1"])
	assert.Equal(t, "value2", response["key2"])
	assert.Equal(t, []interface{}{"a", "b"}, response["multi"])
}
