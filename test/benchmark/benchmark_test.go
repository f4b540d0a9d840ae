// Package benchmark load-tests the realtime layer with both transports attached to one hub.
// Run with: go test -v -timeout 5m ./test/benchmark/...
package benchmark

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillhub/internal/microservices/realtime"
	"skillhub/internal/microservices/tcp"
	skillws "skillhub/internal/microservices/websocket"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

type BenchmarkConfig struct {
	TCPConnections int
	WSConnections  int
	Broadcasts     int
	ReadTimeout    time.Duration
}

func DefaultConfig() BenchmarkConfig {
	return BenchmarkConfig{
		TCPConnections: 30,
		WSConnections:  20,
		Broadcasts:     10,
		ReadTimeout:    5 * time.Second,
	}
}

// ============================================================================
// TEST UTILITIES
// ============================================================================

type environment struct {
	hub     *realtime.Hub
	wsURL   string
	tcpAddr string
}

func startEnvironment(t *testing.T) *environment {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hub := realtime.NewHub(logger)
	hub.Dispatcher.Handle(realtime.TypeUser, realtime.UserHandler(realtime.NewUserDirectory()))
	hub.Dispatcher.Handle(realtime.TypePing, realtime.PingHandler(func() int64 { return time.Now().Unix() }))

	router := gin.New()
	router.GET("/ws", skillws.NewHandler(hub, skillws.Options{SendBuffer: 512}, logger).Serve)
	httpServer := httptest.NewServer(router)

	tcpServer := tcp.NewServer("127.0.0.1:0", hub, logger)
	addr, err := tcpServer.Listen()
	require.NoError(t, err)
	go tcpServer.Serve()

	t.Cleanup(func() {
		hub.Registry.CloseAll()
		tcpServer.Stop()
		httpServer.Close()
	})

	return &environment{
		hub:     hub,
		wsURL:   "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws",
		tcpAddr: addr.String(),
	}
}

// reader abstracts "read the next JSON message" over both transports
type reader func() (map[string]any, error)

func dialWS(env *environment, timeout time.Duration) (*websocket.Conn, reader, error) {
	conn, _, err := websocket.DefaultDialer.Dial(env.wsURL, nil)
	if err != nil {
		return nil, nil, err
	}
	read := func() (map[string]any, error) {
		conn.SetReadDeadline(time.Now().Add(timeout))
		var msg map[string]any
		err := conn.ReadJSON(&msg)
		return msg, err
	}
	return conn, read, nil
}

func dialTCP(env *environment, timeout time.Duration) (net.Conn, reader, error) {
	conn, err := net.DialTimeout("tcp", env.tcpAddr, timeout)
	if err != nil {
		return nil, nil, err
	}
	br := bufio.NewReader(conn)
	read := func() (map[string]any, error) {
		conn.SetReadDeadline(time.Now().Add(timeout))
		line, err := br.ReadBytes('\n')
		if err != nil {
			return nil, err
		}
		var msg map[string]any
		err = json.Unmarshal(line, &msg)
		return msg, err
	}
	return conn, read, nil
}

// ============================================================================
// BENCHMARK 1: MIXED TRANSPORT FAN-OUT
// ============================================================================

func TestMixedTransportFanOut(t *testing.T) {
	if testing.Short() {
		t.Skip("load test")
	}
	cfg := DefaultConfig()
	env := startEnvironment(t)

	var (
		readers []reader
		closers []io.Closer
		mu      sync.Mutex
		wg      sync.WaitGroup
		failed  int64
	)

	connect := func(dial func() (io.Closer, reader, error)) {
		defer wg.Done()
		c, read, err := dial()
		if err != nil {
			atomic.AddInt64(&failed, 1)
			return
		}
		// welcome
		if msg, err := read(); err != nil || msg["type"] != "info" {
			atomic.AddInt64(&failed, 1)
			c.Close()
			return
		}
		mu.Lock()
		readers = append(readers, read)
		closers = append(closers, c)
		mu.Unlock()
	}

	for i := 0; i < cfg.WSConnections; i++ {
		wg.Add(1)
		go connect(func() (io.Closer, reader, error) { return dialWS(env, cfg.ReadTimeout) })
	}
	for i := 0; i < cfg.TCPConnections; i++ {
		wg.Add(1)
		go connect(func() (io.Closer, reader, error) { return dialTCP(env, cfg.ReadTimeout) })
	}
	wg.Wait()
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	total := cfg.WSConnections + cfg.TCPConnections
	require.Zero(t, atomic.LoadInt64(&failed), "all connections should be accepted")
	require.Eventually(t, func() bool { return env.hub.Count() == total }, 2*time.Second, 10*time.Millisecond)

	start := time.Now()
	for i := 0; i < cfg.Broadcasts; i++ {
		msg := realtime.Message{
			Type: realtime.TypeUser,
			ID:   fmt.Sprintf("u%d", i),
			Data: realtime.Result{Action: realtime.ActionUserUpdated, Payload: map[string]int{"seq": i}},
		}
		delivered, err := env.hub.Sender.Broadcast(msg)
		require.NoError(t, err)
		assert.Equal(t, total, delivered)
	}

	var received int64
	for _, read := range readers {
		wg.Add(1)
		go func(read reader) {
			defer wg.Done()
			for i := 0; i < cfg.Broadcasts; i++ {
				msg, err := read()
				if err != nil {
					return
				}
				if msg["id"] == fmt.Sprintf("u%d", i) {
					atomic.AddInt64(&received, 1)
				}
			}
		}(read)
	}
	wg.Wait()
	elapsed := time.Since(start)

	t.Logf("📊 %d connections, %d broadcasts, %d/%d deliveries in order, %s",
		total, cfg.Broadcasts, received, total*cfg.Broadcasts, elapsed)
	assert.EqualValues(t, total*cfg.Broadcasts, received)
}

// ============================================================================
// BENCHMARK 2: DISPATCH ROUND TRIP
// ============================================================================

func TestPingRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("load test")
	}
	env := startEnvironment(t)
	conn, read, err := dialWS(env, 5*time.Second)
	require.NoError(t, err)
	defer conn.Close()
	_, err = read()
	require.NoError(t, err)

	const rounds = 50
	var worst time.Duration
	start := time.Now()
	for i := 0; i < rounds; i++ {
		sent := time.Now()
		require.NoError(t, conn.WriteJSON(map[string]any{"type": "ping", "id": fmt.Sprint(i)}))
		msg, err := read()
		require.NoError(t, err)
		if msg["type"] == "error" {
			// rate limited, back off and retry the same id
			time.Sleep(150 * time.Millisecond)
			i--
			continue
		}
		require.Equal(t, fmt.Sprint(i), msg["id"])
		if d := time.Since(sent); d > worst {
			worst = d
		}
	}

	t.Logf("📊 %d pings in %s, worst %s", rounds, time.Since(start), worst)
	assert.Less(t, worst, 500*time.Millisecond)
}

func BenchmarkBroadcastEncode(b *testing.B) {
	msg := realtime.Message{
		Type: realtime.TypeOrganization,
		ID:   "o1",
		Data: realtime.Result{Action: "organization_updated", Payload: map[string]any{"name": "Acme", "jobs": []string{"go", "sre"}}},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := json.Marshal(msg); err != nil {
			b.Fatal(err)
		}
	}
}
