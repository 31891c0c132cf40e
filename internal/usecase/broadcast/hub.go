// Package broadcast fans out snapshot updates to live websocket subscribers,
// one topic per symbol, sourced from the Redis channels the snapshot cache
// publishes to.
package broadcast

import (
	"context"
	"net/http"
	"sync"

	"github.com/ChristopherRussell/polars-order-book/pkg/config"
	"github.com/ChristopherRussell/polars-order-book/pkg/logger"
	"github.com/ChristopherRussell/polars-order-book/pkg/redis"
	gorillaws "github.com/gorilla/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks connected clients and which symbol each is subscribed to,
// relaying each symbol's Redis-published snapshots to its subscribers.
type Hub struct {
	redis  redis.Client
	cfg    config.RedisConfig
	log    *logger.Logger

	mu       sync.RWMutex
	topics   map[string]map[*Client]bool // symbol -> clients
	cancels  map[string]context.CancelFunc

	unregister chan *Client
	subscribe  chan subscriptionRequest
}

type subscriptionRequest struct {
	client *Client
	symbol string
}

// NewHub builds a Hub that relays symbol snapshots from redisClient.
func NewHub(redisClient redis.Client, cfg config.RedisConfig, log *logger.Logger) *Hub {
	return &Hub{
		redis:      redisClient,
		cfg:        cfg,
		log:        log,
		topics:     make(map[string]map[*Client]bool),
		cancels:    make(map[string]context.CancelFunc),
		unregister: make(chan *Client),
		subscribe:  make(chan subscriptionRequest, 64),
	}
}

// Run processes registration and subscription events until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, cancel := range h.cancels {
				cancel()
			}
			h.mu.Unlock()
			return

		case client := <-h.unregister:
			h.removeClient(client)

		case req := <-h.subscribe:
			h.addClientToTopic(ctx, req.client, req.symbol)
		}
	}
}

func (h *Hub) addClientToTopic(ctx context.Context, client *Client, symbol string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.topics[symbol]
	if !exists {
		clients = make(map[*Client]bool)
		h.topics[symbol] = clients
		h.startListener(ctx, symbol)
	}
	clients[client] = true
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for symbol, clients := range h.topics {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.topics, symbol)
			if cancel, ok := h.cancels[symbol]; ok {
				cancel()
				delete(h.cancels, symbol)
			}
		}
	}
	close(client.send)
}

// startListener subscribes to symbol's Redis channel and relays every
// message to that topic's subscribers until canceled. Caller must hold h.mu.
func (h *Hub) startListener(ctx context.Context, symbol string) {
	listenerCtx, cancel := context.WithCancel(ctx)
	h.cancels[symbol] = cancel

	go func() {
		pubSub, err := h.redis.Subscribe(listenerCtx, h.cfg.SnapshotChannelPrefix+symbol)
		if err != nil {
			h.log.Error(err, logger.NewField("symbol", symbol))
			return
		}
		defer pubSub.Close()

		for {
			msg, err := pubSub.ReceiveMessage(listenerCtx)
			if err != nil {
				return
			}
			h.relay(symbol, []byte(msg.Payload))
		}
	}()
}

// relay holds h.mu for the duration of the send loop, not just the lookup:
// removeClient closes a client's send channel under the write lock, and a
// send to an already-closed channel panics. Holding the read lock across
// the sends means removeClient's Lock() cannot proceed — and close a
// channel out from under us — until relay has finished with the clients it
// looked up. Every send is non-blocking (select/default), so this never
// holds the lock for longer than a full buffer check per client.
func (h *Hub) relay(symbol string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.topics[symbol] {
		select {
		case client.send <- payload:
		default:
			// client's buffer is full; drop this update rather than block the listener.
		}
	}
}

// ServeWS upgrades the request to a websocket connection and registers a new
// Client subscribed to the "symbol" query parameter.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		http.Error(w, "missing symbol query parameter", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", logger.NewField("error", err.Error()))
		return
	}

	client := newClient(h, conn)
	h.subscribe <- subscriptionRequest{client: client, symbol: symbol}

	go client.writePump()
	go client.readPump()
}
