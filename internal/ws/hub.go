package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const (
	TypeStockUpdate      = "stock_update"
	TypeUserStatusUpdate = "user_status_update"
)

// Stock event actions.
const (
	ActionPurchaseRecorded = "purchase_recorded"
	ActionPurchaseUpdated  = "purchase_updated"
	ActionPurchaseDeleted  = "purchase_deleted"
	ActionSaleRecorded     = "sale_recorded"
	ActionSaleUpdated      = "sale_updated"
	ActionSaleDeleted      = "sale_deleted"
)

const broadcastBuffer = 256

type EventUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StockEvent is pushed to every connected client after a ledger mutation commits.
type StockEvent struct {
	Type      string    `json:"type"`
	Action    string    `json:"action"`
	ProductID string    `json:"product_id"`
	SKU       string    `json:"sku"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
	User      EventUser `json:"user"`
	Message   string    `json:"message,omitempty"`
}

type UserStatusEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
		log:        log.Named("ws"),
	}
}

// Publish marshals v and queues it for broadcast. It never blocks: when the
// queue is full the message is dropped and a warning is logged.
func (h *Hub) Publish(v interface{}) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(v)
	if err != nil {
		h.log.Warn("ws event not encodable", zap.Error(err))
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn("ws broadcast queue full, dropping event", zap.Int("bytes", len(msg)))
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug("client connected", zap.Int("clients", h.ClientCount()))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.log.Debug("dropping client after write error", zap.Error(err))
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
