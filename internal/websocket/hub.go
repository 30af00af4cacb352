package websocket

import (
	"encoding/json"
	"sync"
	"time"
)

// TaskEvent 任务生命周期事件
// 推送给订阅队列动态的仪表盘客户端
type TaskEvent struct {
	Type             string    `json:"type"` // task_claimed, task_submitted, task_approved, task_rejected
	TaskID           uint      `json:"task_id"`
	Status           string    `json:"status"`
	SourceLanguageID uint      `json:"source_language_id"`
	TargetLanguageID uint      `json:"target_language_id"`
	At               time.Time `json:"at"`
}

// Hub 管理所有 WebSocket 连接
type Hub struct {
	// 已注册的客户端
	clients map[*Client]bool

	// 广播消息到所有客户端
	Broadcast chan []byte

	// 注册新客户端
	Register chan *Client

	// 注销客户端
	Unregister chan *Client

	// 互斥锁,保护 clients map
	mu sync.RWMutex
}

// NewHub 创建新的 Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run 运行 Hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastTaskEvent 广播任务事件
// 发送端非阻塞,事件服务于仪表盘展示,丢弃不影响业务正确性
func (h *Hub) BroadcastTaskEvent(event TaskEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case h.Broadcast <- payload:
	default:
	}
}

// GetClientCount 获取客户端数量
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
