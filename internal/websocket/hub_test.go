package websocket_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/itsakphyo/myanlang-translation-platform/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBroadcastTaskEvent 测试事件序列化后进入广播通道
func TestBroadcastTaskEvent(t *testing.T) {
	hub := websocket.NewHub()

	hub.BroadcastTaskEvent(websocket.TaskEvent{
		Type:             "task_claimed",
		TaskID:           7,
		Status:           "ASSIGNED_TO_FL",
		SourceLanguageID: 1,
		TargetLanguageID: 2,
		At:               time.Now().UTC().Truncate(time.Second),
	})

	select {
	case payload := <-hub.Broadcast:
		var event websocket.TaskEvent
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "task_claimed", event.Type)
		assert.Equal(t, uint(7), event.TaskID)
		assert.Equal(t, "ASSIGNED_TO_FL", event.Status)
	default:
		t.Fatal("expected a broadcast payload")
	}
}

// TestBroadcastTaskEvent_NonBlocking 测试通道满时发送端不阻塞
func TestBroadcastTaskEvent_NonBlocking(t *testing.T) {
	hub := websocket.NewHub()

	// 超出缓冲容量,多出的事件被丢弃而不是阻塞
	for i := 0; i < 200; i++ {
		hub.BroadcastTaskEvent(websocket.TaskEvent{Type: "task_submitted", TaskID: uint(i)})
	}

	assert.Equal(t, 0, hub.GetClientCount())
}

// TestHubRegisterUnregister 测试客户端注册与注销
func TestHubRegisterUnregister(t *testing.T) {
	hub := websocket.NewHub()
	go hub.Run()

	client := websocket.NewClient("client-1", "admin", hub, nil)
	hub.Register <- client

	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Unregister <- client

	require.Eventually(t, func() bool {
		return hub.GetClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}
