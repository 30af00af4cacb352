package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"
)

var upgrader = gorillaWS.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// 鉴权由外层网关处理,这里不校验 Origin
		return true
	},
}

// QueueFeedHandler 队列动态 WebSocket 处理器
// 客户端通过 role 查询参数声明订阅方身份
func QueueFeedHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.DefaultQuery("role", "admin")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
			return
		}

		client := NewClient(uuid.New().String(), role, hub, conn)
		hub.Register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
