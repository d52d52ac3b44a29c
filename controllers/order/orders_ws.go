package orderControllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Seitek2002/ibox-next/config"
	"github.com/Seitek2002/ibox-next/middleware"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// One bridge per session; a newer connection replaces the old one.
var (
	bridgesMu sync.Mutex
	bridges   = make(map[string]*websocket.Conn)
)

// GET /ws/orders
//
// Upgrades the client connection and bridges it to the upstream orders
// channel for the session's phone number and site. Messages are relayed
// both ways; either side closing tears down both.
func OrdersWebSocketHandler(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	phone := c.Query("phone_number")
	if phone == "" && sess != nil {
		phone = sess.PhoneNumber
	}
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone_number is required"})
		return
	}
	site := c.Query("site")
	if site == "" && sess != nil {
		site = sess.Venue
	}

	client, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	up, _, err := websocket.DefaultDialer.Dial(config.OrdersWSURL(phone, site), nil)
	if err != nil {
		client.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "orders channel unavailable"))
		client.Close()
		return
	}

	sessionID := ""
	if sess != nil {
		sessionID = sess.ID
	}
	bridgesMu.Lock()
	if old := bridges[sessionID]; old != nil {
		old.Close()
	}
	bridges[sessionID] = client
	bridgesMu.Unlock()

	go relay(up, client)
	relay(client, up)

	bridgesMu.Lock()
	if bridges[sessionID] == client {
		delete(bridges, sessionID)
	}
	bridgesMu.Unlock()
	up.Close()
	client.Close()
}

func relay(src, dst *websocket.Conn) {
	for {
		msgType, msg, err := src.ReadMessage()
		if err != nil {
			dst.Close()
			return
		}
		if err := dst.WriteMessage(msgType, msg); err != nil {
			src.Close()
			return
		}
	}
}
