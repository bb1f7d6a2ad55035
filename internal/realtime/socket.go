package realtime

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// SocketServer upgrades HTTP requests to websockets and streams hub
// messages for the requested channels.
type SocketServer struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewSocketServer(hub *Hub, allowedOrigins []string) *SocketServer {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &SocketServer{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

// Serve blocks until the peer disconnects.
func (s *SocketServer) Serve(w http.ResponseWriter, r *http.Request, channels []string) error {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	client := s.hub.NewClient()
	for _, ch := range channels {
		s.hub.AddChannel(client, ch)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		readPump(conn)
	}()

	writePump(conn, client, done)
	s.hub.CloseClient(client)
	_ = conn.Close()
	<-done
	return nil
}

// readPump discards client frames; it exists to process control frames and
// notice disconnects.
func readPump(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, client *Client, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case msg, ok := <-client.Outbound:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
