package conn

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mjsandagi/riichi-mahjong/common/log"
)

var ErrNotConnected = fmt.Errorf("client not connected")

// Envelope 客户端与服务器之间的统一 JSON 帧
type Envelope struct {
	Route string          `json:"route"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ReceivedMessage 收到的一条路由消息
type ReceivedMessage struct {
	Route     string
	Data      json.RawMessage
	Timestamp time.Time
}

// Handler 按路由注册的消息处理器，在 Run 的分发循环中按到达顺序串行调用
type Handler func(data json.RawMessage)

// Client 推送通道的 websocket 客户端
// 读循环只负责解帧入队；分发循环单协程消费，保证快照与事件严格按到达顺序处理
type Client struct {
	sessionID string
	url       string
	heartbeat time.Duration

	conn         *websocket.Conn
	writeMu      sync.Mutex
	done         chan struct{}
	closeOnce    sync.Once
	messageQueue chan *ReceivedMessage

	handlers map[string]Handler
	onStatus func(connected bool)
}

func NewClient(url, sessionID string, heartbeat time.Duration) *Client {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if heartbeat <= 0 {
		heartbeat = 3 * time.Second
	}
	return &Client{
		sessionID:    sessionID,
		url:          url,
		heartbeat:    heartbeat,
		done:         make(chan struct{}),
		messageQueue: make(chan *ReceivedMessage, 100),
		handlers:     make(map[string]Handler),
	}
}

func (c *Client) SessionID() string {
	return c.sessionID
}

// SetOnStatus 注册连通性回调（连接建立 / 读循环退出时触发）
func (c *Client) SetOnStatus(fn func(connected bool)) {
	c.onStatus = fn
}

// RegisterHandlers 注册路由处理器，必须在 Connect 之前完成
func (c *Client) RegisterHandlers(handlers map[string]Handler) {
	for route, h := range handlers {
		c.handlers[route] = h
	}
}

// Connect 建立连接并启动读循环与心跳
func (c *Client) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return err
	}
	c.conn = conn

	go c.listenLoop()
	go c.heartbeatLoop()

	if c.onStatus != nil {
		c.onStatus(true)
	}
	log.Info("[%s] connected to %s", c.sessionID, c.url)
	return nil
}

// Close 关闭连接，幂等
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) listenLoop() {
	defer func() {
		if c.onStatus != nil {
			c.onStatus(false)
		}
	}()
	for {
		if c.conn == nil {
			return
		}
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			log.Warn("[%s] read error: %v", c.sessionID, err)
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Warn("[%s] decode error: %v", c.sessionID, err)
			continue
		}
		if env.Route == "" {
			continue
		}

		msg := &ReceivedMessage{
			Route:     env.Route,
			Data:      env.Data,
			Timestamp: time.Now(),
		}
		select {
		case c.messageQueue <- msg:
		case <-c.done:
			return
		}
	}
}

func (c *Client) heartbeatLoop() {
	ticker := time.NewTicker(c.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			c.writeMu.Lock()
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				log.Warn("[%s] heartbeat send err: %v", c.sessionID, err)
				return
			}
		}
	}
}

// Send 发送一条路由消息，发送即忘
func (c *Client) Send(route string, payload any) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	env := Envelope{Route: route, Data: data}
	frame, err := json.Marshal(env)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

// Run 分发循环：单协程按到达顺序调用路由处理器，直到 ctx 取消或连接关闭
func (c *Client) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case msg := <-c.messageQueue:
			if msg == nil {
				continue
			}
			handler, ok := c.handlers[msg.Route]
			if !ok {
				log.Debug("[%s] no handler for route %s", c.sessionID, msg.Route)
				continue
			}
			handler(msg.Data)
		}
	}
}
