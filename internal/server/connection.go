package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one WebSocket client: a read pump that dispatches
// inbound commands to the player's table, and a write pump draining the
// buffered send channel.
type Connection struct {
	conn       *websocket.Conn
	send       chan *Message
	playerName string
	playerID   string
	tableID    string
	logger     *log.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.RWMutex
	closeOnce  sync.Once
	tables     *TableService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, tables *TableService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		tables: tables,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, expected during shutdown
			c.logger.Debug("attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// GetPlayer returns the player id seated through this connection
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// GetTable returns the table this connection is at
func (c *Connection) GetTable() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tableID
}

func (c *Connection) setSeat(playerID, tableID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = playerID
	c.tableID = tableID
}

func (c *Connection) getName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerName
}

func (c *Connection) setName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerName = name
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes one inbound message
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case MessageTypeAuth:
		var data AuthData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse auth data")
			return
		}
		c.handleAuth(data)

	case MessageTypeListTables:
		c.handleListTables()

	case MessageTypeJoinTable:
		var data JoinTableData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join table data")
			return
		}
		c.handleJoinTable(data)

	case MessageTypeLeaveTable:
		c.handleLeaveTable()

	case MessageTypeReady:
		c.withTable(func(table *Table, playerID string) error {
			return table.Ready(playerID)
		})

	case MessageTypePlaceBet:
		c.handleHandAction(msg, func(table *Table, playerID string, data HandActionData) error {
			return table.PlaceBet(playerID, data.HandID, data.Amount)
		})

	case MessageTypeHit:
		c.handleHandAction(msg, func(table *Table, playerID string, data HandActionData) error {
			return table.Hit(playerID, data.HandID)
		})

	case MessageTypeStand:
		c.handleHandAction(msg, func(table *Table, playerID string, data HandActionData) error {
			return table.Stand(playerID, data.HandID)
		})

	case MessageTypeDouble:
		c.handleHandAction(msg, func(table *Table, playerID string, data HandActionData) error {
			return table.Double(playerID, data.HandID)
		})

	case MessageTypeSplit:
		c.handleHandAction(msg, func(table *Table, playerID string, data HandActionData) error {
			return table.Split(playerID, data.HandID)
		})

	case MessageTypeBuyInsurance:
		c.handleHandAction(msg, func(table *Table, playerID string, data HandActionData) error {
			return table.BuyInsurance(playerID, data.HandID)
		})

	case MessageTypeDeclineInsurance:
		c.handleHandAction(msg, func(table *Table, playerID string, data HandActionData) error {
			return table.DeclineInsurance(playerID, data.HandID)
		})

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError unicasts a rejection to this client only
func (c *Connection) sendError(code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

func (c *Connection) handleAuth(data AuthData) {
	if data.PlayerName == "" {
		c.sendError("invalid_auth", "Player name required")
		return
	}

	c.setName(data.PlayerName)
	c.logger.Info("client authenticated", "name", data.PlayerName)

	response, _ := NewMessage(MessageTypeAuthResponse, AuthResponseData{
		Success:    true,
		PlayerName: data.PlayerName,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleListTables() {
	response, _ := NewMessage(MessageTypeTableList, TableListData{
		Tables: c.tables.ListTables(),
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleJoinTable(data JoinTableData) {
	name := c.getName()
	if name == "" {
		c.sendError("not_authenticated", "Must authenticate first")
		return
	}
	if c.GetTable() != "" {
		c.sendError("already_seated", "Leave the current table first")
		return
	}

	table, err := c.tables.GetTable(data.TableID)
	if err != nil {
		c.sendError("table_not_found", err.Error())
		return
	}

	// Seat association must be visible before Join publishes events, or
	// this client misses its own joined broadcast.
	c.setSeat("", table.ID)
	playerID, view := table.Join(name)
	c.setSeat(playerID, table.ID)

	c.logger.Info("player joined table", "player", playerID, "table", table.Name)

	response, _ := NewMessage(MessageTypeTableJoined, TableJoinedData{
		TableID:  table.ID,
		PlayerID: playerID,
		Table:    view,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleLeaveTable() {
	playerID := c.GetPlayer()
	tableID := c.GetTable()
	if playerID == "" || tableID == "" {
		c.sendError("not_seated", "Not at a table")
		return
	}

	if err := c.tables.LeaveTable(tableID, playerID); err != nil {
		c.sendError("leave_failed", err.Error())
		return
	}
	c.setSeat("", "")

	response, _ := NewMessage(MessageTypeTableLeft, map[string]string{"table_id": tableID})
	_ = c.SendMessage(response)
}

// withTable resolves the connection's seat and runs a table command,
// unicasting any rejection back to this client.
func (c *Connection) withTable(fn func(table *Table, playerID string) error) {
	playerID := c.GetPlayer()
	tableID := c.GetTable()
	if playerID == "" || tableID == "" {
		c.sendError("not_seated", "Not at a table")
		return
	}

	table, err := c.tables.GetTable(tableID)
	if err != nil {
		c.sendError("table_not_found", err.Error())
		return
	}

	if err := fn(table, playerID); err != nil {
		c.sendError("action_rejected", err.Error())
	}
}

func (c *Connection) handleHandAction(msg *Message, fn func(table *Table, playerID string, data HandActionData) error) {
	var data HandActionData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.sendError("invalid_message", "Failed to parse action data")
		return
	}
	c.withTable(func(table *Table, playerID string) error {
		return fn(table, playerID, data)
	})
}
