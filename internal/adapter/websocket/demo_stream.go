package websocket

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/observability/telemetry"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/service/demo"
)

// ControlFrame is what the browser sends to steer playback.
type ControlFrame struct {
	Action string `json:"action"` // "scene", "next", "prev", "reset"
	Scene  int    `json:"scene,omitempty"`
}

// SceneFrame announces a scene switch before its bubbles stream.
type SceneFrame struct {
	Type        string `json:"type"` // "scene"
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MessageFrame carries one revealed chat bubble.
type MessageFrame struct {
	Type   string            `json:"type"` // "message"
	Sender domain.DemoSender `json:"sender"`
	Text   string            `json:"text"`
}

// demoConn is the slice of *websocket.Conn the stream loop needs.
type demoConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
}

// DemoStreamHandler replays the scripted demo conversation over a websocket.
// Each connection owns its own player; the demo page never touches the
// backend.
type DemoStreamHandler struct {
	delay  time.Duration
	logger *zap.Logger
}

func NewDemoStreamHandler(delay time.Duration, logger *zap.Logger) *DemoStreamHandler {
	return &DemoStreamHandler{delay: delay, logger: logger}
}

// HandleDemoStream drives one viewer's playback. Bubbles auto-play on a
// fixed cadence; control frames jump between scenes and restart the timer.
func (h *DemoStreamHandler) HandleDemoStream(c *websocket.Conn) {
	telemetry.DemoStreamsActive.Inc()
	defer telemetry.DemoStreamsActive.Dec()

	h.stream(c)
}

// stream runs until either side of the connection fails. The stop channel is
// closed on every exit path so the reader goroutine can never stay parked on
// the controls send after the loop has returned.
func (h *DemoStreamHandler) stream(conn demoConn) {
	player := demo.NewPlayer(h.delay)

	stop := make(chan struct{})
	defer close(stop)

	controls := make(chan ControlFrame)
	readerDone := make(chan struct{})

	go func() {
		defer close(readerDone)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var frame ControlFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				h.logger.Warn("Ignoring malformed demo control frame", zap.Error(err))
				continue
			}
			select {
			case controls <- frame:
			case <-stop:
				return
			}
		}
	}()

	if err := h.announceScene(conn, player.Scene()); err != nil {
		return
	}

	ticker := time.NewTicker(player.Delay())
	defer ticker.Stop()

	for {
		select {
		case <-readerDone:
			return

		case frame := <-controls:
			var scene domain.DemoScene
			switch frame.Action {
			case "scene":
				scene = player.Select(frame.Scene)
			case "next":
				scene = player.Next()
			case "prev":
				scene = player.Prev()
			case "reset":
				scene = player.Reset()
			default:
				h.logger.Warn("Unknown demo control action", zap.String("action", frame.Action))
				continue
			}

			if err := h.announceScene(conn, scene); err != nil {
				return
			}
			ticker.Reset(player.Delay())

		case <-ticker.C:
			msg, ok := player.Advance()
			if !ok {
				continue
			}
			if err := h.writeJSON(conn, MessageFrame{Type: "message", Sender: msg.Sender, Text: msg.Text}); err != nil {
				return
			}
		}
	}
}

func (h *DemoStreamHandler) announceScene(conn demoConn, scene domain.DemoScene) error {
	return h.writeJSON(conn, SceneFrame{
		Type:        "scene",
		Number:      scene.Number,
		Title:       scene.Title,
		Description: scene.Description,
	})
}

func (h *DemoStreamHandler) writeJSON(conn demoConn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// SetupDemoRoutes wires the demo websocket endpoint. It sits outside the
// session middleware: the demo page works without an account.
func SetupDemoRoutes(app *fiber.App, handler *DemoStreamHandler) {
	app.Use("/ws/demo", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/demo", websocket.New(handler.HandleDemoStream))
}
