// Command demoplayer connects to the dashboard's demo websocket and prints
// the scripted conversation to the terminal. It is handy for checking the
// script and pacing without opening a browser.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	serverURL = flag.String("server", "ws://localhost:8080/ws/demo", "Demo stream WebSocket URL")
	scene     = flag.Int("scene", 0, "Jump straight to a scene (1-3), 0 plays from the start")
	verbose   = flag.Bool("verbose", false, "Enable verbose logging")
)

type controlFrame struct {
	Action string `json:"action"`
	Scene  int    `json:"scene,omitempty"`
}

type streamFrame struct {
	Type        string `json:"type"`
	Number      int    `json:"number,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Sender      string `json:"sender,omitempty"`
	Text        string `json:"text,omitempty"`
}

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	conn, _, err := websocket.DefaultDialer.Dial(*serverURL, nil)
	if err != nil {
		logger.Fatal("Failed to connect to demo stream", zap.String("url", *serverURL), zap.Error(err))
	}
	defer conn.Close()

	if *scene > 0 {
		frame, _ := json.Marshal(controlFrame{Action: "scene", Scene: *scene})
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			logger.Fatal("Failed to select scene", zap.Error(err))
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nClosing demo stream...")
		conn.Close()
		os.Exit(0)
	}()

	fmt.Printf("Connected to %s\nPress Ctrl+C to stop\n\n", *serverURL)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logger.Info("Stream closed", zap.Error(err))
			return
		}

		var frame streamFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			logger.Warn("Skipping unparseable frame", zap.ByteString("data", data))
			continue
		}

		switch frame.Type {
		case "scene":
			fmt.Printf("\n=== %s ===\n%s\n\n", frame.Title, frame.Description)
		case "message":
			label := "AI    "
			if frame.Sender == "worker" {
				label = "Worker"
			}
			fmt.Printf("  [%s] %s\n", label, frame.Text)
		}
	}
}
