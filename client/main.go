package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wfunc/sketchdash/models"
	"github.com/wfunc/sketchdash/network"
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	return c.WriteMessage(websocket.BinaryMessage, network.EncodePacket(msgID, data))
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	name := flag.String("name", "cli-player", "player name")
	roomID := flag.String("room", "", "room id (empty = automatch)")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			packet, err := network.DecodePacket(message)
			if err != nil {
				continue
			}
			printEvent(packet)
		}
	}()

	// Join first
	join, _ := json.Marshal(models.JoinRequest{RoomID: *roomID, Name: *name})
	if err := send(c, network.MsgTypeJoinGame, join); err != nil {
		log.Fatalf("Join failed: %v", err)
	}

	// Stdin loop: plain text = guess/chat, "/pick WORD" = choose word,
	// "/clear" = clear canvas
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			switch {
			case strings.HasPrefix(line, "/pick "):
				word := strings.TrimPrefix(line, "/pick ")
				data, _ := json.Marshal(models.WordSelection{Word: word})
				send(c, network.MsgTypeWordSelected, data)
			case line == "/clear":
				send(c, network.MsgTypeClearCanvas, nil)
			default:
				data, _ := json.Marshal(models.ChatMessage{Text: line})
				send(c, network.MsgTypeSendMessage, data)
			}
		}
	}()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-done:
			return
		case <-heartbeat.C:
			send(c, network.MsgTypeHeartbeat, nil)
		case <-interrupt:
			log.Println("Interrupted, closing connection")
			c.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}

func printEvent(packet *network.Packet) {
	switch packet.MsgID {
	case network.MsgTypeJoinAck:
		log.Printf("[joined] %s", packet.Data)
	case network.MsgTypePlayerListUpdate:
		log.Printf("[players] %s", packet.Data)
	case network.MsgTypeGameStateUpdate:
		log.Printf("[state] %s", packet.Data)
	case network.MsgTypeTimerUpdate:
		var t models.TimerUpdate
		if json.Unmarshal(packet.Data, &t) == nil && t.Seconds%10 == 0 {
			log.Printf("[timer] %d", t.Seconds)
		}
	case network.MsgTypeNewMessage:
		log.Printf("[chat] %s", packet.Data)
	case network.MsgTypeCorrectGuess:
		log.Printf("[correct!] %s", packet.Data)
	case network.MsgTypeGameWin:
		log.Printf("[game over] %s", packet.Data)
	case network.MsgTypeRemoteClear:
		log.Printf("[canvas cleared]")
	case network.MsgTypeRemoteDraw:
		// 笔画太吵，不打印
	default:
		log.Printf("[msg %d] %s", packet.MsgID, packet.Data)
	}
}
