// Interactive demo client. Commands:
//
//	create <name>          create a room and become host
//	join <code> <name>     join a room by code
//	start                  start the game (host)
//	answer <option>        answer the current round with option text
//	next                   force the next round (host)
//	end                    end the game (host)
package main

import (
	"bufio"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type client struct {
	conn    *websocket.Conn
	roomID  string
	roundID string
	started time.Time
}

func (c *client) send(event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	env := envelope{Event: event, Data: data}
	if err := c.conn.WriteJSON(&env); err != nil {
		log.Printf("write error: %v", err)
	}
}

func (c *client) readLoop(done chan<- struct{}) {
	defer close(done)
	for {
		var env envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			log.Printf("read error: %v", err)
			return
		}
		c.handle(&env)
	}
}

func (c *client) handle(env *envelope) {
	var payload map[string]json.RawMessage
	json.Unmarshal(env.Data, &payload)

	switch env.Event {
	case "roomCreated", "roomJoined":
		var room struct {
			ID   string `json:"id"`
			Code string `json:"code"`
		}
		json.Unmarshal(payload["room"], &room)
		c.roomID = room.ID
		log.Printf("<- %s: room %s, code %s", env.Event, room.ID, room.Code)

	case "gameStarted", "nextRound":
		var round struct {
			ID      string   `json:"id"`
			Text    string   `json:"text"`
			Options []string `json:"options"`
		}
		json.Unmarshal(payload["currentRound"], &round)
		c.roundID = round.ID
		c.started = time.Now()
		log.Printf("<- %s: %s", env.Event, round.Text)
		for i, option := range round.Options {
			log.Printf("   %d) %s", i+1, option)
		}

	default:
		log.Printf("<- %s: %s", env.Event, string(env.Data))
	}
}

func main() {
	addr := "localhost:8080"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	c := &client{conn: conn}
	done := make(chan struct{})
	go c.readLoop(done)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-done:
			return
		default:
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "create":
			if len(fields) < 2 {
				log.Println("usage: create <name>")
				continue
			}
			c.send("createRoom", map[string]string{"hostName": strings.Join(fields[1:], " ")})
		case "join":
			if len(fields) < 3 {
				log.Println("usage: join <code> <name>")
				continue
			}
			c.send("joinRoom", map[string]string{
				"roomCode":   fields[1],
				"playerName": strings.Join(fields[2:], " "),
			})
		case "start":
			c.send("startGame", map[string]string{"roomId": c.roomID})
		case "answer":
			if len(fields) < 2 {
				log.Println("usage: answer <option text>")
				continue
			}
			c.send("submitAnswer", map[string]interface{}{
				"roomId":         c.roomID,
				"roundId":        c.roundID,
				"answer":         strings.Join(fields[1:], " "),
				"responseTimeMs": time.Since(c.started).Milliseconds(),
			})
		case "next":
			c.send("nextRound", map[string]string{"roomId": c.roomID})
		case "end":
			c.send("endGame", map[string]string{"roomId": c.roomID})
		default:
			log.Printf("unknown command %q", fields[0])
		}
	}
}
