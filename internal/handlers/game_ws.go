package handlers

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/match3-server/internal/match3"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseInts(strs []string) ([]int, error) {
	ints := make([]int, len(strs))
	for i, s := range strs {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int", i+1)
		}
		ints[i] = n
	}
	return ints, nil
}

var commandNargs = map[string]int{
	"g": 0, // get session
	"s": 4, // swap r1 c1 r2 c2
	"b": 2, // bomb r c
	"x": 0, // shuffle
	"h": 0, // hint
	"n": 0, // next level
}

func parseCommand(c string) (action, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return nil, fmt.Errorf("invalid number of arguments")
	}
	args, err := parseInts(parts[1:])
	if err != nil {
		return nil, err
	}

	switch parts[0] {
	case "g":
		return noop, nil
	case "s":
		from := match3.Position{Row: args[0], Col: args[1]}
		to := match3.Position{Row: args[2], Col: args[3]}
		return swapAction(from, to), nil
	case "b":
		return toolAction(match3.ToolBomb, match3.Position{Row: args[0], Col: args[1]}), nil
	case "x":
		return toolAction(match3.ToolShuffle, match3.Position{}), nil
	case "h":
		return hintAction, nil
	case "n":
		return nextLevelAction, nil
	}
	return nil, fmt.Errorf("invalid command")
}

type wsMessage struct {
	Type    string          `json:"type"`
	Board   [][]CellDTO     `json:"board,omitempty"`
	Frame   *FrameDTO       `json:"frame,omitempty"`
	Turn    *TurnDTO        `json:"turn,omitempty"`
	Session *GameSessionDTO `json:"session,omitempty"`
	Hint    *HintDTO        `json:"hint,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// messages orders an outcome for streaming: the exchanged board, then every
// phase frame, then the summary.
func (out outcome) messages() []wsMessage {
	var msgs []wsMessage
	if out.swapped != nil {
		msgs = append(msgs, wsMessage{Type: "swap", Board: out.swapped})
	}
	for i := range out.frames {
		msgs = append(msgs, wsMessage{Type: "frame", Frame: &out.frames[i]})
	}
	switch {
	case out.turn != nil:
		msgs = append(msgs, wsMessage{Type: "turn", Turn: out.turn})
	case out.hint != nil:
		msgs = append(msgs, wsMessage{Type: "hint", Hint: out.hint, Session: out.session})
	default:
		msgs = append(msgs, wsMessage{Type: "session", Session: out.session})
	}
	return msgs
}

func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// ConnectWS plays a session over a websocket. Each text message holds one or
// more newline separated commands; resolution frames are streamed with the
// configured delay between them.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, ok := g.authorize(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Error("unable to upgrade")
		return
	}

	defer c.Close()

	log := g.logger.WithField("session", session.ID)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)
		for _, line := range iterBySep(text, "\n") {
			var msgs []wsMessage
			act, err := parseCommand(line)
			if err == nil {
				var out outcome
				out, err = g.run(session, true, act)
				msgs = out.messages()
			}
			if err != nil {
				log.WithError(err).Debug("unable to process command")
				msgs = []wsMessage{{Type: "error", Error: err.Error()}}
			}
			for i, msg := range msgs {
				if i > 0 && msg.Type == "frame" && !pause(r.Context(), g.ws.FrameDelay) {
					return
				}
				if err := c.WriteJSON(msg); err != nil {
					log.WithError(err).Error("unable to write json")
					return
				}
			}
			log.Debugf("\t< %d messages", len(msgs))
		}
	}
}
