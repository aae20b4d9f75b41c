package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arcanaland/pokerhand/internal/card"
	"github.com/arcanaland/pokerhand/internal/hand"
)

const writeWait = 10 * time.Second

// Message is one frame of the /ws/deal reveal.
type Message struct {
	Type    string        `json:"type"`
	HandID  string        `json:"hand_id,omitempty"`
	DeckID  string        `json:"deck_id,omitempty"`
	Index   *int          `json:"index,omitempty"`
	Card    *card.Card    `json:"card,omitempty"`
	Ranking *hand.Ranking `json:"ranking,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.originAllowed(r.Header.Get("Origin"))
		},
	}
}

// DealSocket deals a hand and reveals it one card at a time, RevealDelay
// apart, finishing with the ranking.
func (s *Server) DealSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	h, state, err := s.dealer.DealHand(ctx)
	if err != nil {
		s.log.Error("dealing failed", "error", err)
		s.send(conn, Message{Type: "error", Error: "dealing failed: " + err.Error()})
		s.closeWith(conn, websocket.CloseInternalServerErr, "dealing failed")
		return
	}

	view := dealtView(h, state)
	for i := range view.Cards {
		if i > 0 && s.revealDelay > 0 {
			timer := time.NewTimer(s.revealDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
		index := i
		if err := s.send(conn, Message{Type: "card", HandID: view.ID, DeckID: view.DeckID, Index: &index, Card: &view.Cards[i]}); err != nil {
			s.log.Debug("client went away during reveal", "error", err)
			return
		}
	}

	ranking := view.Ranking
	if err := s.send(conn, Message{Type: "ranking", HandID: view.ID, DeckID: view.DeckID, Ranking: &ranking}); err != nil {
		return
	}
	s.closeWith(conn, websocket.CloseNormalClosure, "")
}

func (s *Server) send(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func (s *Server) closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(writeWait))
}
