package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/kingchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex
}

// Game wraps one Position with the players, the click selection and the
// history the clients display. All engine calls happen under mu.
type Game struct {
	ID           string
	mu           sync.Mutex
	position     Position
	state        GameState
	announcement *WinnerEvent
	connections  *GameConnections
}

type GameState struct {
	Sound          string         `json:"sound"`
	Position       Position       `json:"position"`
	FEN            string         `json:"fen"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	SelectedSquare *Square        `json:"selectedSquare"`
	LegalMoves     []Square       `json:"legalMoves"`
	Resolve        *string        `json:"resolve"`
	Winner         Color          `json:"winner"`
	GamesPlayed    int            `json:"gamesPlayed"`
	Players        struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	PromotionSquare  *Square     `json:"promotionSquare"`
	PromotionOptions []PieceType `json:"promotionOptions"`
	LastMove         *SimpleMove `json:"lastMove"`
}

type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

type WinnerEvent struct {
	Winner  Color  `json:"winner"`
	Message string `json:"message"`
}

func NewGame(id string) *Game {
	return NewGameFromPosition(id, NewPosition())
}

func NewGameFromPosition(id string, pos Position) *Game {
	return &Game{
		ID:          id,
		position:    pos,
		state:       newGameState(),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func newGameState() GameState {
	return GameState{
		MoveHistory:    make([]Ply, 0),
		CapturedPieces: newCapturedPieces(),
		LegalMoves:     make([]Square, 0),
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugf("game %s: adding player %s", g.ID, playerID)

	if c := g.playerColor(playerID); c != NoColor {
		return c, nil
	}
	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{ID: playerID, Color: White}
		return White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{ID: playerID, Color: Black}
		return Black, nil
	}
	return NoColor, ErrGameFull
}

func (g *Game) playerColor(playerID string) Color {
	switch {
	case playerID == "":
		return NoColor
	case g.state.Players.White.ID == playerID:
		return White
	case g.state.Players.Black.ID == playerID:
		return Black
	}
	return NoColor
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playerColor(playerID) != NoColor
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// GetState returns a copy of the state safe to hand to another goroutine.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) snapshot() GameState {
	s := g.state
	s.Position = g.position
	s.FEN = g.position.FEN()
	s.MoveHistory = append([]Ply(nil), g.state.MoveHistory...)
	s.CapturedPieces = CapturedPieces{
		White: append([]Piece(nil), g.state.CapturedPieces.White...),
		Black: append([]Piece(nil), g.state.CapturedPieces.Black...),
	}
	s.LegalMoves = append([]Square(nil), g.state.LegalMoves...)
	s.PromotionOptions = append([]PieceType(nil), g.state.PromotionOptions...)
	return s
}

// LegalMoves lists destinations for the piece on sq without touching the
// selection.
func (g *Game) LegalMoves(sq Square) []Square {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position.LegalDestinations(sq)
}

// authorize checks that playerID holds the side to move and that no promotion
// is waiting for an answer.
func (g *Game) authorize(playerID string) error {
	color := g.playerColor(playerID)
	if color == NoColor {
		return ErrPlayerNotInGame
	}
	if color != g.position.ToMove {
		return ErrNotYourTurn
	}
	if g.state.PromotionSquare != nil {
		return ErrPromotionPending
	}
	return nil
}

func (g *Game) clearSelection() {
	g.state.SelectedSquare = nil
	g.state.LegalMoves = make([]Square, 0)
}

// Click applies one board click: the first click on a piece of the side to
// move selects it, a click on the selected square clears the selection, a
// click on a legal destination plays the move and anything else clears the
// selection.
func (g *Game) Click(playerID string, sq Square) error {
	g.mu.Lock()
	if err := g.authorize(playerID); err != nil {
		g.mu.Unlock()
		return err
	}

	var err error
	switch {
	case g.state.SelectedSquare == nil:
		if piece := g.position.At(sq); !piece.IsEmpty() && piece.Color == g.position.ToMove {
			selected := sq
			g.state.SelectedSquare = &selected
			g.state.LegalMoves = g.position.LegalDestinations(sq)
		}
	case *g.state.SelectedSquare == sq:
		g.clearSelection()
	default:
		from := *g.state.SelectedSquare
		legal := false
		for _, m := range g.state.LegalMoves {
			if m == sq {
				legal = true
				break
			}
		}
		if legal {
			err = g.makeMove(from, sq)
		} else {
			g.clearSelection()
		}
	}
	events := g.pendingEvents()
	g.mu.Unlock()

	g.broadcast(events)
	return err
}

func (g *Game) MakeMove(playerID string, move MoveRequest) error {
	g.mu.Lock()
	log.Debugf("game %s: move %s-%s by %s", g.ID, move.From, move.To, playerID)
	if err := g.authorize(playerID); err != nil {
		g.mu.Unlock()
		return err
	}
	if err := g.makeMove(move.From, move.To); err != nil {
		g.mu.Unlock()
		return err
	}
	events := g.pendingEvents()
	g.mu.Unlock()

	g.broadcast(events)
	return nil
}

func (g *Game) makeMove(from, to Square) error {
	mover := g.position.ToMove
	ply := g.position.makePly(from, to)
	outcome, err := g.position.PlayMove(from, to)
	if err != nil {
		return err
	}

	g.state.Sound = "move"
	if ply.CapturedPiece != nil {
		g.state.Sound = "capture"
		g.addCaptured(mover, *ply.CapturedPiece)
	}
	g.state.MoveHistory = append(g.state.MoveHistory, ply)
	g.state.LastMove = &SimpleMove{From: from, To: to}
	g.clearSelection()
	g.handleOutcome(outcome)
	return nil
}

func (g *Game) addCaptured(mover Color, piece Piece) {
	switch mover {
	case White:
		g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, piece)
	case Black:
		g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, piece)
	}
}

// Promote answers the pending promotion. A nil choice is a dismissed prompt.
func (g *Game) Promote(playerID string, choice *int) error {
	g.mu.Lock()
	if g.state.PromotionSquare == nil {
		g.mu.Unlock()
		return ErrNoPromotionPending
	}
	if color := g.playerColor(playerID); color != g.position.ToMove {
		g.mu.Unlock()
		if color == NoColor {
			return ErrPlayerNotInGame
		}
		return ErrNotYourTurn
	}

	sq := *g.state.PromotionSquare
	promoted := g.position.promotionPiece(choice)
	outcome, err := g.position.ResolvePromotion(sq, choice)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	g.state.PromotionSquare = nil
	g.state.PromotionOptions = nil
	if n := len(g.state.MoveHistory); n > 0 {
		last := &g.state.MoveHistory[n-1]
		last.Promotion = promoted
		last.Notation += "=" + promoted.getPieceNotation()
	}
	g.handleOutcome(outcome)
	events := g.pendingEvents()
	g.mu.Unlock()

	g.broadcast(events)
	return nil
}

// Reset starts a fresh game for the seated players.
func (g *Game) Reset(playerID string) error {
	g.mu.Lock()
	if g.playerColor(playerID) == NoColor {
		g.mu.Unlock()
		return ErrPlayerNotInGame
	}
	g.position.Reset()
	g.startNewRound()
	g.state.Resolve = nil
	g.state.Winner = NoColor
	events := g.pendingEvents()
	g.mu.Unlock()

	g.broadcast(events)
	return nil
}

func (g *Game) handleOutcome(outcome Outcome) {
	switch {
	case outcome.Winner != NoColor:
		msg := outcome.Announcement()
		log.Infof("game %s: %s", g.ID, msg)
		g.state.Resolve = &msg
		g.state.Winner = outcome.Winner
		g.state.GamesPlayed++
		g.announcement = &WinnerEvent{Winner: outcome.Winner, Message: msg}
		g.startNewRound()
	case outcome.PendingPromotion != nil:
		sq := *outcome.PendingPromotion
		g.state.PromotionSquare = &sq
		g.state.PromotionOptions = outcome.Options
	default:
		g.state.Resolve = nil
		g.state.Winner = NoColor
	}
}

// startNewRound clears everything tied to the board that was just replaced.
func (g *Game) startNewRound() {
	g.state.MoveHistory = make([]Ply, 0)
	g.state.CapturedPieces = newCapturedPieces()
	g.state.LastMove = nil
	g.state.PromotionSquare = nil
	g.state.PromotionOptions = nil
	g.clearSelection()
}

func (g *Game) pendingEvents() []ws.Message {
	events := make([]ws.Message, 0, 2)
	if g.announcement != nil {
		if payload, err := json.Marshal(g.announcement); err == nil {
			events = append(events, ws.Message{Type: ws.MessageTypeWinner, Payload: payload})
		}
		g.announcement = nil
	}
	payload, err := json.Marshal(g.snapshot())
	if err != nil {
		log.Errorf("game %s: failed to marshal state: %v", g.ID, err)
		return events
	}
	return append(events, ws.Message{Type: ws.MessageTypeGameState, Payload: payload})
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	connID := fmt.Sprintf("%p", conn)
	log.Debugf("game %s: registering connection %s for player %s", g.ID, connID, playerID)

	g.mu.Lock()
	isAuthorized := g.playerColor(playerID) != NoColor || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return fmt.Errorf("%w: not authorized to join this game", ErrPlayerNotInGame)
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	g.mu.Lock()
	state, err := json.Marshal(g.snapshot())
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.sendTo(playerID, conn, []ws.Message{{Type: ws.MessageTypeGameState, Payload: state}})
	return nil
}

func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	// Only drop the mapping if it still points at the connection that closed.
	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		delete(g.connections.connections, playerID)
	}
}

// SendError writes an error message to a single connection.
func (g *Game) SendError(playerID string, conn Conn, errorMsg string) {
	payload, err := json.Marshal(ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	g.sendTo(playerID, conn, []ws.Message{{Type: ws.MessageTypeError, Payload: payload}})
}

func (g *Game) broadcast(events []ws.Message) {
	g.connections.mu.RLock()
	active := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		g.sendTo(playerID, conn, events)
	}
}

func (g *Game) sendTo(playerID string, conn Conn, events []ws.Message) {
	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	for _, msg := range events {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("game %s: failed to send %s to player %s: %v", g.ID, msg.Type, playerID, err)
			g.UnregisterConnection(playerID, conn)
			return
		}
	}
}
