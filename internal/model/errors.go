package model

import "errors"

var (
	ErrInvalidMove        = errors.New("invalid move")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrPromotionPending   = errors.New("promotion pending")
	ErrNoPromotionPending = errors.New("no promotion pending")
	ErrInvalidFEN         = errors.New("invalid FEN")
	ErrGameFull           = errors.New("game is full")
	ErrGameNotFound       = errors.New("game not found")
	ErrGameExists         = errors.New("game already exists")
	ErrPlayerNotInGame    = errors.New("player not in game")
	ErrAlreadyQueued      = errors.New("player already in queue")
)
