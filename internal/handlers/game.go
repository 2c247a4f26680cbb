package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/match3-server/internal/config"
	"github.com/vancomm/match3-server/internal/match3"
	"github.com/vancomm/match3-server/internal/middleware"
	"github.com/vancomm/match3-server/internal/repository"
)

var (
	ErrForbidden = errors.New("session token does not match this game")
	ErrNoMove    = errors.New("no valid move on the board")
)

type GameHandler struct {
	logger   *logrus.Logger
	store    *repository.Store
	cookies  *config.Cookies
	session  *config.Session
	ws       *config.WebSocket
	defaults match3.GameParams
	newRand  func() *rand.Rand
	now      func() time.Time
}

func NewGameHandler(
	logger *logrus.Logger,
	store *repository.Store,
	cookies *config.Cookies,
	session *config.Session,
	ws *config.WebSocket,
	defaults match3.GameParams,
	newRand func() *rand.Rand,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		store:    store,
		cookies:  cookies,
		session:  session,
		ws:       ws,
		defaults: defaults,
		newRand:  newRand,
		now:      time.Now,
	}

	return handler
}

// outcome is what one action produced, captured while the session is locked.
type outcome struct {
	session *GameSessionDTO
	turn    *TurnDTO
	swapped [][]CellDTO
	frames  []FrameDTO
	hint    *HintDTO
}

type action func(game *match3.GameState) (outcome, error)

func noop(*match3.GameState) (outcome, error) {
	return outcome{}, nil
}

func swapAction(from, to match3.Position) action {
	return func(game *match3.GameState) (outcome, error) {
		sr, err := game.Swap(from, to)
		if err != nil {
			return outcome{}, err
		}
		out := outcome{
			turn:   NewTurnDTO(sr.Valid, sr.Combo, sr.Result, nil),
			frames: NewFrameDTOs(sr.Frames),
		}
		if sr.Swapped != nil {
			out.swapped = NewBoardDTO(sr.Swapped)
		}
		return out, nil
	}
}

func toolAction(tool match3.Tool, pos match3.Position) action {
	return func(game *match3.GameState) (outcome, error) {
		res, err := game.UseTool(tool, pos)
		if err != nil {
			return outcome{}, err
		}
		return outcome{
			turn:   NewTurnDTO(true, match3.NoCombo, res, nil),
			frames: NewFrameDTOs(res.Frames),
		}, nil
	}
}

func nextLevelAction(game *match3.GameState) (outcome, error) {
	return outcome{}, game.NextLevel()
}

func hintAction(game *match3.GameState) (outcome, error) {
	move, ok := game.Hint()
	if !ok {
		return outcome{}, ErrNoMove
	}
	return outcome{hint: &HintDTO{Move: move}}, nil
}

// run applies act to the session's game and snapshots the result. Frames
// are only recorded when a client is going to stream them.
func (g GameHandler) run(session *repository.GameSession, record bool, act action) (outcome, error) {
	now := g.now()
	var out outcome
	err := session.Do(now, func(game *match3.GameState) error {
		game.Resolver().RecordFrames(record)
		defer game.Resolver().RecordFrames(false)

		var err error
		out, err = act(game)
		game.Expired(now)
		out.session = NewGameSessionDTO(session.ID.String(), session.StartedAt, now, game)
		return err
	})
	out.session.SetEndedAt(session.EndedAt())
	if out.turn != nil {
		out.turn.Session = out.session
	}
	return out, err
}

// authorize resolves the path session and checks that the caller holds its
// token.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request) (*repository.GameSession, bool) {
	session, err := g.store.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.logger, err)
		return nil, false
	}
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok || claims.SessionID != session.ID.String() {
		w.WriteHeader(http.StatusForbidden)
		sendJSONOrLog(w, g.logger, wrapError(ErrForbidden))
		return nil, false
	}
	return session, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	params := dto.Params(g.defaults)
	game, err := match3.NewGame(&params, g.newRand())
	if err != nil {
		sendError(w, g.logger, err)
		return
	}

	now := g.now()
	session := g.store.Create(game, now)
	token, err := g.session.Sign(g.session.NewClaims(session.ID.String(), now))
	if err != nil {
		g.store.Delete(session.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to sign session token")
		return
	}
	if err := g.cookies.Refresh(w, token); err != nil {
		g.store.Delete(session.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.WithError(err).Error("unable to set session cookies")
		return
	}

	g.logger.WithFields(logrus.Fields{
		"session": session.ID,
		"width":   params.Width,
		"height":  params.Height,
		"level":   game.Level,
	}).Debug("game session created")

	out, err := g.run(session, false, noop)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	out.session.Token = token
	sendJSONOrLog(w, g.logger, out.session)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, err := g.store.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	out, err := g.run(session, false, noop)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, out.session)
}

func (g GameHandler) Swap(w http.ResponseWriter, r *http.Request) {
	session, ok := g.authorize(w, r)
	if !ok {
		return
	}
	dto, err := ParseSwapDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	from, to := dto.Positions()
	out, err := g.run(session, false, swapAction(from, to))
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, out.turn)
}

func (g GameHandler) UseTool(w http.ResponseWriter, r *http.Request) {
	session, ok := g.authorize(w, r)
	if !ok {
		return
	}
	dto, err := ParseToolDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	tool, err := match3.ParseTool(dto.Tool)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	pos := match3.Position{Row: dto.Row, Col: dto.Col}
	out, err := g.run(session, false, toolAction(tool, pos))
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, out.turn)
}

func (g GameHandler) NextLevel(w http.ResponseWriter, r *http.Request) {
	session, ok := g.authorize(w, r)
	if !ok {
		return
	}
	out, err := g.run(session, false, nextLevelAction)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, out.session)
}

func (g GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	session, ok := g.authorize(w, r)
	if !ok {
		return
	}
	out, err := g.run(session, false, hintAction)
	if err != nil {
		sendError(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, out.hint)
}

// Abandon drops the session and its cookies.
func (g GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	session, ok := g.authorize(w, r)
	if !ok {
		return
	}
	g.store.Delete(session.ID)
	g.cookies.Clear(w)
	g.logger.WithField("session", session.ID).Debug("game session abandoned")
	w.WriteHeader(http.StatusNoContent)
}
