package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/match3-server/internal/handlers"
)

// createRand seeds a fresh generator per game, since a *rand.Rand must not
// be shared between sessions played concurrently.
func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.store, a.cfg.Cookies, a.cfg.Session, a.cfg.WS, a.cfg.Defaults, createRand,
	)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /game/{id}", game.Abandon)
	a.router.HandleFunc("POST /game/{id}/swap", game.Swap)
	a.router.HandleFunc("POST /game/{id}/tool", game.UseTool)
	a.router.HandleFunc("POST /game/{id}/next", game.NextLevel)
	a.router.HandleFunc("GET /game/{id}/hint", game.Hint)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)
}
