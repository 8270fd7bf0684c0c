// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/powledger/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/blockchain/worker"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/nameservice"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *zap.SugaredLogger
	State    *state.State
	Worker   *worker.Worker
	NS       *nameservice.NameService
	Evts     *events.Events
	MinerKey string
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:      cfg.Log,
		State:    cfg.State,
		Worker:   cfg.Worker,
		NS:       cfg.NS,
		WS:       websocket.Upgrader{},
		Evts:     cfg.Evts,
		MinerKey: cfg.MinerKey,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/status", pbl.Status)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/blocks/list", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/search/:query", pbl.SearchBlock)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/wallets/list", pbl.Wallets)
	app.Handle(http.MethodPost, version, "/wallets/register", pbl.RegisterWallet)
	app.Handle(http.MethodPost, version, "/wallets/create", pbl.CreateWallet)
	app.Handle(http.MethodPost, version, "/mining/start", pbl.StartMining)
	app.Handle(http.MethodPost, version, "/mining/cancel", pbl.CancelMining)
	app.Handle(http.MethodPost, version, "/mining/difficulty", pbl.SetDifficulty)
	app.Handle(http.MethodGet, version, "/keys/bootstrap", pbl.BootstrapKeys)
	app.Handle(http.MethodPost, version, "/demo/setup", pbl.DemoSetup)
}
