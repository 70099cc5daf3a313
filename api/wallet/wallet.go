// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wallet

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/api/utils"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/runtime"
)

type Wallet struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Wallet {
	return &Wallet{rt}
}

// Credit is what the smart wallet holds for a staker.
type Credit struct {
	Staker  gona.PublicKey `json:"staker"`
	Balance uint64         `json:"balance"`
}

func (wl *Wallet) handleGetCredit(w http.ResponseWriter, req *http.Request) error {
	key, err := gona.ParsePublicKey(mux.Vars(req)["staker"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "staker"))
	}
	balance, err := wl.rt.WalletBalance(key)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Credit{Staker: key, Balance: balance})
}

func (wl *Wallet) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{staker}").
		Methods(http.MethodGet).
		Name("GET /wallet/{staker}").
		HandlerFunc(utils.WrapHandlerFunc(wl.handleGetCredit))
}
