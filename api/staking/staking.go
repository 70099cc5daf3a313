// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/api/utils"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/runtime"
)

type Staking struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Staking {
	return &Staking{rt}
}

func parseStaker(req *http.Request) (gona.PublicKey, error) {
	key, err := gona.ParsePublicKey(mux.Vars(req)["staker"])
	if err != nil {
		return gona.PublicKey{}, utils.BadRequest(errors.WithMessage(err, "staker"))
	}
	return key, nil
}

func writeReceipt(w http.ResponseWriter, res *runtime.Result, err error) error {
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertReceipt(res))
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.From == nil {
		return utils.BadRequest(errors.New("from: required"))
	}
	if body.Staker == nil {
		return utils.BadRequest(errors.New("staker: required"))
	}
	res, err := s.rt.Stake(*body.From, *body.Staker, body.Amount, body.TokenID)
	return writeReceipt(w, res, err)
}

func (s *Staking) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	var body DepositRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.From == nil {
		return utils.BadRequest(errors.New("from: required"))
	}
	res, err := s.rt.DepositPool(*body.From, body.Amount)
	return writeReceipt(w, res, err)
}

func (s *Staking) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	var body UnstakeRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Staker == nil {
		return utils.BadRequest(errors.New("staker: required"))
	}
	res, err := s.rt.Unstake(*body.Staker, body.Amount)
	return writeReceipt(w, res, err)
}

func (s *Staking) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	key, err := parseStaker(req)
	if err != nil {
		return err
	}
	entry, err := s.rt.GetStakeInfo(key)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertEntry(entry))
}

func (s *Staking) handleGetRewards(w http.ResponseWriter, req *http.Request) error {
	key, err := parseStaker(req)
	if err != nil {
		return err
	}
	res, err := s.rt.CalculateRewards(key)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertRewards(res))
}

func (s *Staking) handleGetVolume(w http.ResponseWriter, _ *http.Request) error {
	volume, err := s.rt.RewardVolume()
	if err != nil {
		return err
	}
	total, err := s.rt.TotalStaked()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Volume{RewardVolume: volume, TotalStaked: total})
}

func (s *Staking) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	cfg, err := s.rt.Config()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertConfig(cfg))
}

// adminHandler decodes an AdminRequest and runs op with it.
func adminHandler(op func(caller gona.Address, body *AdminRequest) (*runtime.Result, error)) utils.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		var body AdminRequest
		if err := utils.ParseJSON(req.Body, &body); err != nil {
			return utils.BadRequest(errors.WithMessage(err, "body"))
		}
		if body.Caller == nil {
			return utils.BadRequest(errors.New("caller: required"))
		}
		res, err := op(*body.Caller, &body)
		return writeReceipt(w, res, err)
	}
}

func (s *Staking) pause(caller gona.Address, _ *AdminRequest) (*runtime.Result, error) {
	return s.rt.SetPaused(caller)
}

func (s *Staking) resume(caller gona.Address, _ *AdminRequest) (*runtime.Result, error) {
	return s.rt.Resume(caller)
}

func (s *Staking) changeWeight(caller gona.Address, body *AdminRequest) (*runtime.Result, error) {
	if body.Weight == nil {
		return nil, utils.BadRequest(errors.New("weight: required"))
	}
	return s.rt.ChangeWeight(caller, *body.Weight)
}

func (s *Staking) withdraw(caller gona.Address, body *AdminRequest) (*runtime.Result, error) {
	if body.Amount == nil {
		return nil, utils.BadRequest(errors.New("amount: required"))
	}
	return s.rt.WithdrawVolume(caller, *body.Amount)
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("POST /staking/stake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleStake))
	sub.Path("/deposit").
		Methods(http.MethodPost).
		Name("POST /staking/deposit").
		HandlerFunc(utils.WrapHandlerFunc(s.handleDeposit))
	sub.Path("/unstake").
		Methods(http.MethodPost).
		Name("POST /staking/unstake").
		HandlerFunc(utils.WrapHandlerFunc(s.handleUnstake))
	sub.Path("/stakes/{staker}").
		Methods(http.MethodGet).
		Name("GET /staking/stakes/{staker}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStake))
	sub.Path("/rewards/{staker}").
		Methods(http.MethodGet).
		Name("GET /staking/rewards/{staker}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetRewards))
	sub.Path("/volume").
		Methods(http.MethodGet).
		Name("GET /staking/volume").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetVolume))
	sub.Path("/config").
		Methods(http.MethodGet).
		Name("GET /staking/config").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetConfig))

	sub.Path("/admin/pause").
		Methods(http.MethodPost).
		Name("POST /staking/admin/pause").
		HandlerFunc(utils.WrapHandlerFunc(adminHandler(s.pause)))
	sub.Path("/admin/resume").
		Methods(http.MethodPost).
		Name("POST /staking/admin/resume").
		HandlerFunc(utils.WrapHandlerFunc(adminHandler(s.resume)))
	sub.Path("/admin/weight").
		Methods(http.MethodPost).
		Name("POST /staking/admin/weight").
		HandlerFunc(utils.WrapHandlerFunc(adminHandler(s.changeWeight)))
	sub.Path("/admin/withdraw").
		Methods(http.MethodPost).
		Name("POST /staking/admin/withdraw").
		HandlerFunc(utils.WrapHandlerFunc(adminHandler(s.withdraw)))
}
