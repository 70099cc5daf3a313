// Copyright (c) 2025 The Gona developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/gona-network/gonastake/builtin"
	"github.com/gona-network/gonastake/builtin/staker"
	"github.com/gona-network/gonastake/builtin/staker/reverts"
	"github.com/gona-network/gonastake/gona"
	"github.com/gona-network/gonastake/log"
	"github.com/gona-network/gonastake/logdb"
	"github.com/gona-network/gonastake/state"
)

var logger = log.WithContext("pkg", "runtime")

// Clock returns the current time in epoch milliseconds.
type Clock func() uint64

// SystemClock reads the wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().UnixMilli())
}

// Result is the outcome of a committed operation.
type Result struct {
	Receipt   *staker.Receipt
	StageHash gona.Bytes32
	Time      uint64
}

// Committed is published for every committed operation that produced a receipt.
type Committed struct {
	Op     string
	Result *Result
}

// Runtime hosts the staking contract. Mutating operations are serialized and
// either commit as a whole or leave no trace.
type Runtime struct {
	mu     sync.RWMutex
	stater *state.Stater
	logDB  *logdb.LogDB
	clock  Clock

	committedFeed event.Feed
	scope         event.SubscriptionScope
}

// New create a Runtime object. logDB may be nil, and a nil clock means SystemClock.
func New(stater *state.Stater, logDB *logdb.LogDB, clock Clock) *Runtime {
	if clock == nil {
		clock = SystemClock
	}
	return &Runtime{
		stater: stater,
		logDB:  logDB,
		clock:  clock,
	}
}

// SubscribeCommitted delivers committed operations to ch, in commit order.
// The runtime waits for ch to accept each one.
func (r *Runtime) SubscribeCommitted(ch chan<- *Committed) event.Subscription {
	return r.scope.Track(r.committedFeed.Subscribe(ch))
}

// Close ends all subscriptions.
func (r *Runtime) Close() {
	r.scope.Close()
}

// env binds the contracts to one working state.
type env struct {
	state  *state.State
	staker *staker.Staker
	token  tokenLedger
	wallet walletLedger
	now    uint64
}

// tokenLedger is the token contract as seen by the runtime.
type tokenLedger interface {
	Transfer(from, to gona.Address, amount uint64) error
	BalanceOf(addr gona.Address) (uint64, error)
}

// walletLedger is the smart wallet contract as seen by the runtime.
type walletLedger interface {
	Credit(key gona.PublicKey, amount uint64) error
}

func (r *Runtime) newEnv(st *state.State) *env {
	return &env{
		state:  st,
		staker: builtin.Staker.WithState(st),
		token:  builtin.Token.WithState(st),
		wallet: builtin.Wallet.WithState(st),
		now:    r.clock(),
	}
}

// execute runs op against a fresh state and commits it when op and the effects
// of its receipt succeed.
func (r *Runtime) execute(name string, op func(e *env) (*staker.Receipt, error)) (*Result, error) {
	return r.executeWith(name, r.newEnv, op)
}

func (r *Runtime) executeWith(name string, newEnv func(*state.State) *env, op func(e *env) (*staker.Receipt, error)) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	e := newEnv(r.stater.NewState())
	checkpoint := e.state.NewCheckpoint()

	receipt, err := op(e)
	if err == nil && receipt != nil {
		err = e.apply(receipt)
	}
	if err != nil {
		e.state.RevertTo(checkpoint)
		metricOpCount().AddWithLabel(1, map[string]string{"op": name, "status": status(err)})
		logger.Debug("operation reverted", "op", name, "err", err)
		return nil, err
	}

	stage, err := e.state.Stage()
	if err != nil {
		return nil, errors.Wrap(err, "stage")
	}
	hash, err := stage.Commit()
	if err != nil {
		return nil, errors.Wrap(err, "commit")
	}

	metricOpCount().AddWithLabel(1, map[string]string{"op": name, "status": "ok"})
	metricOpDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"op": name})
	res := &Result{Receipt: receipt, StageHash: hash, Time: e.now}
	if receipt != nil {
		r.writeLogs(receipt, e.now)
		r.observe(e, receipt)
		r.committedFeed.Send(&Committed{Op: name, Result: res})
	}
	logger.Debug("operation committed", "op", name, "changes", stage.Len(), "hash", hash.AbbrevString())

	return res, nil
}

// apply performs the outbound transfer described by receipt.
func (e *env) apply(receipt *staker.Receipt) error {
	tr := receipt.Transfer
	if tr == nil {
		return nil
	}
	if err := e.token.Transfer(e.staker.Address(), tr.To, tr.Amount); err != nil {
		return externalCallError("token transfer", err)
	}
	if tr.Staker != nil && tr.To == builtin.Wallet.Address {
		if err := e.wallet.Credit(*tr.Staker, tr.Amount); err != nil {
			return externalCallError("wallet credit", err)
		}
	}
	return nil
}

// externalCallError reports a failing contract call as a revert. Storage
// failures stay infra errors.
func externalCallError(call string, err error) error {
	if !reverts.IsRevertErr(err) {
		return errors.Wrap(err, call)
	}
	return errors.WithMessagef(reverts.ErrExternalCall, "%s: %v", call, err)
}

func (r *Runtime) writeLogs(receipt *staker.Receipt, now uint64) {
	if r.logDB == nil {
		return
	}
	w := r.logDB.NewWriter()
	if ev := receipt.Event; ev != nil {
		w.Write([]*logdb.Event{{
			Tag:    uint8(ev.Tag),
			Staker: ev.Staker,
			Sender: ev.Sender,
			Amount: ev.Amount,
			Time:   ev.Time,
		}}, nil)
	}
	if tr := receipt.Transfer; tr != nil {
		w.Write(nil, []*logdb.Transfer{{
			TokenID:   tr.TokenID,
			Amount:    tr.Amount,
			Recipient: tr.To,
			Staker:    tr.Staker,
			Time:      now,
		}})
	}
	// state is committed already, a lost log entry does not undo it
	if err := w.Commit(); err != nil {
		logger.Error("failed to write logs", "err", err)
	}
}

func status(err error) string {
	if reverts.IsRevertErr(err) {
		return "reverted"
	}
	return "failed"
}

//
// Operations
//

// Stake transfers amount from the token holder into the staking contract and locks it for staker.
func (r *Runtime) Stake(from gona.Address, key gona.PublicKey, amount uint64, tokenID gona.TokenID) (*Result, error) {
	return r.execute("stake", func(e *env) (*staker.Receipt, error) {
		if err := e.token.Transfer(from, e.staker.Address(), amount); err != nil {
			return nil, err
		}
		return e.staker.Stake(builtin.Token.Address, key, amount, tokenID, e.now)
	})
}

// DepositPool transfers amount from the token holder into the reward pool.
func (r *Runtime) DepositPool(from gona.Address, amount uint64) (*Result, error) {
	return r.execute("deposit", func(e *env) (*staker.Receipt, error) {
		if err := e.token.Transfer(from, e.staker.Address(), amount); err != nil {
			return nil, err
		}
		return e.staker.DepositPool(builtin.Token.Address, from, amount, e.now)
	})
}

// Unstake withdraws amount of principal of staker and pays it with its reward to the smart wallet.
func (r *Runtime) Unstake(key gona.PublicKey, amount uint64) (*Result, error) {
	return r.execute("unstake", func(e *env) (*staker.Receipt, error) {
		return e.staker.Unstake(key, amount, e.now)
	})
}

// SetPaused stops new stakes.
func (r *Runtime) SetPaused(caller gona.Address) (*Result, error) {
	return r.execute("pause", func(e *env) (*staker.Receipt, error) {
		return nil, e.staker.SetPaused(caller)
	})
}

// Resume lifts the pause.
func (r *Runtime) Resume(caller gona.Address) (*Result, error) {
	return r.execute("resume", func(e *env) (*staker.Receipt, error) {
		return nil, e.staker.Resume(caller)
	})
}

// ChangeWeight sets the reward rate.
func (r *Runtime) ChangeWeight(caller gona.Address, weight uint32) (*Result, error) {
	return r.execute("weight", func(e *env) (*staker.Receipt, error) {
		return nil, e.staker.ChangeWeight(caller, weight)
	})
}

// WithdrawVolume removes up to amount from the reward pool and pays it to the admin.
func (r *Runtime) WithdrawVolume(caller gona.Address, amount uint64) (*Result, error) {
	return r.execute("withdraw", func(e *env) (*staker.Receipt, error) {
		return e.staker.WithdrawVolume(caller, amount, e.now)
	})
}
