package app

import (
	"context"
	"time"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Application runs transactions and ticks against a committed store.
// Every call works on the deliver cache, Commit persists it.
//
// Application is not safe for concurrent use.
type Application struct {
	store   *CommitStore
	handler royalty.Handler
	ticker  royalty.Ticker
	init    royalty.Initializer
	journal Journal
	logger  log.Logger

	// chainID is loaded from the store, saved once by InitChain
	chainID string
}

// NewApplication loads the latest committed version of the store. The
// ticker and the initializer are optional.
func NewApplication(
	store royalty.CommitKVStore,
	handler royalty.Handler,
	ticker royalty.Ticker,
	init royalty.Initializer,
	logger log.Logger,
) (*Application, error) {
	cs, err := NewCommitStore(store)
	if err != nil {
		return nil, err
	}
	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Application{
		store:   cs,
		handler: handler,
		ticker:  ticker,
		init:    init,
		journal: NewJournal(),
		logger:  logger,
		chainID: chainID,
	}, nil
}

// ChainID returns the chain ID set by InitChain, empty before genesis.
func (a *Application) ChainID() string {
	return a.chainID
}

// InitChain stores the chain ID and loads the genesis state of every
// extension. The result is committed.
func (a *Application) InitChain(gen *Genesis) error {
	if a.chainID != "" {
		return errors.Wrapf(errors.ErrDuplicate, "chain %q already initialized", a.chainID)
	}
	if err := gen.Validate(); err != nil {
		return errors.Wrap(err, "genesis")
	}
	err := utils.Atomic(a.store.DeliverStore(), func(db royalty.KVStore) error {
		if err := saveChainID(db, gen.ChainID); err != nil {
			return err
		}
		if a.init == nil {
			return nil
		}
		return a.init.FromGenesis(gen.AppState, db)
	})
	if err != nil {
		return errors.Wrap(err, "init chain")
	}
	a.chainID = gen.ChainID
	if _, err := a.Commit(); err != nil {
		return err
	}
	a.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// Height returns the height of the block being built.
func (a *Application) Height() (int64, error) {
	info, err := a.store.CommitInfo()
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return info.Version + 1, nil
}

func (a *Application) blockContext(now time.Time, call string) (royalty.Context, int64, error) {
	if a.chainID == "" {
		return nil, 0, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	height, err := a.Height()
	if err != nil {
		return nil, 0, err
	}
	ctx := context.Background()
	ctx = royalty.WithChainID(ctx, a.chainID)
	ctx = royalty.WithHeight(ctx, height)
	ctx = royalty.WithBlockTime(ctx, now)
	ctx = royalty.WithLogger(ctx, a.logger.With("call", call, "height", height))
	return ctx, height, nil
}

// Check validates the transaction against the check cache without
// modifying the deliver state.
func (a *Application) Check(now time.Time, tx royalty.Tx) (*royalty.CheckResult, error) {
	ctx, _, err := a.blockContext(now, "check")
	if err != nil {
		return nil, err
	}
	return a.handler.Check(ctx, a.store.CheckStore(), tx)
}

// Deliver executes the transaction. Its changes and the events it produced
// are written to the deliver cache only if no error occurred.
func (a *Application) Deliver(now time.Time, tx royalty.Tx) (*royalty.DeliverResult, error) {
	ctx, height, err := a.blockContext(now, "deliver")
	if err != nil {
		return nil, err
	}
	var res *royalty.DeliverResult
	err = utils.Atomic(a.store.DeliverStore(), func(db royalty.KVStore) error {
		var err error
		if res, err = a.handler.Deliver(ctx, db, tx); err != nil {
			return err
		}
		return a.journal.Record(db, height, royalty.AsUnixTime(now), res.Events)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeliverRaw decodes a binary transaction and delivers it.
func (a *Application) DeliverRaw(now time.Time, raw []byte) (*royalty.DeliverResult, error) {
	tx, err := DecodeTx(raw)
	if err != nil {
		return nil, err
	}
	return a.Deliver(now, tx)
}

// Tick runs the periodic tasks at given block time.
func (a *Application) Tick(now time.Time) (*royalty.TickResult, error) {
	if a.ticker == nil {
		return &royalty.TickResult{}, nil
	}
	ctx, height, err := a.blockContext(now, "tick")
	if err != nil {
		return nil, err
	}
	var res *royalty.TickResult
	err = utils.Atomic(a.store.DeliverStore(), func(db royalty.KVStore) error {
		var err error
		if res, err = a.ticker.Tick(ctx, db); err != nil {
			return err
		}
		return a.journal.Record(db, height, royalty.AsUnixTime(now), res.Events)
	})
	if err != nil {
		return nil, errors.Wrap(err, "tick")
	}
	return res, nil
}

// Commit persists the deliver cache as a new version.
func (a *Application) Commit() (royalty.CommitID, error) {
	id, err := a.store.Commit()
	if err != nil {
		return id, err
	}
	a.logger.Debug("commit", "version", id.Version)
	return id, nil
}

// ReadStore returns a read only view of the last committed state.
func (a *Application) ReadStore() royalty.ReadOnlyKVStore {
	return a.store.ReadStore()
}

// Journal returns the journal of committed events.
func (a *Application) Journal() Journal {
	return a.journal
}
