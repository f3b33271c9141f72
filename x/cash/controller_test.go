package cash

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store"
	"github.com/iov-one/royalty/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	owner := weavetest.NewCondition()
	stranger := weavetest.NewCondition()
	dest := weavetest.NewCondition().Address()

	cases := map[string]struct {
		initial   uint64
		authority royalty.Condition
		amount    uint64
		wantErr   *errors.Error
		wantFrom  uint64
		wantTo    uint64
	}{
		"full balance": {
			initial:   100,
			authority: owner,
			amount:    100,
			wantFrom:  0,
			wantTo:    100,
		},
		"partial balance": {
			initial:   100,
			authority: owner,
			amount:    40,
			wantFrom:  60,
			wantTo:    40,
		},
		"insufficient funds leave both holdings intact": {
			initial:   10,
			authority: owner,
			amount:    11,
			wantErr:   errors.ErrAmount,
			wantFrom:  10,
		},
		"authority not owning the source": {
			initial:   100,
			authority: stranger,
			amount:    1,
			wantErr:   errors.ErrUnauthorized,
			wantFrom:  100,
		},
		"missing authority": {
			initial:  100,
			amount:   1,
			wantErr:  errors.ErrUnauthorized,
			wantFrom: 100,
		},
		"zero amount": {
			initial:   100,
			authority: owner,
			wantErr:   errors.ErrAmount,
			wantFrom:  100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			c := NewController()
			require.NoError(t, c.Issue(db, owner.Address(), tc.initial))

			err := c.Transfer(db, owner.Address(), dest, tc.authority, tc.amount)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			}

			from, err := c.Balance(db, owner.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantFrom, from)
			to, err := c.Balance(db, dest)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTo, to)
		})
	}
}

func TestIssueOverflow(t *testing.T) {
	db := store.MemStore()
	c := NewController()
	addr := weavetest.NewCondition().Address()
	require.NoError(t, c.Issue(db, addr, ^uint64(0)))
	err := c.Issue(db, addr, 1)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestSendHandler(t *testing.T) {
	owner := weavetest.NewCondition()
	dest := weavetest.NewCondition().Address()

	db := store.MemStore()
	c := NewController()
	require.NoError(t, c.Issue(db, owner.Address(), 50))

	h := NewSendHandler(&weavetest.Auth{Signer: owner}, c)
	tx := &weavetest.Tx{Msg: &SendMsg{Source: owner.Address(), Destination: dest, Amount: 20}}
	_, err := h.Check(context.Background(), db, tx)
	require.NoError(t, err)
	_, err = h.Deliver(context.Background(), db, tx)
	require.NoError(t, err)

	got, err := c.Balance(db, dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), got)

	unauthorized := NewSendHandler(&weavetest.Auth{Signer: weavetest.NewCondition()}, c)
	_, err = unauthorized.Deliver(context.Background(), db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	invalid := &weavetest.Tx{Msg: &SendMsg{Source: owner.Address(), Destination: dest}}
	_, err = h.Deliver(context.Background(), db, invalid)
	assert.True(t, errors.ErrAmount.Is(err))
}

func TestGenesis(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	raw, err := json.Marshal(map[string]interface{}{
		"cash": []GenesisAccount{{Address: addr, Balance: 1000}},
	})
	require.NoError(t, err)
	var opts royalty.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))
	got, err := NewController().Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), got)
}
