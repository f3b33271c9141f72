package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Genesis is the initial state of the application. AppState holds one
// section per extension, each read by that extension's initializer.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState royalty.Options `json:"app_state"`
}

// Validate ensures the genesis can be used to initialize the application.
func (g Genesis) Validate() error {
	if !royalty.IsValidChainID(g.ChainID) {
		return errors.Field("ChainID", errors.ErrInput, "invalid chain id %q", g.ChainID)
	}
	return nil
}

// LoadGenesis reads a genesis file in JSON format.
func LoadGenesis(filePath string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshal genesis file: %s", err)
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}
	return &gen, nil
}

// SaveGenesis writes the genesis in JSON format to given path.
func SaveGenesis(filePath string, gen *Genesis) error {
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(filePath, raw, 0600); err != nil {
		return errors.Wrapf(errors.ErrInput, "write genesis file: %s", err)
	}
	return nil
}
