package protocol

import "github.com/iov-one/royalty"

// ProtocolInitialized is published when the registry is created.
type ProtocolInitialized struct {
	Authority     royalty.Address  `json:"authority"`
	FeePercentage uint64           `json:"fee_percentage"`
	Timestamp     royalty.UnixTime `json:"timestamp"`
}

func (ProtocolInitialized) Kind() string { return "ProtocolInitialized" }

// FeeUpdated is published when the authority changes the protocol fee.
type FeeUpdated struct {
	OldFeePercentage uint64           `json:"old_fee_percentage"`
	NewFeePercentage uint64           `json:"new_fee_percentage"`
	Timestamp        royalty.UnixTime `json:"timestamp"`
}

func (FeeUpdated) Kind() string { return "FeeUpdated" }
