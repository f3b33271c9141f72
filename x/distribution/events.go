package distribution

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/x/track"
)

// RoyaltiesDistributed is published when a pool was paid out.
type RoyaltiesDistributed struct {
	TrackID       string              `json:"track_id"`
	Recipient     royalty.Address     `json:"recipient"`
	RecipientType track.RecipientType `json:"recipient_type"`
	Amount        uint64              `json:"amount"`
	ProtocolFee   uint64              `json:"protocol_fee"`
	Timestamp     royalty.UnixTime    `json:"timestamp"`
}

func (RoyaltiesDistributed) Kind() string { return "RoyaltiesDistributed" }

// BatchDistributionQueued is published for every reserved batch entry.
type BatchDistributionQueued struct {
	TrackID       string              `json:"track_id"`
	Recipient     royalty.Address     `json:"recipient"`
	RecipientType track.RecipientType `json:"recipient_type"`
	Amount        uint64              `json:"amount"`
}

func (BatchDistributionQueued) Kind() string { return "BatchDistributionQueued" }

// AutoDistributionCompleted is published when a sweep moved funds.
type AutoDistributionCompleted struct {
	TrackID     string           `json:"track_id"`
	TotalAmount uint64           `json:"total_amount"`
	Timestamp   royalty.UnixTime `json:"timestamp"`
}

func (AutoDistributionCompleted) Kind() string { return "AutoDistributionCompleted" }
