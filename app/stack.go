package app

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/x"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/dispute"
	"github.com/iov-one/royalty/x/distribution"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/sigs"
	"github.com/iov-one/royalty/x/track"
	"github.com/iov-one/royalty/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Routes registers the handlers of every extension.
func Routes(auth x.Authenticator, ctrl cash.Controller) *Router {
	r := NewRouter()
	sigs.RegisterRoutes(r, auth)
	cash.RegisterRoutes(r, auth, ctrl)
	protocol.RegisterRoutes(r, auth)
	track.RegisterRoutes(r, auth)
	distribution.RegisterRoutes(r, auth, ctrl)
	dispute.RegisterRoutes(r, auth)
	return r
}

// Stack returns the handler processing all transactions. Panics are turned
// into errors, every call is logged, signatures are verified and delivered
// changes are isolated in a savepoint.
func Stack(ctrl cash.Controller) royalty.Handler {
	return ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(Routes(sigs.Authenticate{}, ctrl))
}

// Initializers returns the genesis initializers of every extension.
func Initializers(ctrl cash.Controller) royalty.Initializer {
	return royalty.ChainInitializers(
		cash.Initializer{Control: ctrl},
		protocol.Initializer{},
		track.Initializer{},
	)
}

// NewRoyaltyApp returns an application with all extensions wired, the
// scheduled distribution ticker included.
func NewRoyaltyApp(store royalty.CommitKVStore, logger log.Logger) (*Application, error) {
	ctrl := cash.NewController()
	return NewApplication(store, Stack(ctrl), distribution.NewTicker(), Initializers(ctrl), logger)
}
