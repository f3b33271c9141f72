/*
Package distribution implements the distribution engine of the royalty
engine.

Pending pool balances leave a track in one of three ways:

  DistributeMsg pays the whole pending balance of one pool to a recipient.
  The protocol fee is deducted and the rest is transferred out of the track
  vault before any counter is updated.

  BatchDistributeMsg is the first phase of a two phase payout. It only
  reserves pending balance for every listed recipient and publishes a
  BatchDistributionQueued event. Entries that are not covered by the pool
  are skipped without an error. Executing the queued transfers is left to
  the consumer of the events.

  AutoDistributeMsg sweeps all pending balances into distributed without a
  fee and without a transfer. It is allowed once per cooldown period. The
  Ticker applies the same sweep to every eligible track on each block.
*/
package distribution
