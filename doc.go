/*
Package royalty defines all common interfaces used to weave together the
royalty accounting engine: storage, context, handlers, messages, events and
the identity primitives (conditions and addresses).

We pass context through context.Context between the application, decorators
and handlers. To do so, this package defines some common keys to store info,
such as block time and chain id. Each extension may add its own keys to enrich
the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level modules
overwriting the value (eg. block time).

Domain functionality is implemented by extensions living in the x directory:

  x/protocol      protocol registry (authority, fee, aggregate counters)
  x/track         tracks, royalty pools and streaming revenue accrual
  x/distribution  releasing pending pool balances
  x/dispute       dispute workflow adjusting live pools
  x/cash          reference custody ledger used for payouts
*/
package royalty
