/*
Package protocol implements the protocol registry of the royalty engine.

The registry is a single configuration record holding the authority that
gates privileged operations, the fee deducted from every distribution and
the counters aggregated across all tracks. It is stored with gconf and can
be created either from the genesis file or with InitializeMsg.

Funds of every track are kept in a vault holding whose address is derived
from the track ID. Only the engine can produce the vault condition, so no
key can ever move funds out of a vault.
*/
package protocol
