/*
Package cash is the reference custody ledger used by the royalty engine.

Every holding is a single unsigned balance keyed by address. The
distribution engine never inspects holdings: it only calls Transfer,
which moves value atomically from one holding to another or fails
without any state change. Only the owner of the source holding, proven
by presenting the condition the source address is derived from, can
move funds out of it.
*/
package cash
