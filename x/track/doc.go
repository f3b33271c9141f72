/*
Package track implements the track ledger of the royalty engine.

A track converts reported streams into revenue. Revenue is adjusted by a
performance boost derived from the lifetime average of daily streams and
split between four royalty pools: artist, producer, label and platform.
Each pool keeps the amount that was already distributed and the amount
that is still pending.

Pools are only ever mutated through Track methods. Every method either
applies all of its changes or returns an error and leaves the track
untouched.
*/
package track
