/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

Every signer has a user record keyed by its address. The record keeps the
public key and a sequence that must be provided with each signature.
*/
package sigs
