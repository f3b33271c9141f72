/*
Package dispute implements the dispute workflow of the royalty engine.

Anyone can open a dispute against an existing track. The protocol
authority resolves an open dispute by applying exactly one Resolution to
the live pools of the referenced track. Resolved disputes never change
again. The UnderReview and Rejected states exist but no message moves a
dispute into them.
*/
package dispute
