/*
Package x contains the extensions of the royalty engine.

Extensions implement common functionality (Handler, Decorator,
Ticker, etc.) and are combined together by the app package to
construct the engine.

Extensions never hard-code how a signer is authenticated. Every
handler receives an Authenticator and asks it which conditions
are fulfilled in the current context.
*/
package x
