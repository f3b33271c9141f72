/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension owns a single configuration record stored under "_c:<pkg>".
The record is initialized from the "conf" section of the genesis file and
can be replaced at runtime by the extension's own handlers.
*/
package gconf
