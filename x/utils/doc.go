// Package utils holds the decorators shared by every message route: panic
// recovery, structured logging and savepoint isolation.
package utils
