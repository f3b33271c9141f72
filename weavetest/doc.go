// Package weavetest provides mocks and helpers shared by the test suites of
// all royalty extensions.
package weavetest
