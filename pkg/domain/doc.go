/*
Package domain holds the sentinel errors shared by the runeport stores, the engine facade
and the HTTP adapter. It has no dependencies so that adapters can match errors with
errors.Is without importing each other.
*/
package domain
