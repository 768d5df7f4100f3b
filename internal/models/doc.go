// Package models defines the domain types shared by the engine, the
// storage layer and the HTTP handlers.
package models
