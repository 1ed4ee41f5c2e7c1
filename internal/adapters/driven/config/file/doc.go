// Package file reads and writes deckroute's on-disk formats: the TOML
// settings file behind ConfigStore, and strawman documents in JSON or
// TOML (LoadStrawman, DecodeStrawman, WriteStrawman).
package file
