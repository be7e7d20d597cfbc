// Package persistence keeps the discovery inbox across restarts.
//
// The inbox is written as JSON on shutdown and after every scan round, and
// read back before the first scan so results stay visible while bridges are
// rescanned. Results that are not rediscovered age out through the normal
// RemoveOlderResults path.
package persistence
