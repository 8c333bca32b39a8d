package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent battle operations. Using a centralized singleflight.Group
// ensures that only one resolution runs for a given key while other
// callers wait for the result.

import "golang.org/x/sync/singleflight"

// TurnGroup deduplicates turn-resolution triggers keyed by the battle's
// public id, so two participants submitting the final action at once still
// observe a single resolved turn.
var TurnGroup singleflight.Group

// JoinGroup deduplicates PvP join attempts keyed by challenge code, so a
// shared code accepted twice concurrently seats only one opponent.
var JoinGroup singleflight.Group
