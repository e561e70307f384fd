// Package board builds Royal Game of Ur boards from embedded layout files and
// turns them into starting snapshots for the rules engine.
package board

import "embed"

// layoutFS embeds every board layout shipped with the game.
//
//go:embed layouts/*.json
var layoutFS embed.FS
