package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so the CLI can tell configuration problems
// apart from remote ones.
var (
	ErrTagConfig    = goerr.NewTag("config")
	ErrTagCollision = goerr.NewTag("collision")
	ErrTagTransport = goerr.NewTag("transport")
	ErrTagAsset     = goerr.NewTag("asset")
)
