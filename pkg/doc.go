// Package pkg provides the core libraries for lootgrid loot container rendering.
//
// # Overview
//
// lootgrid opens loot containers: each open randomly selects items allowed
// in the container, weighted by grade, packs them into a square grid with a
// first-fit scan and composes one PNG showing every placed item on a tile
// coloured by its grade. The pkg directory is organized into three areas:
//
//  1. Domain logic ([catalog], [loot], [grid], [compose], [render], [raid])
//  2. Asset plumbing ([assets], [cache], [fonts])
//  3. Ambient support ([config], [errors], [observability], [buildinfo])
//
// # Architecture
//
// The data flow for one open:
//
//	container key
//	     ↓
//	[catalog] lookup (read-only snapshot)
//	     ↓
//	[loot] weighted selection without replacement
//	     ↓
//	[grid] first-fit packing
//	     ↓
//	[assets] remote → local → placeholder
//	     ↓
//	[compose] thumbnails, grid background, header
//	     ↓
//	PNG
//
// # Quick Start
//
//	cat, _ := catalog.Load("resource", catalog.Options{})
//	local := assets.NewLocal("resource")
//	resolver := assets.NewResolver(logger, assets.NewRemote(), local)
//
//	r := render.New(cat, resolver, local, logger, render.Options{Header: true})
//	png, err := r.Render(ctx, "bird_nest", "alice")
//
// # Main Packages
//
// [catalog] - Item and container records loaded from JSON or YAML files in a
// resource directory, with reference validation.
//
// [loot] - Grade-weighted pool expansion and draws that swap-remove one
// occurrence per pick.
//
// [grid] - Occupancy matrix, the side-effect-free fit predicate and the
// row-major first-fit packer. Items that fit nowhere are dropped, not errors.
//
// [assets] - Ordered resolution strategies for item pictures. Remote fetches
// are bounded by a timeout and cached through [cache].
//
// [compose] - Grade palette, overlay-blended cell tiles, aspect-preserving
// thumbnails, the header band and PNG encoding.
//
// [render] - The entrypoint tying everything together. Thumbnails are
// prepared concurrently; composition stays in selection order.
//
// [raid] - The continue/extract dialogue as a pure state machine with an
// injectable clock and seed.
//
// # Testing
//
//	go test ./...                                   # All tests
//	LOOTGRID_REDIS_ADDR=localhost:6379 go test -tags integration ./pkg/cache/...
//
// [catalog]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/catalog
// [loot]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/loot
// [grid]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/grid
// [compose]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/compose
// [render]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/render
// [raid]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/raid
// [assets]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/assets
// [cache]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/cache
// [fonts]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/fonts
// [config]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/lootgrid/pkg/buildinfo
package pkg
