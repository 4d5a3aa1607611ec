// Package render opens loot containers.
//
// [Renderer.Open] is the single entrypoint that ties the other packages
// together for one "open" event:
//
//	container lookup (catalog) → weighted selection (loot)
//	    → first-fit packing (grid) → asset resolution (assets)
//	    → composition (compose) → PNG
//
// A Renderer holds only read-only collaborators: the catalog snapshot, the
// asset resolver and the resource root. Every call creates its own RNG,
// occupancy grid and canvas, so one Renderer can serve concurrent calls.
//
// # Failures
//
// An unknown container key is the only failure that stops a render, and it
// is reported before any image work as a pkg/errors UNKNOWN_CONTAINER error.
// Missing images become placeholders and items that do not fit are dropped;
// both are logged and reported to observability hooks, never returned.
//
// # Usage
//
//	r := render.New(cat, resolver, assets.NewLocal(dir), logger, render.Options{})
//	png, err := r.Render(ctx, "bird_nest", "alice")
package render
