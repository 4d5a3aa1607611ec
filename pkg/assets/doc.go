// Package assets turns item image references into decoded images.
//
// A reference is either an absolute http(s) URL or a path relative to the
// resource root. Resolution is an ordered list of [Strategy] values tried in
// sequence by a [Resolver]:
//
//  1. [Remote] fetches URLs over HTTP, with a per-request timeout and an
//     optional byte cache.
//  2. [Local] reads files under the resource root. For a URL it looks for a
//     local mirror named after the last path segment.
//
// Each strategy returns either bytes or a coded error from pkg/errors. The
// resolver logs and reports every failure, then moves on; when nothing is
// left it reports [ErrExhausted] and the caller substitutes a placeholder.
// Nothing in this package retries.
package assets
