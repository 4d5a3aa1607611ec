// Package catalog holds the static item and container records that every
// render reads from.
//
// A [Catalog] is an immutable snapshot built once at startup with [Load] (or
// [New] in tests) and passed by reference to the renderer. Nothing in the
// render path mutates it, so a single Catalog can be shared by any number of
// concurrent renders.
//
// # Files
//
// [Load] reads a resource directory laid out like this:
//
//	resource/
//	  container_configs.json   map of container key -> Container
//	  armor.json               []Item
//	  bag.json                 []Item
//	  chest.json               []Item
//	  helmet.json              []Item
//	  collection.json          []Item
//
// The item file list is configurable through [Options]. Files ending in
// .yaml or .yml are decoded as YAML with the same field names. A missing or
// malformed item file is logged and skipped; a missing container file is an
// error because nothing can be rendered without it.
package catalog
