// Package dom is a small document model over golang.org/x/net/html used by the
// behavior core and the headless navigation host.
//
// Elements wrap *html.Node values. Lookups take CSS selectors (parsed with
// cascadia) and always return snapshots in document order, never live
// collections, so callers can iterate while the tree is being modified.
package dom
