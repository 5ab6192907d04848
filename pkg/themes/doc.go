// Package themes resolves go-theme manifests into the values the page shell
// needs: CSS variables derived from tokens and asset URLs.
package themes
