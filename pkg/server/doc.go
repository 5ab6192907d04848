// Package server serves the address form. The form's state select lives in a
// region that the country select refreshes; requests carrying a region header
// get only that region back.
package server
