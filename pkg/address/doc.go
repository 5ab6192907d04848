// Package address holds the postal address record edited by the demo form,
// its validation against the country/subdivision reference data, and a
// small in-memory store.
package address
