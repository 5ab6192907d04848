// Package frames is a headless navigation host for documents enhanced by
// package behavior. It plays the role a browser plays for the enhanced form:
// it loads pages over HTTP, routes change events to the attached pipelines and
// performs the region scoped navigations requested by activated targets.
//
// A region navigation sends the region id in the FG-Region request header,
// extracts the element with the same id from the response and moves its
// children into the current document. Nothing outside the region changes.
// A newer navigation into the same region cancels the one in flight.
package frames
