// Package behavior implements the two client behaviors that turn a plain
// server-rendered form into a dependent-select form:
//
//   - the scoped query encoder rewrites the address of every target so its
//     query carries exactly one pair, the changed field's name and value;
//   - the trigger relay activates every target, in document order, once per
//     change event.
//
// Both are driven by a Pipeline that snapshots the targets once per event and
// always encodes before it relays. What an activation does is up to the
// Activator supplied by the host (see package frames for a headless one).
//
// Trigger groups are declared in markup:
//
//	<form data-fg-scope>
//	  <select name="country" data-fg-source>...</select>
//	  <a href="/addresses/new" data-fg-target data-fg-frame="address-state" hidden></a>
//	  <button data-fg-fallback formmethod="get" formaction="/addresses/new">Update</button>
//	</form>
package behavior
