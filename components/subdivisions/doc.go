// Package subdivisions provides a small embedded sample of countries and their
// first-level subdivisions (states, provinces, territories), search helpers,
// and net/http handlers returning JSON options for dependent select inputs.
//
// Countries and subdivisions are ordered by display name. A country without
// subdivisions yields an empty, valid option set. The backing data is loaded
// from data/subdivisions.yaml.
package subdivisions
