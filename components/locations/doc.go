// Package locations provides the country options behind the entry form: an
// embedded country list, search helpers, an in-process Source with simulated
// latency, and a small net/http handler returning JSON options.
//
// The default handler responds to GET and HEAD requests and supports query and
// limit parameters to filter results. With no query it returns the leading
// entries in file order, so the first option is the form default.
package locations
