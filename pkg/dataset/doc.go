// Package dataset holds the in-memory shape of a Magento configuration dump.
//
// A [Dataset] is an ordered list of scopes. Each scope is identified by a raw scope
// key such as "default_0", "websites_3" or "stores_7", parsed once into a tagged
// [Scope], and maps configuration paths to string values in ascending path order.
//
// Datasets are assembled with a [Builder] and are immutable afterwards, so they can
// be shared freely between goroutines.
package dataset
