package dataset

import (
	"strconv"
	"strings"
)

// ScopeType identifies the kind of configuration scope a key refers to.
type ScopeType int

const (
	// ScopeTypeUnknown is used for keys that do not follow the <type>_<id> convention.
	ScopeTypeUnknown ScopeType = iota
	// ScopeTypeDefault is the global default scope (default_0).
	ScopeTypeDefault
	// ScopeTypeWebsite is a website scope (websites_<id>).
	ScopeTypeWebsite
	// ScopeTypeStore is a store view scope (stores_<id>).
	ScopeTypeStore
)

// DefaultScopeKey is the key of the global default scope.
const DefaultScopeKey = "default_0"

const (
	websitesPrefix = "websites"
	storesPrefix   = "stores"
)

// String returns the scope type name as used in scope keys.
func (t ScopeType) String() string {
	switch t {
	case ScopeTypeDefault:
		return "default"
	case ScopeTypeWebsite:
		return websitesPrefix
	case ScopeTypeStore:
		return storesPrefix
	case ScopeTypeUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Scope is a parsed scope key.
type Scope struct {
	// Key is the raw key exactly as it appeared in the data source.
	Key string
	// Type is the parsed scope type.
	Type ScopeType
	// ID is the numeric scope id. It is zero for default and unknown scopes.
	ID int64
}

// ParseScope parses a raw scope key. It never fails: keys that cannot be
// interpreted become ScopeTypeUnknown and keep their raw form.
func ParseScope(key string) Scope {
	if key == DefaultScopeKey {
		return Scope{Key: key, Type: ScopeTypeDefault}
	}

	scopeType, rawID, found := strings.Cut(key, "_")
	if !found {
		return Scope{Key: key, Type: ScopeTypeUnknown}
	}

	var parsedType ScopeType

	switch scopeType {
	case websitesPrefix:
		parsedType = ScopeTypeWebsite
	case storesPrefix:
		parsedType = ScopeTypeStore
	default:
		return Scope{Key: key, Type: ScopeTypeUnknown}
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id < 0 {
		return Scope{Key: key, Type: ScopeTypeUnknown}
	}

	return Scope{Key: key, Type: parsedType, ID: id}
}

// Heading returns the human readable heading printed above a scope report.
func (s Scope) Heading() string {
	switch s.Type {
	case ScopeTypeDefault:
		return "Default configuration"
	case ScopeTypeWebsite:
		return "Website #" + strconv.FormatInt(s.ID, 10)
	case ScopeTypeStore:
		return "Store #" + strconv.FormatInt(s.ID, 10)
	case ScopeTypeUnknown:
		return "Scope: " + s.Key
	default:
		return "Scope: " + s.Key
	}
}

// Resolve returns the heading for a raw scope key.
func Resolve(key string) string {
	return ParseScope(key).Heading()
}
