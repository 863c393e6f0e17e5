// Package version reports the running application's version and compares
// version strings.
//
// A Provider answers "which version is installed". A Comparator orders two
// version strings; NumericComparator handles dotted numbers such as "1.10.2",
// BuildComparator adds an optional build number ("1.2.3-45") and
// SemverComparator follows Semantic Versioning, pre-release tags included.
package version
