// Package normalize canonicalizes user-supplied field values before they are
// validated or persisted, so lookups and uniqueness checks see one spelling.
package normalize

import "strings"

// Tag trims an asset tag. Case is preserved: tags are issued by the
// organization and compared exactly.
func Tag(s string) string {
	return strings.TrimSpace(s)
}

// Serial trims and upper-cases a serial number. Manufacturers print serials
// in varying case; uppercasing keeps the unique index honest.
func Serial(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Text trims free-form text fields (names, brands, locations).
func Text(s string) string {
	return strings.TrimSpace(s)
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// VendorStatus canonicalizes a vendor status to lowercase.
func VendorStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
