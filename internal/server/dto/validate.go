// Defines the validation interface for requests.

package dto

import "regexp"

// Validatable is implemented by request types that can validate their fields.
// The Wrap function in handler_wrapper.go uses this interface as a type
// constraint to ensure all request types provide validation.
type Validatable interface {
	Validate() error
}

// idPattern restricts identifiers at the API boundary. The stores treat
// identifiers as opaque path segments, so the boundary must guarantee they
// contain no separators or traversal sequences. Server-generated identifiers
// always satisfy this.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateID checks a path identifier against the allowed character set.
func ValidateID(fieldName, value string) error {
	if value == "" {
		return MissingField(fieldName)
	}
	if !idPattern.MatchString(value) {
		return InvalidFormat(fieldName, "1-64 characters from [A-Za-z0-9_-]")
	}
	return nil
}
