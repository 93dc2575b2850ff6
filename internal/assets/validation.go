package assets

import (
	"fmt"
	"regexp"
)

// maxAssetNameLength bounds names like "print" or "sveltekit".
const maxAssetNameLength = 64

// assetNamePattern accepts a letter or digit followed by letters, digits,
// hyphens and underscores. Separators and dots can never reach a path.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName checks that name can be joined to a directory and given
// an extension (.css, .yaml) without leaving that directory.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > maxAssetNameLength:
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidAssetName, len(name), maxAssetNameLength)
	case !assetNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
