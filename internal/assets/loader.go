package assets

// AssetLoader defines the contract for loading print styles and link lists.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadLinks loads a YAML link list by source name (without .yaml extension).
	// Returns ErrLinksNotFound if the list doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadLinks(name string) ([]byte, error)
}

// DefaultStyleName is the name of the built-in print stylesheet.
const DefaultStyleName = "print"

// Source names of the bundled link lists.
const (
	SvelteLinks    = "svelte"
	SvelteKitLinks = "sveltekit"
)
