// Package assets provides the print stylesheet and the bundled documentation
// link lists.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (bundled assets)
//	    ├── FilesystemLoader  - loads from a directory on disk
//	    └── AssetResolver     - combines both with disk-first fallback
//
// AssetResolver is what the CLI uses: a link list refreshed by the extract
// command (links/svelte.yaml in the working directory) takes precedence over
// the copy compiled into the binary.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css      # print stylesheet (e.g., print.css)
//	└── links/
//	    └── {name}.yaml     # link list (e.g., svelte.yaml)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
