// Package mkdf holds build metadata for the mkdf scaffolding tool.
package mkdf

// Version is the current release of mkdf.
const Version = "1.1.0"
