// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Observed bright-star mode with solar glare, PNG export, JSON frame snapshots
// 0.2.0 - Plain-text catalogs, TOML config, fly-to bright stars in the viewer
// 0.1.0 - Initial release: tiled culling, flood fill, terminal canvas, headless summary
