package appfs

import "embed"

// FS holds the database migrations, one directory per engine.
//go:embed migrations
var FS embed.FS
