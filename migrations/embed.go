package migrations

import "embed"

// FS holds the SQL migrations for every supported backend, one directory each.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
