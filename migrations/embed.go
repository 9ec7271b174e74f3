// Package migrations carries the SQL schema migrations, embedded so the
// server binary can apply them at startup without a deploy-time asset.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
