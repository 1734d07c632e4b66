// Package appfs embeds the database migrations and email templates.
package appfs

import "embed"

//go:embed migrations/*.sql all:templates
var FS embed.FS
