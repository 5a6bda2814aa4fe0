package postgres

import (
	"github.com/Masterminds/squirrel"
)

// Builder is a squirrel statement builder preconfigured with PostgreSQL
// dollar placeholders. Entity repositories build all their queries from it.
var Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
