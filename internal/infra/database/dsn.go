package database

import (
	"fmt"

	"go-todo/pkg/resource"
)

// DSN builds a PostgreSQL connection string from the app.db properties
func DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s",
		resource.GetString("app.db.host"),
		resource.GetString("app.db.port"),
		resource.GetString("app.db.username"),
		resource.GetString("app.db.password"),
		resource.GetString("app.db.database"),
		resource.GetString("app.db.schema"),
	)
}
