package database

import (
	"fmt"
	"net/url"
)

// PostgresDSN builds a connection string from discrete settings.
func PostgresDSN(host, port, user, password, dbname string) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname,
	)
}

// SQLiteDSN enables foreign keys on a SQLite file or memory database.
func SQLiteDSN(path string) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", "5000")
	return "file:" + path + "?" + q.Encode()
}
