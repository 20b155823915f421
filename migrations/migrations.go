// Package migrations embeds the PostgreSQL schema migrations applied by cmd/migrate.
package migrations

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.sql
var files embed.FS

// FS exposes the embedded migration files.
func FS() fs.FS { return files }

// Up returns the names of the .up.sql files in apply order.
func Up() ([]string, error) {
	return list(".up.sql", false)
}

// Down returns the names of the .down.sql files in reverse apply order.
func Down() ([]string, error) {
	return list(".down.sql", true)
}

func list(suffix string, reverse bool) ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	}
	return names, nil
}

// Name strips the direction suffix: "001_x.up.sql" becomes "001_x".
func Name(file string) string {
	file = strings.TrimSuffix(file, ".up.sql")
	return strings.TrimSuffix(file, ".down.sql")
}
