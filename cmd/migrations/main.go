package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/form-live/api/internal/config"
	_ "github.com/lib/pq"
)

// Applies schema migrations in lexical order. With -name only the matching
// file runs; the default applies every *.up.sql, with -down switching to the
// *.down.sql set in reverse order.
func main() {
	var name string
	var down bool
	flag.StringVar(&name, "name", "", "run only the migration whose filename contains this string")
	flag.BoolVar(&down, "down", false, "apply down migrations instead of up")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	files, err := migrationFiles(basePath, name, down)
	if err != nil {
		log.Fatal(err)
	}
	if len(files) == 0 {
		log.Fatal("no matching migration files")
	}

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(basePath, file))
		if err != nil {
			log.Fatal(err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("failed to execute %s: %v", file, err)
		}
		fmt.Printf("applied %s\n", file)
	}
}

func migrationFiles(basePath, name string, down bool) ([]string, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	suffix := ".up.sql"
	if down {
		suffix = ".down.sql"
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		if name != "" && !strings.Contains(entry.Name(), name) {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Strings(files)
	if down {
		for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
			files[i], files[j] = files[j], files[i]
		}
	}
	return files, nil
}
