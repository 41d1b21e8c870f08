// Command dbinspect dumps a read-only summary of a Takibi database.
//
// Usage:
//
//	DB_PATH=~/takibi/data/db go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/takibiapp/takibi-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/takibi/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	if err := inspectInstance(db); err != nil {
		log.Printf("Error reading instance: %v", err)
	}

	checklists, items, checked := 0, 0, 0
	forEach(db, "checklist:", func(c *domain.Checklist) {
		checklists++
		done, total := c.Progress()
		checked += done
		items += total
		if checklists <= 5 {
			fmt.Printf("Checklist: %s\n", c.Name)
			fmt.Printf("  ID: %s\n", c.ID)
			fmt.Printf("  Progress: %d/%d\n", done, total)
			fmt.Println()
		}
	})

	templates, systemTemplates := 0, 0
	forEach(db, "template:", func(t *domain.Template) {
		templates++
		if t.IsSystem {
			systemTemplates++
		}
	})

	categories := 0
	forEach(db, "category:", func(c *domain.Category) {
		categories++
	})

	recipes := 0
	forEach(db, "recipe:", func(r *domain.SavedRecipe) {
		recipes++
		if recipes <= 5 {
			fmt.Printf("Saved recipe: %s\n", r.Recipe.Name)
			fmt.Printf("  ID: %s\n", r.ID)
			fmt.Printf("  Servings: %d, Ingredients: %d\n", r.Recipe.Servings, len(r.Recipe.Ingredients))
			fmt.Println()
		}
	})

	fmt.Println("=== Summary ===")
	fmt.Printf("Checklists: %d (%d/%d items checked)\n", checklists, checked, items)
	fmt.Printf("Templates: %d (%d system)\n", templates, systemTemplates)
	fmt.Printf("Categories: %d\n", categories)
	fmt.Printf("Saved recipes: %d\n", recipes)
}

// inspectInstance prints the singleton server record, if present.
func inspectInstance(db *badger.DB) error {
	return db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("server:config"))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				fmt.Println("No server instance record (fresh database)")
				fmt.Println()
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var instance domain.Instance
			if err := json.Unmarshal(val, &instance); err != nil {
				return err
			}
			fmt.Printf("Instance: %s (%s) version %s\n", instance.Name, instance.ID, instance.Version)
			fmt.Println()
			return nil
		})
	})
}

// forEach decodes every data record under prefix, skipping index keys.
func forEach[T any](db *badger.DB, prefix string, fn func(*T)) {
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			key := string(item.Key())

			if strings.Contains(key, ":idx:") {
				continue
			}

			err := item.Value(func(val []byte) error {
				var entity T
				if err := json.Unmarshal(val, &entity); err != nil {
					return err
				}
				fn(&entity)
				return nil
			})
			if err != nil {
				log.Printf("Error reading %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error iterating %s: %v", prefix, err)
	}
}
