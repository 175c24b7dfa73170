package gct

import (
	"database/sql"
	"fmt"

	"github.com/bodgit/gct/texture"
	_ "github.com/mattn/go-sqlite3" // register sqlite3 driver
)

// Cache stores encoded block streams keyed by the SHA1 of the source image
// and the dimensions it was encoded at.
type Cache struct {
	db *sql.DB
}

// NewCache opens or creates the cache database in file.
func NewCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS texture (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, blocks BLOB NOT NULL, UNIQUE(sha1, width, height))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Find returns the blocks for the image, or nil if they are not cached
func (c *Cache) Find(sha string, width, height int) (*texture.Blocks, error) {
	var blocks []byte
	switch err := c.db.QueryRow("SELECT blocks FROM texture WHERE sha1 = ? AND width = ? AND height = ?", sha, width, height).Scan(&blocks); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		if len(blocks) != texture.StreamSize(width, height) {
			return nil, nil
		}
		return &texture.Blocks{
			Width:  width,
			Height: height,
			Data:   blocks,
		}, nil
	default:
		return nil, err
	}
}

// Add stores the blocks for the image, replacing any existing entry
func (c *Cache) Add(sha string, b *texture.Blocks) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO texture (sha1, width, height, blocks) VALUES (?, ?, ?, ?)", sha, b.Width, b.Height, b.Data); err != nil {
		return err
	}
	return nil
}

// Length returns the number of cached textures
func (c *Cache) Length() (int, error) {
	var n int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM texture").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
