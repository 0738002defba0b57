package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

// NextID generates a fresh collision-checked id. Prefixes keep ids readable:
// task-xxx, sec-xxx, blk-xxx.
func (s Store) NextID(db *DB, prefix string) string {
	for i := 0; i < 10; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			break
		}
		if !idExists(db, id) {
			return id
		}
	}
	// crypto/rand failure or repeated collisions: fall back to a counter so id
	// generation never blocks a command.
	for n := 1; ; n++ {
		id := fmt.Sprintf("%s-%d", prefix, n)
		if !idExists(db, id) {
			return id
		}
	}
}

func idExists(db *DB, id string) bool {
	for _, b := range db.Blocks {
		if b.ID == id {
			return true
		}
	}
	for _, s := range db.Sections {
		if s.ID == id {
			return true
		}
	}
	for _, t := range db.Tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
