// Package index builds and serves the filename→directory lookup used to
// resolve bare source file arguments to absolute paths.
//
// The index is populated concurrently by the walker's consumer goroutines
// during phase one and is read-only during phase two. Contention is limited
// to colliding keys by sharding the map and locking per shard rather than
// globally.
package index

import (
	"hash/fnv"
	"path/filepath"
	"sync"
)

// shardCount is a power of two so shard selection reduces to a mask.
const shardCount = 64

// indexedPath is the value variant for one distinct lower-cased file name:
// either the unique parent directory it was seen under, or ambiguous once a
// second distinct parent shows up. Ambiguity is binary and monotonic; the
// conflicting parents are discarded, not listed.
type indexedPath struct {
	parent    string
	ambiguous bool
}

type indexShard struct {
	mu      sync.RWMutex
	entries map[string]indexedPath
}

// FileIndex is a concurrent mapping from lower-cased file name to its unique
// parent directory. Insertion is commutative: two distinct parents for the
// same name always end in the ambiguous state regardless of discovery order.
type FileIndex struct {
	shards [shardCount]*indexShard
}

// NewFileIndex creates an empty index.
func NewFileIndex() *FileIndex {
	idx := &FileIndex{}
	for i := range idx.shards {
		idx.shards[i] = &indexShard{entries: make(map[string]indexedPath)}
	}
	return idx
}

func (x *FileIndex) shard(fileName string) *indexShard {
	h := fnv.New32a()
	h.Write([]byte(fileName))
	return x.shards[h.Sum32()&(shardCount-1)]
}

// Insert records fileName under parent. A second sighting under a different
// parent degrades the entry to ambiguous; re-inserting the same parent is a
// no-op. The check and the write happen under the shard lock so concurrent
// inserters cannot race the entry back to unique.
func (x *FileIndex) Insert(fileName, parent string) {
	s := x.shard(fileName)
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[fileName]
	switch {
	case !ok:
		s.entries[fileName] = indexedPath{parent: parent}
	case entry.ambiguous:
		// Once ambiguous, never back.
	case entry.parent != parent:
		s.entries[fileName] = indexedPath{ambiguous: true}
	}
}

// AddPath splits an already-normalized absolute file path into its file name
// and parent directory and inserts the pair. Paths without both components
// are ignored.
func (x *FileIndex) AddPath(path string) {
	fileName := filepath.Base(path)
	parent := filepath.Dir(path)
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return
	}
	if parent == "" || parent == "." {
		return
	}
	x.Insert(fileName, parent)
}

// Lookup returns the unique parent directory recorded for fileName.
// Ambiguous entries and absent names both report no usable directory.
func (x *FileIndex) Lookup(fileName string) (string, bool) {
	s := x.shard(fileName)
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[fileName]
	if !ok || entry.ambiguous {
		return "", false
	}
	return entry.parent, true
}

// Ambiguous reports whether fileName was seen under more than one parent.
func (x *FileIndex) Ambiguous(fileName string) bool {
	s := x.shard(fileName)
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[fileName]
	return ok && entry.ambiguous
}

// Len returns the number of distinct file names in the index.
func (x *FileIndex) Len() int {
	total := 0
	for _, s := range x.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}
