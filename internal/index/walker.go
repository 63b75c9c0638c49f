package index

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/conneroisu/ms2cc/internal/errors"
	"github.com/conneroisu/ms2cc/internal/pathutil"
)

// Walker traverses a source directory tree in parallel and emits normalized
// (lower-cased) absolute paths of files whose extension is allowed and which
// are not under an excluded directory at any ancestor level.
//
// Subtree traversal is distributed across a fixed number of worker
// goroutines sharing a queue of pending directories. Per-directory read
// failures are reported and do not halt traversal of sibling subtrees.
type Walker struct {
	root       string
	excluded   map[string]struct{}
	extensions *pathutil.ExtensionSet
	workers    int
}

// NewWalker builds a walker rooted at root. Excluded directory names and
// allowed extensions are matched case-insensitively; workers must be
// positive.
func NewWalker(root string, excludeDirectories, fileExtensions []string, workers int) *Walker {
	excluded := make(map[string]struct{}, len(excludeDirectories))
	for _, name := range excludeDirectories {
		excluded[strings.ToLower(name)] = struct{}{}
	}
	if workers < 1 {
		workers = 1
	}
	return &Walker{
		root:       root,
		excluded:   excluded,
		extensions: pathutil.NewExtensionSet(fileExtensions),
		workers:    workers,
	}
}

// Walk runs the traversal, sending file paths on paths and structured errors
// on errs. It blocks until the whole tree has been visited. The caller owns
// both channels and closes them after Walk returns.
func (w *Walker) Walk(paths chan<- string, errs chan<- error) {
	queue := newDirQueue()
	queue.push(w.root)

	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				dir, ok := queue.pop()
				if !ok {
					return
				}
				w.readDirectory(dir, queue, paths, errs)
				queue.done()
			}
		}()
	}
	wg.Wait()
}

func (w *Walker) readDirectory(dir string, queue *dirQueue, paths chan<- string, errs chan<- error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		errs <- errors.IoError(err, dir)
		return
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			if w.skipDirectory(entry.Name()) {
				continue
			}
			queue.push(full)
		case entry.Type().IsRegular():
			if !w.extensions.Allows(entry.Name()) {
				continue
			}
			normalized, err := pathutil.Normalize(full)
			if err != nil {
				errs <- err
				continue
			}
			paths <- normalized
		default:
			// Symlinks, devices, sockets: nothing we can index.
			errs <- errors.UnexpectedEntry(full)
		}
	}
}

func (w *Walker) skipDirectory(name string) bool {
	_, ok := w.excluded[strings.ToLower(name)]
	return ok
}

// dirQueue is an unbounded work queue of pending directories. outstanding
// counts directories that are queued or currently being read; workers exit
// once the queue is empty and nothing is in flight.
type dirQueue struct {
	mu          sync.Mutex
	cond        *sync.Cond
	items       []string
	outstanding int
}

func newDirQueue() *dirQueue {
	q := &dirQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *dirQueue) push(dir string) {
	q.mu.Lock()
	q.items = append(q.items, dir)
	q.outstanding++
	q.mu.Unlock()
	q.cond.Signal()
}

// pop blocks until a directory is available or the traversal has drained.
// The second return value is false only when no work remains.
func (q *dirQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && q.outstanding > 0 {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return "", false
	}
	dir := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return dir, true
}

// done marks one directory as fully read. When the last one finishes, all
// waiting workers are released so they can observe the drained queue.
func (q *dirQueue) done() {
	q.mu.Lock()
	q.outstanding--
	drained := q.outstanding == 0
	q.mu.Unlock()
	if drained {
		q.cond.Broadcast()
	}
}
