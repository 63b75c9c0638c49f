// Package pipeline coordinates the two-phase conversion of an MSBuild log
// into compilation database records.
//
// Phase one indexes the source tree: one walker producer distributes
// directories across worker goroutines, whose discovered file paths are
// inserted into the shared file index by a second group of workers. Phase
// two processes the log: a scanner, a tokenizer, and a resolver run as
// single-purpose goroutines connected by channels, so stages overlap in
// time. The only mutable state shared between stages is the channels
// themselves and the read-only file index. Each phase drains a dedicated
// error channel into an ordered list; one malformed line or unresolvable
// file never aborts the run.
package pipeline

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/conneroisu/ms2cc/internal/errors"
	"github.com/conneroisu/ms2cc/internal/index"
	"github.com/conneroisu/ms2cc/internal/logging"
	"github.com/conneroisu/ms2cc/internal/logscan"
	"github.com/conneroisu/ms2cc/internal/resolve"
	"github.com/conneroisu/ms2cc/internal/tokenize"
	"github.com/conneroisu/ms2cc/internal/types"
)

// channelBuffer sizes the inter-stage channels. Stages tolerate arbitrary
// skew; the buffer just reduces handoff stalls.
const channelBuffer = 256

// Config carries everything the coordinator needs for both phases.
type Config struct {
	SourceDirectory    string
	ExcludeDirectories []string
	FileExtensions     []string
	CompilerExecutable string
	LogPath            string
	LogReader          io.Reader
	MaxThreads         int
	// Logger receives phase summaries and collected-error counts. A nil
	// logger discards them.
	Logger logging.Logger
}

// Coordinator executes the filesystem indexing and log processing phases.
// The log reader can be consumed only once, so GenerateCompileCommands must
// follow BuildLookupTree and may run at most once.
type Coordinator struct {
	config    Config
	logger    logging.Logger
	logReader io.Reader
}

// LookupResult is the outcome of the filesystem indexing phase.
type LookupResult struct {
	Index    *index.FileIndex
	Duration time.Duration
	Errors   []error
}

// DatabaseResult is the outcome of the compile command generation phase.
type DatabaseResult struct {
	Commands []types.CompileCommand
	Duration time.Duration
	Errors   []error
}

// New creates a coordinator. The reader in config transfers ownership to the
// coordinator.
func New(config Config) *Coordinator {
	reader := config.LogReader
	config.LogReader = nil
	logger := config.Logger
	config.Logger = nil
	if logger == nil {
		logger = logging.Nop()
	}
	if config.MaxThreads < 1 {
		config.MaxThreads = 1
	}
	return &Coordinator{config: config, logger: logger, logReader: reader}
}

// BuildLookupTree runs phase one: walk the source tree and populate the
// filename→directory index. The returned index is immutable afterward.
func (c *Coordinator) BuildLookupTree() LookupResult {
	start := time.Now()

	collector := errors.NewCollector()
	errCh := make(chan error, channelBuffer)
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		collector.Drain(errCh)
	}()

	root := c.config.SourceDirectory
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	idx := index.NewFileIndex()
	paths := make(chan string, channelBuffer)

	var walkerWg sync.WaitGroup
	walkerWg.Add(1)
	go func() {
		defer walkerWg.Done()
		walker := index.NewWalker(
			root,
			c.config.ExcludeDirectories,
			c.config.FileExtensions,
			c.config.MaxThreads,
		)
		walker.Walk(paths, errCh)
		close(paths)
	}()

	var insertWg sync.WaitGroup
	for i := 0; i < c.config.MaxThreads; i++ {
		insertWg.Add(1)
		go func() {
			defer insertWg.Done()
			for path := range paths {
				idx.AddPath(path)
			}
		}()
	}

	walkerWg.Wait()
	insertWg.Wait()
	close(errCh)
	collectorWg.Wait()

	duration := time.Since(start)
	ctx := context.Background()
	if collector.HasErrors() {
		c.logger.Warn(ctx, nil, "lookup tree built with errors",
			"errors", collector.Len())
	}
	c.logger.Info(ctx, "lookup tree built",
		"files", idx.Len(),
		"duration", duration)

	return LookupResult{
		Index:    idx,
		Duration: duration,
		Errors:   collector.Errors(),
	}
}

// GenerateCompileCommands runs phase two against the completed index. It
// consumes the log reader; calling it twice is a programming error.
func (c *Coordinator) GenerateCompileCommands(idx *index.FileIndex) DatabaseResult {
	reader := c.logReader
	if reader == nil {
		panic("pipeline: log reader already consumed")
	}
	c.logReader = nil

	start := time.Now()

	collector := errors.NewCollector()
	errCh := make(chan error, channelBuffer)
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		collector.Drain(errCh)
	}()

	lines := make(chan string, channelBuffer)
	tokens := make(chan []string, channelBuffer)
	commands := make(chan types.CompileCommand, channelBuffer)

	// Stage: log scanning. Reassembles wrapped invocations into logical
	// command strings.
	go func() {
		defer close(lines)
		scanner := logscan.NewScanner(
			reader,
			c.config.LogPath,
			c.config.CompilerExecutable,
			c.config.FileExtensions,
		)
		for {
			command, err := scanner.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- err
				continue
			}
			lines <- command
		}
	}()

	// Stage: tokenization.
	go func() {
		defer close(tokens)
		for line := range lines {
			tokens <- tokenize.Split(line)
		}
	}()

	// Stage: resolution. Per token vector, outcomes keep argument order.
	go func() {
		defer close(commands)
		resolver := resolve.NewResolver(idx)
		for vector := range tokens {
			for _, outcome := range resolver.Resolve(vector) {
				if outcome.Err != nil {
					errCh <- outcome.Err
					continue
				}
				commands <- *outcome.Command
			}
		}
	}()

	collected := make([]types.CompileCommand, 0, channelBuffer)
	for command := range commands {
		collected = append(collected, command)
	}

	close(errCh)
	collectorWg.Wait()

	duration := time.Since(start)
	ctx := context.Background()
	if collector.HasErrors() {
		c.logger.Warn(ctx, nil, "database generated with errors",
			"errors", collector.Len())
	}
	c.logger.Info(ctx, "database generated",
		"commands", len(collected),
		"duration", duration)

	return DatabaseResult{
		Commands: collected,
		Duration: duration,
		Errors:   collector.Errors(),
	}
}
