// Package cracker drives concurrent dictionary attacks against signed
// session cookies. A fixed pool of workers pulls chunks of candidate
// secrets from a shared stream, verifies each against the target
// cookie and stops cooperatively on the first match, on exhaustion,
// or on a fault.
package cracker

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/paradoxis/flask-unsign/pkg/logger"
	"github.com/paradoxis/flask-unsign/pkg/session"
)

const (
	// DefaultThreads is the worker count used when none is configured.
	DefaultThreads = 8

	// DefaultChunkSize is the number of candidates a worker pulls per
	// critical-section acquisition. Larger chunks amortize lock
	// contention against per-candidate HMAC cost; smaller chunks keep
	// cancellation and progress reporting responsive.
	DefaultChunkSize = 128
)

// Source is a producible-once stream of candidate secrets. Next
// returns io.EOF when the stream is exhausted and ErrSourceClosed
// when the underlying resource was torn down concurrently. The
// cracker serializes all Next calls behind one lock.
type Source interface {
	Next() ([]byte, error)
}

// Progress receives purely observational attempt notifications after
// each finished batch: the cumulative candidate count and the most
// recently tested candidate. It never affects correctness.
type Progress interface {
	Attempted(total uint64, latest []byte)
}

// Options configures a Cracker. Zero values fall back to defaults.
type Options struct {
	// Salt namespaces the signature; the framework default applies
	// when empty.
	Salt string

	// Legacy marks the target cookie as minted by a pre-fix signer.
	// Signature verification is timestamp-mode independent, so the
	// flag is informational for the run report.
	Legacy bool

	Threads   int
	ChunkSize int

	Logger   logger.Logger
	Progress Progress
}

// Cracker coordinates one crack run. The shared mutable state is the
// source cursor and result slot (mutex), the attempt counter and the
// cancellation flag (atomics); the cookie and salt are read-only for
// the run's duration.
type Cracker struct {
	verifier  *session.Verifier
	legacy    bool
	threads   int
	chunkSize int
	log       logger.Logger
	progress  Progress

	mu      sync.Mutex // serializes source pulls, guards result slot
	src     Source
	drained bool
	secret  []byte
	found   bool

	attempts  atomic.Uint64
	cancelled atomic.Bool
	aborted   atomic.Bool

	faultOnce sync.Once
	fault     *Fault
}

// New prepares a cracker for the given target cookie.
func New(cookie string, opts *Options) *Cracker {
	if opts == nil {
		opts = &Options{}
	}
	salt := opts.Salt
	if salt == "" {
		salt = session.DefaultSalt
	}
	threads := opts.Threads
	if threads <= 0 {
		threads = DefaultThreads
	}
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Cracker{
		verifier:  session.NewVerifier(cookie, salt),
		legacy:    opts.Legacy,
		threads:   threads,
		chunkSize: chunkSize,
		log:       log,
		progress:  opts.Progress,
	}
}

// Crack consumes the candidate source and returns the first secret
// that verifies against the target cookie. A nil secret with a nil
// error means the stream was exhausted without a match. ErrCancelled
// reports a clean abort; a *Fault reports the first unexpected worker
// failure. Crack consumes the source and is single-use.
func (c *Cracker) Crack(src Source) ([]byte, error) {
	c.src = src

	var wg sync.WaitGroup
	for i := 0; i < c.threads; i++ {
		wg.Add(1)
		go c.runWorker(&wg)
	}
	wg.Wait()

	c.mu.Lock()
	secret, found := c.secret, c.found
	c.mu.Unlock()

	if found {
		return secret, nil
	}
	if c.fault != nil {
		return nil, c.fault
	}
	if c.aborted.Load() {
		return nil, ErrCancelled
	}
	return nil, nil
}

// Cancel requests cooperative termination of the run. Workers stop
// pulling new chunks and stop testing remaining candidates as soon as
// they observe the flag; an in-flight verification completes.
func (c *Cracker) Cancel() {
	c.aborted.Store(true)
	c.cancelled.Store(true)
}

// Attempts returns the number of candidates consumed so far. It may
// exceed the number actually verified when a match or cancellation
// cut a batch short.
func (c *Cracker) Attempts() uint64 {
	return c.attempts.Load()
}

func (c *Cracker) runWorker(wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			c.fail(fmt.Errorf("worker panic: %v", r), debug.Stack())
		}
	}()
	c.unsign()
}

// unsign is the worker loop: pull a chunk, test each candidate, fold
// the batch size into the shared counter, repeat until the stream is
// drained or the run is cancelled.
func (c *Cracker) unsign() {
	for !c.cancelled.Load() {
		batch, err := c.pull()
		if err != nil {
			if errors.Is(err, ErrSourceClosed) {
				c.Cancel()
			} else {
				c.fail(err, nil)
			}
			return
		}
		if len(batch) == 0 {
			return
		}

		var latest []byte
		for _, candidate := range batch {
			if c.cancelled.Load() {
				break
			}
			latest = candidate
			if c.verifier.Check(candidate) {
				c.record(candidate)
				break
			}
		}

		total := c.attempts.Add(uint64(len(batch)))
		if c.progress != nil && latest != nil {
			c.progress.Attempted(total, latest)
		}
	}
}

// pull takes up to one chunk from the source under the shared lock.
// Chunks are strictly partitioned across workers: every candidate is
// handed out exactly once.
func (c *Cracker) pull() ([][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.drained {
		return nil, nil
	}
	batch := make([][]byte, 0, c.chunkSize)
	for len(batch) < c.chunkSize {
		candidate, err := c.src.Next()
		if err == io.EOF {
			c.drained = true
			break
		}
		if err != nil {
			return nil, err
		}
		batch = append(batch, candidate)
	}
	return batch, nil
}

// record stores a matching secret. The first writer wins; a
// concurrent second match observes the slot already set and is
// discarded, both values being equally valid dictionary entries.
func (c *Cracker) record(secret []byte) {
	c.mu.Lock()
	if !c.found {
		c.found = true
		c.secret = secret
	}
	c.mu.Unlock()
	c.cancelled.Store(true)
}

// fail records the first worker fault and cancels the run. Later
// faults from already-cancelling workers are suppressed.
func (c *Cracker) fail(err error, stack []byte) {
	c.faultOnce.Do(func() {
		c.fault = &Fault{Err: err, Stack: stack}
		c.cancelled.Store(true)
		c.log.Error("unhandled error in cracker worker: %v", err)
	})
}
