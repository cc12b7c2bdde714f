package gitrepo

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/packfile"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

// serialSink forwards events to a ProgressSink one at a time and drops
// everything after Stop.
type serialSink struct {
	mu      sync.Mutex
	sink    domain.ProgressSink
	stopped bool
}

func newSerialSink(sink domain.ProgressSink) *serialSink {
	return &serialSink{sink: sink}
}

func (s *serialSink) OnEvent(event domain.ProgressEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.sink == nil {
		return
	}
	s.sink.OnEvent(event)
}

func (s *serialSink) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

// checkoutFS reports every file the worktree checkout creates.
type checkoutFS struct {
	billy.Filesystem
	sink    domain.ProgressSink
	total   int
	current int
	last    string
}

func newCheckoutFS(fs billy.Filesystem, sink domain.ProgressSink) *checkoutFS {
	return &checkoutFS{Filesystem: fs, sink: sink}
}

// Expect sets the number of files the checkout will write. Files created
// before Expect is called are not reported.
func (c *checkoutFS) Expect(total int) {
	c.total = total
	c.current = 0
}

func (c *checkoutFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	f, err := c.Filesystem.OpenFile(filename, flag, perm)
	if err == nil && flag&os.O_CREATE != 0 {
		c.report(filename)
	}
	return f, err
}

func (c *checkoutFS) Symlink(target, link string) error {
	err := c.Filesystem.Symlink(target, link)
	if err == nil {
		c.report(link)
	}
	return err
}

func (c *checkoutFS) report(path string) {
	if c.total == 0 || path == c.last {
		return
	}
	c.last = path
	c.current++
	c.sink.OnEvent(domain.CheckoutProgress{Path: path, Current: c.current, Total: c.total})
}

// progressStorage is a filesystem storage whose packfile writer meters the
// incoming pack.
type progressStorage struct {
	*filesystem.Storage
	sink domain.ProgressSink
}

func newProgressStorage(storage *filesystem.Storage, sink domain.ProgressSink) *progressStorage {
	return &progressStorage{Storage: storage, sink: sink}
}

func (s *progressStorage) PackfileWriter() (io.WriteCloser, error) {
	w, err := s.Storage.PackfileWriter()
	if err != nil {
		return nil, err
	}
	return newPackMeter(w, s.sink), nil
}

// packMeter tees the pack stream into a scanner that counts objects as they
// arrive. Deltas are resolved when the underlying writer closes.
type packMeter struct {
	dst   io.WriteCloser
	pipe  *io.PipeWriter
	done  chan struct{}
	sink  domain.ProgressSink
	bytes atomic.Uint64

	state domain.TransferProgress
}

func newPackMeter(dst io.WriteCloser, sink domain.ProgressSink) *packMeter {
	pr, pw := io.Pipe()
	m := &packMeter{dst: dst, pipe: pw, done: make(chan struct{}), sink: sink}
	go m.scan(pr)
	return m
}

func (m *packMeter) Write(p []byte) (int, error) {
	n, err := m.dst.Write(p)
	if n > 0 {
		m.bytes.Add(uint64(n))
		_, _ = m.pipe.Write(p[:n])
	}
	return n, err
}

func (m *packMeter) Close() error {
	_ = m.pipe.Close()
	<-m.done

	if err := m.dst.Close(); err != nil {
		return err
	}
	if m.state.TotalObjects > 0 {
		m.state.IndexedObjects = m.state.TotalObjects
		m.state.IndexedDeltas = m.state.TotalDeltas
		m.state.ReceivedBytes = m.bytes.Load()
		m.sink.OnEvent(m.state)
	}
	return nil
}

func (m *packMeter) scan(r *io.PipeReader) {
	defer close(m.done)
	// Keep the writer side unblocked whatever the scanner does.
	defer func() { _, _ = io.Copy(io.Discard, r) }()

	scanner := packfile.NewScanner(r)
	_, objects, err := scanner.Header()
	if err != nil {
		return
	}
	m.state.TotalObjects = uint64(objects)

	for i := uint32(0); i < objects; i++ {
		header, err := scanner.NextObjectHeader()
		if err != nil {
			return
		}
		if _, _, err := scanner.NextObject(io.Discard); err != nil {
			return
		}
		m.state.ReceivedObjects++
		if header.Type.IsDelta() {
			m.state.TotalDeltas++
		} else {
			m.state.IndexedObjects++
		}
		m.state.ReceivedBytes = m.bytes.Load()
		m.sink.OnEvent(m.state)
	}
}

func countTreeFiles(repo *git.Repository, hash plumbing.Hash) (int, error) {
	commit, err := repo.CommitObject(hash)
	if err != nil {
		return 0, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return 0, err
	}

	count := 0
	err = tree.Files().ForEach(func(*object.File) error {
		count++
		return nil
	})
	return count, err
}
