package gitrepo

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/packfile"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/osvaldoandrade/shellcommander/internal/domain"
)

type nopWriteCloser struct {
	io.Writer
	closed bool
}

func (w *nopWriteCloser) Close() error {
	w.closed = true
	return nil
}

func TestPackMeterCountsObjects(t *testing.T) {
	storage := memory.NewStorage()
	hashes := make([]plumbing.Hash, 0, 3)
	for i := 0; i < 3; i++ {
		obj := storage.NewEncodedObject()
		obj.SetType(plumbing.BlobObject)
		w, err := obj.Writer()
		if err != nil {
			t.Fatalf("Writer returned error: %v", err)
		}
		if _, err := w.Write([]byte("blob " + strconv.Itoa(i))); err != nil {
			t.Fatalf("write blob: %v", err)
		}
		_ = w.Close()
		hash, err := storage.SetEncodedObject(obj)
		if err != nil {
			t.Fatalf("SetEncodedObject returned error: %v", err)
		}
		hashes = append(hashes, hash)
	}

	var pack bytes.Buffer
	if _, err := packfile.NewEncoder(&pack, storage, false).Encode(hashes, 0); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	var out bytes.Buffer
	dst := &nopWriteCloser{Writer: &out}
	sink := &recordingSink{}
	meter := newPackMeter(dst, newSerialSink(sink))

	payload := pack.Bytes()
	for len(payload) > 0 {
		n := min(7, len(payload))
		if _, err := meter.Write(payload[:n]); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
		payload = payload[n:]
	}
	if err := meter.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if !dst.closed {
		t.Fatalf("expected destination closed")
	}
	if !bytes.Equal(out.Bytes(), pack.Bytes()) {
		t.Fatalf("expected pack passed through unchanged")
	}
	if len(sink.events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(sink.events))
	}
	last, ok := sink.events[3].(domain.TransferProgress)
	if !ok {
		t.Fatalf("expected transfer progress, got %T", sink.events[3])
	}
	if last.TotalObjects != 3 || last.ReceivedObjects != 3 || last.IndexedObjects != 3 {
		t.Fatalf("unexpected final progress %+v", last)
	}
	if last.ReceivedBytes != uint64(pack.Len()) {
		t.Fatalf("expected %d bytes, got %d", pack.Len(), last.ReceivedBytes)
	}
}

func TestPackMeterSurvivesGarbage(t *testing.T) {
	dst := &nopWriteCloser{Writer: io.Discard}
	sink := &recordingSink{}
	meter := newPackMeter(dst, sink)
	if _, err := meter.Write([]byte("not a pack at all")); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if err := meter.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if len(sink.events) != 0 {
		t.Fatalf("expected no events, got %d", len(sink.events))
	}
}

func TestCheckoutFSReportsCreatedFiles(t *testing.T) {
	sink := &recordingSink{}
	fs := newCheckoutFS(memfs.New(), sink)

	f, err := fs.OpenFile("early.txt", os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	_ = f.Close()

	fs.Expect(2)
	for _, name := range []string{"a.txt", "b/c.txt"} {
		f, err := fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			t.Fatalf("OpenFile returned error: %v", err)
		}
		_ = f.Close()
	}
	if _, err := fs.Open("a.txt"); err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(sink.events))
	}
	last := sink.events[1].(domain.CheckoutProgress)
	if last.Path != "b/c.txt" || last.Current != 2 || last.Total != 2 {
		t.Fatalf("unexpected checkout progress %+v", last)
	}
}

func TestSerialSinkDropsAfterStop(t *testing.T) {
	sink := &recordingSink{}
	serial := newSerialSink(sink)
	serial.OnEvent(domain.CheckoutProgress{Current: 1, Total: 1})
	serial.Stop()
	serial.OnEvent(domain.CheckoutProgress{Current: 2, Total: 2})
	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
}
