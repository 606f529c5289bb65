package archive

import (
	"context"
	"os"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/exattr/exattr"
	"github.com/exattr/exattr/internal/debug"
	"github.com/exattr/exattr/internal/errors"
	"github.com/exattr/exattr/internal/ui/progress"
)

// Attrs is the subset of *exattr.Attrs used to capture and restore
// snapshots.
type Attrs interface {
	Get(path, name string) (exattr.Value, error)
	Set(path, name string, v exattr.Value) error
	Remove(path, name string) error
	List(path string) ([]string, error)
}

var _ Attrs = &exattr.Attrs{}

// Options configure Capture and Restore.
type Options struct {
	// Jobs limits the number of paths processed concurrently. Zero selects
	// GOMAXPROCS.
	Jobs int
	// Select reports whether an attribute is processed. Nil selects all.
	Select func(name string) bool
	// Printer receives warnings about skipped attributes and provides the
	// counter of finished paths. May be nil.
	Printer progress.Printer
}

func (opts Options) jobs() int {
	if opts.Jobs > 0 {
		return opts.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

func (opts Options) selected(name string) bool {
	return opts.Select == nil || opts.Select(name)
}

func (opts Options) printer() progress.Printer {
	if opts.Printer == nil {
		return &progress.NoopPrinter{}
	}
	return opts.Printer
}

// Capture reads the attributes of all paths. Entries keep the order of
// paths, the attributes of each entry are sorted by name. An attribute
// which is removed between listing and reading is skipped with a warning.
func Capture(ctx context.Context, attrs Attrs, paths []string, opts Options) (*Snapshot, error) {
	sn := &Snapshot{
		Version: Version,
		Time:    time.Now(),
		Entries: make([]Entry, len(paths)),
	}
	sn.Hostname, _ = os.Hostname()

	printer := opts.printer()
	counter := printer.NewCounter("paths")
	counter.SetMax(uint64(len(paths)))
	defer counter.Done()

	wg, wgCtx := errgroup.WithContext(ctx)
	wg.SetLimit(opts.jobs())

	for i, path := range paths {
		if wgCtx.Err() != nil {
			break
		}

		wg.Go(func() error {
			if wgCtx.Err() != nil {
				return wgCtx.Err()
			}

			entry, err := captureEntry(attrs, path, opts.selected, printer)
			if err != nil {
				return err
			}
			sn.Entries[i] = entry
			counter.Add(1)
			return nil
		})
	}

	err := wg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return sn, nil
}

func captureEntry(attrs Attrs, path string, selected func(string) bool, printer progress.Printer) (Entry, error) {
	entry := Entry{Path: path, Attributes: []Attribute{}}

	names, err := attrs.List(path)
	debug.Log("capture(%v) %v %v", path, names, err)
	if err != nil {
		return entry, err
	}
	sort.Strings(names)

	for _, name := range names {
		if !selected(name) {
			continue
		}

		v, err := attrs.Get(path, name)
		if err != nil {
			return entry, err
		}

		value, ok := v.Bytes()
		if !ok {
			printer.E("attribute %v of %v vanished before it could be read", name, path)
			continue
		}

		entry.Attributes = append(entry.Attributes, NewAttribute(name, value))
	}

	return entry, nil
}

// Stats summarize a Restore.
type Stats struct {
	Paths   int
	Set     int
	Removed int
}

// Restore applies the captured attributes to each entry's path. Attributes
// present on a path but missing from its entry are removed. Both steps only
// touch attributes accepted by opts.Select.
func Restore(ctx context.Context, attrs Attrs, sn *Snapshot, opts Options) (Stats, error) {
	stats := make([]Stats, len(sn.Entries))

	counter := opts.printer().NewCounter("paths")
	counter.SetMax(uint64(len(sn.Entries)))
	defer counter.Done()

	wg, wgCtx := errgroup.WithContext(ctx)
	wg.SetLimit(opts.jobs())

	for i, entry := range sn.Entries {
		if wgCtx.Err() != nil {
			break
		}

		wg.Go(func() error {
			if wgCtx.Err() != nil {
				return wgCtx.Err()
			}

			s, err := restoreEntry(attrs, entry, opts)
			stats[i] = s
			if err != nil {
				return errors.Wrapf(err, "restore %v", entry.Path)
			}
			counter.Add(1)
			return nil
		})
	}

	err := wg.Wait()
	if err == nil {
		err = ctx.Err()
	}

	var total Stats
	for _, s := range stats {
		total.Paths += s.Paths
		total.Set += s.Set
		total.Removed += s.Removed
	}
	return total, err
}

func restoreEntry(attrs Attrs, entry Entry, opts Options) (Stats, error) {
	var stats Stats

	expected := make(map[string]struct{}, len(entry.Attributes))
	for _, attr := range entry.Attributes {
		if !opts.selected(attr.Name) {
			continue
		}

		err := attrs.Set(entry.Path, attr.Name, exattr.Some(attr.Value))
		if err != nil {
			return stats, err
		}
		expected[attr.Name] = struct{}{}
		stats.Set++
	}

	// remove attributes which were not captured
	names, err := attrs.List(entry.Path)
	if err != nil {
		return stats, err
	}
	for _, name := range names {
		if _, ok := expected[name]; ok {
			continue
		}
		if !opts.selected(name) {
			continue
		}

		// clearing tolerates a concurrent removal
		err := attrs.Set(entry.Path, name, exattr.None())
		if err != nil {
			return stats, err
		}
		stats.Removed++
	}

	debug.Log("restored %v: %d set, %d removed", entry.Path, stats.Set, stats.Removed)
	stats.Paths = 1
	return stats, nil
}
