package geokdnn

import (
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// progressBarThreshold is the input size at or above which IndexBuilder shows a
// progressbar/v3 bar while building, mirroring the pack's only example of
// this pairing (patrikhermansson-hann/example/run_datasets.go uses a bar
// in benchmark mode; its core/log_config.go gates zerolog by env var).
const progressBarThreshold = 10_000

// buildFrame is one in-flight node of the construction tree: a split
// produces a pivot awaiting the ids of its (up to two) children before it
// can be written to the store and its own id handed back to its parent.
type buildFrame struct {
	items  []Record
	depth  int
	parent *buildFrame
	onLeft bool

	pivot   Record
	pending int
	leftID  string
	rightID string
}

// IndexBuilder constructs a k-d tree over a population of records,
// writing every record into a RecordStore and setting root_id.
// Construction runs with an explicit work stack (not native recursion)
// so depth is bounded by heap, not goroutine stack.
type IndexBuilder struct {
	Store    RecordStore
	Splitter *MedianSplitter
}

// NewIndexBuilder returns a builder using the given store and splitter.
func NewIndexBuilder(store RecordStore, splitter *MedianSplitter) *IndexBuilder {
	return &IndexBuilder{Store: store, Splitter: splitter}
}

// Build constructs the tree from items and sets root_id. The whole
// process runs under construction mode; on completion, mode is cleared
// and any staged writes are flushed. If construction fails partway the
// store must be treated as invalid — callers should rebuild, not retry.
func (b *IndexBuilder) Build(items []Record) error {
	b.Store.BeginConstruction()

	log.Info().Int("records", len(items)).Msg("started building index from scratch")

	var bar *progressbar.ProgressBar
	if len(items) >= progressBarThreshold {
		bar = progressbar.Default(int64(len(items)))
	}

	rootID, err := b.run(items, bar)
	if err != nil {
		return err
	}

	if err := b.Store.SetScalar(RootIDKey, rootID); err != nil {
		return err
	}

	if err := b.Store.EndConstruction(); err != nil {
		return err
	}

	log.Info().Str("root_id", rootID).Msg("finished building index")
	return nil
}

func (b *IndexBuilder) run(items []Record, bar *progressbar.ProgressBar) (string, error) {
	if len(items) == 0 {
		return NoID, nil
	}

	root := &buildFrame{items: items, depth: 0, pending: 2}
	var rootResult string
	rootDone := false

	stack := newWorkStack[*buildFrame]()
	stack.push(root)

	deliver := func(f *buildFrame, onLeft bool, id string) error {
		for {
			if onLeft {
				f.leftID = id
			} else {
				f.rightID = id
			}
			f.pending--
			if f.pending != 0 {
				return nil
			}

			pivot := f.pivot
			pivot.LeftID = f.leftID
			pivot.RightID = f.rightID
			if err := b.Store.PutRecord(pivot); err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Add(1)
			}

			if f.parent == nil {
				rootResult = pivot.ID
				rootDone = true
				return nil
			}
			id = pivot.ID
			onLeft = f.onLeft
			f = f.parent
		}
	}

	for !stack.empty() {
		f, _ := stack.pop()

		// Every frame on the stack carries a non-empty item list: the
		// empty case is resolved inline, without pushing a frame, below.
		left, right, pivot, _ := b.Splitter.Split(f.items, axisForDepth(f.depth))
		f.pivot = pivot

		leftFrame := &buildFrame{items: left, depth: f.depth + 1, parent: f, onLeft: true, pending: 2}
		rightFrame := &buildFrame{items: right, depth: f.depth + 1, parent: f, onLeft: false, pending: 2}

		if len(left) == 0 {
			if err := deliver(f, true, NoID); err != nil {
				return "", err
			}
		} else {
			stack.push(leftFrame)
		}
		if len(right) == 0 {
			if err := deliver(f, false, NoID); err != nil {
				return "", err
			}
		} else {
			stack.push(rightFrame)
		}
	}

	if !rootDone {
		return "", dataIntegrityf("index builder terminated without resolving a root id")
	}
	return rootResult, nil
}
