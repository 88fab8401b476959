package session

import (
	"sync"

	"github.com/shufflewick/boardsmith/pkg/snapshot"
)

// checkpointInterval is the action-count spacing between automatic
// snapshot captures.
const checkpointInterval = 10

// checkpointWindow caps how many checkpoints are retained: once a new
// one is captured past this count, the oldest is dropped. A session
// only ever needs to rewind into its own recent past, not its entire
// history, so the window stays small and bounded rather than growing
// with game length.
const checkpointWindow = 5

type checkpointEntry struct {
	index int
	snap  *snapshot.Snapshot
}

// checkpointManager is the rolling window of recent snapshots a Session
// uses to make Rewind and SwapClasses cheaper than a full replay in the
// common case, grounded on the teacher's dungeon.Artifact (pkg/dungeon/
// artifact.go): one struct bundling a pipeline stage's full output for
// later reuse, generalized here to "one struct bundling a checkpoint's
// full restorable state".
type checkpointManager struct {
	mu      sync.Mutex
	entries []checkpointEntry
}

func newCheckpointManager() *checkpointManager {
	return &checkpointManager{}
}

// maybeCapture records a checkpoint at actionCount if it lands on the
// capture interval, evicting the oldest entry once the window is full.
func (m *checkpointManager) maybeCapture(actionCount int, snap func() *snapshot.Snapshot) {
	if actionCount == 0 || actionCount%checkpointInterval != 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, checkpointEntry{index: actionCount, snap: snap()})
	if len(m.entries) > checkpointWindow {
		m.entries = m.entries[len(m.entries)-checkpointWindow:]
	}
}

// nearest returns the latest retained checkpoint at or before idx.
func (m *checkpointManager) nearest(idx int) (checkpointEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best checkpointEntry
	found := false
	for _, e := range m.entries {
		if e.index <= idx && (!found || e.index > best.index) {
			best, found = e, true
		}
	}
	return best, found
}

// invalidateAfter drops every checkpoint past idx: once history has been
// rewound or replaced, a checkpoint from the discarded future is no
// longer a valid restore point.
func (m *checkpointManager) invalidateAfter(idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.index <= idx {
			kept = append(kept, e)
		}
	}
	m.entries = kept
}

// reset discards every checkpoint, used when a Definition swap replaces
// the game wholesale and no existing snapshot is safe to resume from.
func (m *checkpointManager) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}
