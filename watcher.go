package main

import (
	"sync"
	"time"

	"github.com/chatpane/chatpane/timeline"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce is the delay after the last file-write event before the
// records file is re-read. Exporters rewrite the whole file; coalescing
// rapid writes into one reload avoids visual churn mid-write.
const reloadDebounce = 400 * time.Millisecond

// reloadMsg carries the freshly loaded message collection. The full
// collection is sent (not a diff): the flatten pipeline recomputes
// wholesale per generation anyway.
type reloadMsg struct {
	messages []timeline.Message
}

// reloadErrMsg reports errors from the watcher goroutine.
type reloadErrMsg struct {
	err error
}

// recordWatcher monitors the records file for rewrites and pushes reloaded
// message collections through a channel. All file reading happens on the
// single run() goroutine; the debounce timer only sends a signal.
//
// The mutex guards the debounce timer handle so stop() can cancel it
// safely. It does NOT guard data fields; those are only touched by run().
type recordWatcher struct {
	path    string
	sub     chan reloadMsg
	errc    chan error
	done    chan struct{}
	signals chan struct{} // debounced reload trigger; capacity 1

	mu       sync.Mutex
	debounce *time.Timer
}

func newRecordWatcher(path string) *recordWatcher {
	return &recordWatcher{
		path:    path,
		sub:     make(chan reloadMsg, 1),
		errc:    make(chan error, 1),
		done:    make(chan struct{}),
		signals: make(chan struct{}, 1),
	}
}

// stop signals the watcher goroutine to exit and cancels any pending
// debounce.
func (w *recordWatcher) stop() {
	close(w.done)
	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
}

// sendSignal does a non-blocking send on the signals channel. A pending
// signal already implies a full reload, so dropping extras is fine.
func (w *recordWatcher) sendSignal() {
	select {
	case w.signals <- struct{}{}:
	default:
	}
}

// run starts the fsnotify loop. Intended to be called as a goroutine.
// Closes sub and errc on exit so blocked wait Cmds unblock and return nil
// instead of leaking goroutines.
func (w *recordWatcher) run() {
	defer close(w.sub)
	defer close(w.errc)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.errc <- err
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.path); err != nil {
		w.errc <- err
		return
	}

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.mu.Lock()
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.debounce = time.AfterFunc(reloadDebounce, w.sendSignal)
			w.mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errc <- err:
			default:
			}

		case <-w.signals:
			msgs, err := loadRecords(w.path)
			if err != nil {
				select {
				case w.errc <- err:
				default:
				}
				continue
			}
			// Replace any stale pending update with the newest one.
			select {
			case <-w.sub:
			default:
			}
			w.sub <- reloadMsg{messages: msgs}
		}
	}
}

// waitForReload blocks until the watcher delivers a reloaded collection.
func waitForReload(sub chan reloadMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-sub
		if !ok {
			return nil
		}
		return msg
	}
}

// waitForReloadErr blocks until the watcher reports an error.
func waitForReloadErr(errc chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-errc
		if !ok {
			return nil
		}
		return reloadErrMsg{err: err}
	}
}
