package analyzer

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// FixtureStore holds the canned demo AnalysisResult. When backed by a
// file it watches for changes and reloads, so the demo dataset can be
// edited without restarting.
type FixtureStore struct {
	mu     sync.RWMutex
	result types.AnalysisResult

	path          string
	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	stopChan      chan struct{}
	running       bool

	logger *errors.Logger
}

// NewFixtureStore creates a store seeded with the built-in demo result.
// path may be empty, in which case Load and Watch are no-ops.
func NewFixtureStore(path string, logger *errors.Logger) *FixtureStore {
	return &FixtureStore{
		result:        DemoResult(),
		path:          path,
		debounceDelay: time.Second,
		stopChan:      make(chan struct{}),
		logger:        logger,
	}
}

// Result returns the current canned result
func (fs *FixtureStore) Result() types.AnalysisResult {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.result
}

// Source describes where the fixture came from
func (fs *FixtureStore) Source() string {
	if fs.path == "" {
		return "built-in"
	}
	return fs.path
}

// Load reads the fixture file and replaces the canned result. The file
// must satisfy the same shape invariants as a backend response.
func (fs *FixtureStore) Load() error {
	if fs.path == "" {
		return nil
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		return errors.NewIOError(errors.ErrCodeFileNotReadable,
			"cannot read demo fixture file", err).WithContext("path", fs.path)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		return errors.NewDataShapeError(errors.ErrCodeBadResponseShape,
			"demo fixture is not a valid analysis result", err).WithContext("path", fs.path)
	}
	if err := result.Validate(); err != nil {
		return errors.NewDataShapeError(errors.ErrCodeBadResponseShape,
			"demo fixture violates result invariants", err).WithContext("path", fs.path)
	}

	fs.mu.Lock()
	fs.result = result
	fs.mu.Unlock()

	if fs.logger != nil {
		fs.logger.Info("Demo fixture loaded", "path", fs.path)
	}
	return nil
}

// Watch starts a file watcher that reloads the fixture on change. Events
// are debounced because editors often emit several writes per save.
func (fs *FixtureStore) Watch() error {
	if fs.path == "" {
		return nil
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.NewInternalError("WATCHER_INIT_FAILED",
			"failed to create fixture watcher", err)
	}
	if err := watcher.Add(fs.path); err != nil {
		if closeErr := watcher.Close(); closeErr != nil && fs.logger != nil {
			fs.logger.LogError(closeErr, "Failed to close fixture watcher during cleanup")
		}
		return errors.NewIOError(errors.ErrCodeFileNotFound,
			"cannot watch demo fixture file", err).WithContext("path", fs.path)
	}

	fs.fsWatcher = watcher
	fs.running = true
	go fs.watchLoop()

	if fs.logger != nil {
		fs.logger.Info("Demo fixture watcher started",
			"path", fs.path,
			"debounce_delay", fs.debounceDelay)
	}
	return nil
}

func (fs *FixtureStore) watchLoop() {
	var debounce *time.Timer
	for {
		select {
		case event, ok := <-fs.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(fs.debounceDelay, func() {
				if err := fs.Load(); err != nil && fs.logger != nil {
					fs.logger.LogError(err, "Demo fixture reload failed, keeping previous result")
				}
			})

		case err, ok := <-fs.fsWatcher.Errors:
			if !ok {
				return
			}
			if fs.logger != nil {
				fs.logger.LogError(err, "Demo fixture watcher error")
			}

		case <-fs.stopChan:
			if debounce != nil {
				debounce.Stop()
			}
			return
		}
	}
}

// Stop shuts the watcher down
func (fs *FixtureStore) Stop() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.running {
		return nil
	}
	close(fs.stopChan)
	fs.running = false
	return fs.fsWatcher.Close()
}
