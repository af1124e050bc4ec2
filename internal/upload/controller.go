package upload

import (
	"sync"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

// User-facing messages surfaced by the controller
const (
	MsgUnsupportedType = "Please upload a PDF, DOCX, or TXT file"
	MsgFileTooLarge    = "File size must be less than 10MB"
	MsgNoFileSelected  = "Please select a file first"
)

// Analyze action labels
const (
	ActionLabelReady = "Analyze Resume"
	ActionLabelBusy  = "Analyzing..."
)

// EventKind identifies a host-UI event delivered to the controller.
type EventKind string

const (
	EventDragEnter        EventKind = "drag-enter"
	EventDragOver         EventKind = "drag-over"
	EventDragLeave        EventKind = "drag-leave"
	EventDrop             EventKind = "drop"
	EventFilePick         EventKind = "file-pick"
	EventAnalyzeRequested EventKind = "analyze-requested"
)

// Event is one host-UI event with its payload. Drop and FilePick carry the
// transferred file list; other kinds carry no payload.
type Event struct {
	Kind  EventKind
	Files []types.FileMeta
}

// Outcome reports what an event dispatch did: whether the host's default
// handling must be suppressed, and any user-facing notice to surface.
type Outcome struct {
	DefaultPrevented bool
	Notice           string
	Selected         bool
}

// Controller owns the selected-file state and the visual affordance of the
// drop target. Event handlers run to completion under the mutex, which
// gives the same run-to-completion guarantee the browser event loop
// provides: the active file and workflow state are updated atomically with
// respect to the next event.
type Controller struct {
	mu sync.Mutex

	activeFile  *types.FileMeta
	highlighted bool
	state       types.WorkflowState

	actionEnabled bool
	actionLabel   string
	dropLabel     string

	logger *errors.Logger
}

// NewController creates a controller in the Idle state.
func NewController(logger *errors.Logger) *Controller {
	return &Controller{
		state:       types.StateIdle,
		actionLabel: ActionLabelReady,
		logger:      logger,
	}
}

// Dispatch handles one host-UI event. Analysis itself is driven by the
// orchestrator through BeginAnalysis/FinishAnalysis; EventAnalyzeRequested
// only performs the precondition check here.
func (c *Controller) Dispatch(ev Event) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case EventDragEnter, EventDragOver:
		// Default handling must be suppressed or the browser opens the file.
		c.highlighted = true
		return Outcome{DefaultPrevented: true}

	case EventDragLeave:
		c.highlighted = false
		return Outcome{}

	case EventDrop:
		return c.selectFile(ev.Files, true)

	case EventFilePick:
		return c.selectFile(ev.Files, false)

	case EventAnalyzeRequested:
		if c.activeFile == nil {
			return Outcome{Notice: MsgNoFileSelected}
		}
		return Outcome{}

	default:
		if c.logger != nil {
			c.logger.Warn("Ignoring unknown upload event", "kind", string(ev.Kind))
		}
		return Outcome{}
	}
}

// selectFile takes the first file of a drop or picker selection, validates
// it, and replaces the active file on success. Additional files in a
// multi-file transfer are ignored: single-file selection is a deliberate
// constraint. The drop highlight is cleared regardless of the outcome.
func (c *Controller) selectFile(files []types.FileMeta, fromDrop bool) Outcome {
	c.highlighted = false

	out := Outcome{DefaultPrevented: fromDrop}
	if len(files) == 0 {
		return out
	}

	file := files[0]
	if err := Validate(file); err != nil {
		out.Notice = rejectionNotice(err)
		if c.logger != nil {
			c.logger.Info("Rejected candidate file",
				"filename", file.Name,
				"mime_type", file.MIMEType,
				"byte_size", file.ByteSize,
				"reason", out.Notice)
		}
		return out
	}

	c.activeFile = &file
	c.state = types.StateFileSelected
	c.actionEnabled = true
	c.actionLabel = ActionLabelReady
	c.dropLabel = file.DisplayLabel()
	out.Selected = true

	if c.logger != nil {
		c.logger.Info("Candidate file selected",
			"filename", file.Name,
			"size_kb", file.SizeKB())
	}
	return out
}

func rejectionNotice(err error) string {
	if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeFileTooLarge {
		return MsgFileTooLarge
	}
	return MsgUnsupportedType
}

// BeginAnalysis transitions to Analyzing and disables the action control.
// It fails without side effects when no file is selected, and refuses a
// second trigger while one is in flight (the in-flight request is not
// cancelled, only the control is disabled).
func (c *Controller) BeginAnalysis() (types.FileMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.activeFile == nil {
		return types.FileMeta{}, errors.NewPreconditionError(errors.ErrCodeNoFileSelected,
			MsgNoFileSelected, nil)
	}
	if c.state == types.StateAnalyzing {
		return types.FileMeta{}, errors.NewPreconditionError(errors.ErrCodeAnalysisBusy,
			"an analysis is already in flight", nil)
	}

	c.state = types.StateAnalyzing
	c.actionEnabled = false
	c.actionLabel = ActionLabelBusy
	return *c.activeFile, nil
}

// FinishAnalysis restores the action control and records the terminal
// state. It must be called on every exit path, success or failure.
func (c *Controller) FinishAnalysis(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.actionEnabled = true
	c.actionLabel = ActionLabelReady
	if success {
		c.state = types.StateResultReady
	} else {
		c.state = types.StateFileSelected
	}
}

// State returns the current workflow state.
func (c *Controller) State() types.WorkflowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ActiveFile returns the selected file, if any.
func (c *Controller) ActiveFile() (types.FileMeta, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeFile == nil {
		return types.FileMeta{}, false
	}
	return *c.activeFile, true
}

// Highlighted reports whether the drop target is highlighted.
func (c *Controller) Highlighted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlighted
}

// Action returns the analyze control's enabled flag and label.
func (c *Controller) Action() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.actionEnabled, c.actionLabel
}

// DropLabel returns the text shown on the drop target, empty until a file
// is selected.
func (c *Controller) DropLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropLabel
}
