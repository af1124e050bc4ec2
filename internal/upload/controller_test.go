package upload

import (
	"testing"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

func validFile() types.FileMeta {
	return types.FileMeta{Name: "resume.pdf", MIMEType: "application/pdf", ByteSize: 512 * 1024}
}

func TestDispatchDragEvents(t *testing.T) {
	c := NewController(nil)

	out := c.Dispatch(Event{Kind: EventDragEnter})
	if !out.DefaultPrevented {
		t.Error("drag-enter must suppress default handling")
	}
	if !c.Highlighted() {
		t.Error("drag-enter must highlight the drop target")
	}

	out = c.Dispatch(Event{Kind: EventDragOver})
	if !out.DefaultPrevented {
		t.Error("drag-over must suppress default handling")
	}

	c.Dispatch(Event{Kind: EventDragLeave})
	if c.Highlighted() {
		t.Error("drag-leave must clear the highlight")
	}
}

func TestDispatchDropSelectsFirstFile(t *testing.T) {
	c := NewController(nil)
	c.Dispatch(Event{Kind: EventDragEnter})

	second := types.FileMeta{Name: "other.txt", MIMEType: "text/plain", ByteSize: 100}
	out := c.Dispatch(Event{Kind: EventDrop, Files: []types.FileMeta{validFile(), second}})

	if !out.DefaultPrevented {
		t.Error("drop must suppress default handling")
	}
	if !out.Selected {
		t.Fatal("expected the drop to select a file")
	}
	if c.Highlighted() {
		t.Error("drop must clear the highlight")
	}

	file, ok := c.ActiveFile()
	if !ok {
		t.Fatal("expected an active file")
	}
	if file.Name != "resume.pdf" {
		t.Errorf("expected first file to win, got %q", file.Name)
	}
	if c.State() != types.StateFileSelected {
		t.Errorf("expected state %q, got %q", types.StateFileSelected, c.State())
	}

	enabled, label := c.Action()
	if !enabled {
		t.Error("action must be enabled after selection")
	}
	if label != ActionLabelReady {
		t.Errorf("expected label %q, got %q", ActionLabelReady, label)
	}
	if c.DropLabel() != "resume.pdf (512.00 KB)" {
		t.Errorf("unexpected drop label %q", c.DropLabel())
	}
}

func TestDispatchRejectionNotices(t *testing.T) {
	tests := []struct {
		name   string
		file   types.FileMeta
		notice string
	}{
		{
			name:   "unsupported type",
			file:   types.FileMeta{Name: "photo.png", MIMEType: "image/png", ByteSize: 1024},
			notice: MsgUnsupportedType,
		},
		{
			name:   "file too large",
			file:   types.FileMeta{Name: "resume.pdf", MIMEType: "application/pdf", ByteSize: MaxFileSize + 1},
			notice: MsgFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(nil)
			c.Dispatch(Event{Kind: EventDragEnter})

			out := c.Dispatch(Event{Kind: EventDrop, Files: []types.FileMeta{tt.file}})

			if out.Selected {
				t.Error("rejected file must not be selected")
			}
			if out.Notice != tt.notice {
				t.Errorf("expected notice %q, got %q", tt.notice, out.Notice)
			}
			if c.Highlighted() {
				t.Error("highlight must clear even on rejection")
			}
			if _, ok := c.ActiveFile(); ok {
				t.Error("rejected file must not become the active file")
			}
			if c.State() != types.StateIdle {
				t.Errorf("state must stay idle, got %q", c.State())
			}
		})
	}
}

func TestRejectionKeepsPreviousSelection(t *testing.T) {
	c := NewController(nil)
	c.Dispatch(Event{Kind: EventFilePick, Files: []types.FileMeta{validFile()}})

	bad := types.FileMeta{Name: "photo.png", MIMEType: "image/png", ByteSize: 1024}
	out := c.Dispatch(Event{Kind: EventFilePick, Files: []types.FileMeta{bad}})
	if out.Selected {
		t.Fatal("invalid file must not be selected")
	}

	file, ok := c.ActiveFile()
	if !ok || file.Name != "resume.pdf" {
		t.Errorf("previous selection must survive a rejected candidate, got %v ok=%v", file, ok)
	}
}

func TestDispatchEmptyDrop(t *testing.T) {
	c := NewController(nil)
	out := c.Dispatch(Event{Kind: EventDrop})
	if out.Selected || out.Notice != "" {
		t.Errorf("empty drop must be a no-op, got %+v", out)
	}
}

func TestAnalyzeRequestedWithoutFile(t *testing.T) {
	c := NewController(nil)
	out := c.Dispatch(Event{Kind: EventAnalyzeRequested})
	if out.Notice != MsgNoFileSelected {
		t.Errorf("expected notice %q, got %q", MsgNoFileSelected, out.Notice)
	}
}

func TestBeginAnalysisPreconditions(t *testing.T) {
	c := NewController(nil)

	// No file selected
	_, err := c.BeginAnalysis()
	if err == nil {
		t.Fatal("expected error without a selected file")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeNoFileSelected {
		t.Errorf("expected %s, got %v", errors.ErrCodeNoFileSelected, err)
	}

	// Second trigger while in flight
	c.Dispatch(Event{Kind: EventFilePick, Files: []types.FileMeta{validFile()}})
	if _, err := c.BeginAnalysis(); err != nil {
		t.Fatalf("first BeginAnalysis failed: %v", err)
	}
	_, err = c.BeginAnalysis()
	if err == nil {
		t.Fatal("expected error while analysis is in flight")
	}
	appErr, ok = err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeAnalysisBusy {
		t.Errorf("expected %s, got %v", errors.ErrCodeAnalysisBusy, err)
	}
}

func TestBeginAnalysisDisablesAction(t *testing.T) {
	c := NewController(nil)
	c.Dispatch(Event{Kind: EventFilePick, Files: []types.FileMeta{validFile()}})

	if _, err := c.BeginAnalysis(); err != nil {
		t.Fatalf("BeginAnalysis failed: %v", err)
	}

	if c.State() != types.StateAnalyzing {
		t.Errorf("expected state %q, got %q", types.StateAnalyzing, c.State())
	}
	enabled, label := c.Action()
	if enabled {
		t.Error("action must be disabled while analyzing")
	}
	if label != ActionLabelBusy {
		t.Errorf("expected label %q, got %q", ActionLabelBusy, label)
	}
}

func TestFinishAnalysisRestoresAction(t *testing.T) {
	tests := []struct {
		name      string
		success   bool
		wantState types.WorkflowState
	}{
		{"success", true, types.StateResultReady},
		{"failure", false, types.StateFileSelected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(nil)
			c.Dispatch(Event{Kind: EventFilePick, Files: []types.FileMeta{validFile()}})
			if _, err := c.BeginAnalysis(); err != nil {
				t.Fatalf("BeginAnalysis failed: %v", err)
			}

			c.FinishAnalysis(tt.success)

			if c.State() != tt.wantState {
				t.Errorf("expected state %q, got %q", tt.wantState, c.State())
			}
			enabled, label := c.Action()
			if !enabled {
				t.Error("action must be re-enabled after analysis ends")
			}
			if label != ActionLabelReady {
				t.Errorf("expected label %q, got %q", ActionLabelReady, label)
			}

			// A new run can start after either outcome
			if _, err := c.BeginAnalysis(); err != nil {
				t.Errorf("expected a new analysis to start, got %v", err)
			}
		})
	}
}
