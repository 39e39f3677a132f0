package gather

import (
	"github.com/google/uuid"
)

// Cell is one unit of user code with its execution identity
type Cell interface {
	// ID identifies the cell in its current document; it may change across reloads
	ID() string
	// PersistentID identifies the same cell slot across reloads
	PersistentID() string
	// ExecutionEventID identifies one physical execution of the cell
	ExecutionEventID() string
	// ExecutionCount returns the counter assigned by the execution environment, if known
	ExecutionCount() (int, bool)
	Text() string
	Outputs() []string
	HasError() bool
	// Gathered is true for cells produced by gathering code
	Gathered() bool
	// Dirty is true when the text differs from the text last executed
	Dirty() bool
	// DeepCopy returns an independent snapshot of the cell
	DeepCopy() Cell
	// CopyToNewCell returns a fresh cell with the same text and no execution identity
	CopyToNewCell() Cell
}

// NotebookCell is an in-memory Cell
type NotebookCell struct {
	id               string
	persistentID     string
	executionEventID string
	executionCount   int
	hasCount         bool
	text             string
	outputs          []string
	hasError         bool
	gathered         bool
	executedText     uint64
}

// CellOption configures a NotebookCell
type CellOption func(c *NotebookCell)

// WithCellID sets the cell id
func WithCellID(id string) CellOption {
	return func(c *NotebookCell) {
		c.id = id
	}
}

// WithPersistentID sets the persistent id
func WithPersistentID(id string) CellOption {
	return func(c *NotebookCell) {
		c.persistentID = id
	}
}

// WithExecutionEventID sets the execution event id
func WithExecutionEventID(id string) CellOption {
	return func(c *NotebookCell) {
		c.executionEventID = id
	}
}

// WithExecutionCount sets the execution count
func WithExecutionCount(count int) CellOption {
	return func(c *NotebookCell) {
		c.executionCount = count
		c.hasCount = true
	}
}

// WithOutputs sets the cell outputs
func WithOutputs(outputs ...string) CellOption {
	return func(c *NotebookCell) {
		c.outputs = outputs
	}
}

// WithError marks the cell execution as failed
func WithError(hasError bool) CellOption {
	return func(c *NotebookCell) {
		c.hasError = hasError
	}
}

// WithGathered marks the cell as produced by gathering code
func WithGathered(gathered bool) CellOption {
	return func(c *NotebookCell) {
		c.gathered = gathered
	}
}

// NewCell creates a cell executed with text. Ids default to random UUIDs; the persistent id
// defaults to the cell id.
func NewCell(text string, options ...CellOption) *NotebookCell {
	ret := &NotebookCell{text: text, executedText: textFingerprint(text)}
	for _, opt := range options {
		opt(ret)
	}
	if ret.id == "" {
		ret.id = uuid.NewString()
	}
	if ret.persistentID == "" {
		ret.persistentID = ret.id
	}
	if ret.executionEventID == "" {
		ret.executionEventID = uuid.NewString()
	}
	return ret
}

func (c *NotebookCell) ID() string { return c.id }

func (c *NotebookCell) PersistentID() string { return c.persistentID }

func (c *NotebookCell) ExecutionEventID() string { return c.executionEventID }

func (c *NotebookCell) ExecutionCount() (int, bool) { return c.executionCount, c.hasCount }

func (c *NotebookCell) Text() string { return c.text }

func (c *NotebookCell) Outputs() []string { return c.outputs }

func (c *NotebookCell) HasError() bool { return c.hasError }

func (c *NotebookCell) Gathered() bool { return c.gathered }

func (c *NotebookCell) Dirty() bool {
	return textFingerprint(c.text) != c.executedText
}

// SetText edits the cell text
func (c *NotebookCell) SetText(text string) {
	c.text = text
}

// MarkExecuted records a new execution of the current text and returns its execution event id
func (c *NotebookCell) MarkExecuted(count int, hasError bool) string {
	c.executionEventID = uuid.NewString()
	c.executionCount = count
	c.hasCount = true
	c.hasError = hasError
	c.executedText = textFingerprint(c.text)
	return c.executionEventID
}

func (c *NotebookCell) DeepCopy() Cell {
	clone := *c
	if c.outputs != nil {
		clone.outputs = append([]string(nil), c.outputs...)
	}
	return &clone
}

func (c *NotebookCell) CopyToNewCell() Cell {
	id := uuid.NewString()
	return &NotebookCell{
		id:           id,
		persistentID: id,
		text:         c.text,
		gathered:     true,
		executedText: c.executedText,
	}
}
