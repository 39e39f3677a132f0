package gather

import "time"

// CellExecution records one execution of a cell
type CellExecution struct {
	Cell          Cell
	ExecutionTime time.Time
}

// NewCellExecution snapshots cell executed at executionTime
func NewCellExecution(cell Cell, executionTime time.Time) *CellExecution {
	return &CellExecution{Cell: cell.DeepCopy(), ExecutionTime: executionTime}
}
