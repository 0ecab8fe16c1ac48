package domain

// FileError pairs a filename with the error that affected it.
type FileError struct {
	Name string
	Err  error
}

// BatchResult is the outcome of a best-effort multi-file operation.
// The batch continues past individual failures; callers inspect Failed
// rather than receiving an error for partial success.
type BatchResult struct {
	Succeeded []string
	Failed    []FileError
}

// Count returns the number of files the batch processed successfully.
func (r BatchResult) Count() int {
	return len(r.Succeeded)
}

// OK reports whether every file in the batch succeeded.
func (r BatchResult) OK() bool {
	return len(r.Failed) == 0
}

// RestoreResult is the outcome of restoring specific files from backup.
// Missing lists files with no recorded backup; Failed lists copy errors.
type RestoreResult struct {
	Restored []string
	Missing  []string
	Failed   []FileError
}

// OK reports whether every requested file was restored.
func (r RestoreResult) OK() bool {
	return len(r.Missing) == 0 && len(r.Failed) == 0
}

// Err converts a failed restore into a RestoreError, or nil when OK.
func (r RestoreResult) Err() error {
	if r.OK() {
		return nil
	}
	return &RestoreError{Missing: r.Missing, Failed: r.Failed}
}
