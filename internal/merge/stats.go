package merge

import "fmt"

// Stats summarizes one merge.
//
// TotalFiles counts every input, skipped or not. TotalPages, MaxPages and
// FileWithMostPages only account for inputs whose pages are in the output.
type Stats struct {
	TotalFiles        int
	TotalPages        int
	FileWithMostPages string // base name; first seen wins on ties
	MaxPages          int
	CombinedSize      int64 // bytes of the written document
	FileSizes         []FileSize
	Skipped           []Skipped
}

// FileSize records the size of one merged input.
type FileSize struct {
	Name string // base name
	Size int64  // bytes
}

// Skipped records an input left out of the combined document.
type Skipped struct {
	Path string
	Err  error
}

// record accounts for an input whose pages were appended.
// Strict comparison keeps the first input on ties.
func (s Stats) record(name string, pages int, size int64) Stats {
	s.TotalPages += pages
	if pages > s.MaxPages {
		s.MaxPages = pages
		s.FileWithMostPages = name
	}
	s.FileSizes = append(s.FileSizes[:len(s.FileSizes):len(s.FileSizes)], FileSize{Name: name, Size: size})
	return s
}

// CombinedSizeMB formats CombinedSize as megabytes with two decimals.
func (s *Stats) CombinedSizeMB() string {
	return fmt.Sprintf("%.2f MB", float64(s.CombinedSize)/1024/1024)
}

// String formats a file size as kilobytes with two decimals.
func (f FileSize) String() string {
	return fmt.Sprintf("%s (%.2f KB)", f.Name, float64(f.Size)/1024)
}
