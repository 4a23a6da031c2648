package generate

import "sort"

// SideFiles accumulates the auxiliary files of a run in memory. Nothing
// touches the filesystem until Result.Write flushes them.
type SideFiles struct {
	order   []string
	content map[string]string
}

// NewSideFiles creates an empty accumulator.
func NewSideFiles() *SideFiles {
	return &SideFiles{content: make(map[string]string)}
}

// Write replaces the content of name.
func (s *SideFiles) Write(name, content string) {
	if _, ok := s.content[name]; !ok {
		s.order = append(s.order, name)
	}
	s.content[name] = content
}

// Reset truncates name.
func (s *SideFiles) Reset(name string) {
	s.Write(name, "")
}

// Append adds content to the end of name, creating it when needed.
func (s *SideFiles) Append(name, content string) {
	s.Write(name, s.content[name]+content)
}

// Get returns the content of name.
func (s *SideFiles) Get(name string) (string, bool) {
	c, ok := s.content[name]
	return c, ok
}

// Names returns the file names in order of first write.
func (s *SideFiles) Names() []string {
	return append([]string(nil), s.order...)
}

// Sorted returns the file names sorted.
func (s *SideFiles) Sorted() []string {
	names := s.Names()
	sort.Strings(names)
	return names
}

// Len returns the number of files.
func (s *SideFiles) Len() int {
	return len(s.order)
}
