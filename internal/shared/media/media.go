// Package media describes uploaded files passed from transport to usecases.
package media

import (
	"io"
	"path"
	"strings"
)

// File is an uploaded file. Body is owned by the caller and closed after the usecase returns.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Ext returns the lower-cased extension of the original filename, including the dot.
func (f *File) Ext() string {
	return strings.ToLower(path.Ext(f.Filename))
}
