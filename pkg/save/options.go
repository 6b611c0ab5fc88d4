// Package save holds the options accepted when a roster is written out.
package save

import (
	"io"

	"github.com/agentstation/roster/pkg/constants"
)

// Options is the configuration for save.
type Options struct {
	path   string
	writer io.Writer
	indent int
}

// Path returns the path for the save options.
func (s *Options) Path() string {
	return s.path
}

// Writer returns the writer for the save options.
func (s *Options) Writer() io.Writer {
	return s.writer
}

// Indent returns the number of spaces used per nesting level.
// Zero means compact output.
func (s *Options) Indent() int {
	return s.indent
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		indent: constants.DefaultIndent,
	}
}

// Apply applies the given options to the save options.
func (s *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(s)
	}
	return *s
}

// Option is a function that configures save options.
type Option func(*Options)

// WithPath for filesystem saves.
func WithPath(path string) Option {
	return func(s *Options) {
		s.path = path
	}
}

// WithWriter for custom outputs. A writer takes precedence over a path.
func WithWriter(w io.Writer) Option {
	return func(s *Options) {
		s.writer = w
	}
}

// WithIndent sets the indent width. Values outside 0..MaxIndent are clamped.
func WithIndent(n int) Option {
	return func(s *Options) {
		switch {
		case n < 0:
			n = 0
		case n > constants.MaxIndent:
			n = constants.MaxIndent
		}
		s.indent = n
	}
}
