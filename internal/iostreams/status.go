package iostreams

import "fmt"

// Info prints a blue status line to stdout.
func (s *IOStreams) Info(format string, args ...any) {
	cs := s.ColorScheme()
	fmt.Fprintln(s.Out, cs.Blue(fmt.Sprintf(format, args...)))
}

// Success prints a green status line followed by a blank line to stdout.
func (s *IOStreams) Success(format string, args ...any) {
	cs := s.ColorScheme()
	fmt.Fprintf(s.Out, "%s %s\n\n", cs.SuccessIcon(), cs.Green(fmt.Sprintf(format, args...)))
}

// Warning prints a warning line to stderr.
func (s *IOStreams) Warning(format string, args ...any) {
	cs := s.ColorScheme()
	fmt.Fprintf(s.ErrOut, "%s %s\n", cs.WarningIcon(), fmt.Sprintf(format, args...))
}

// Failure prints an error line to stderr.
func (s *IOStreams) Failure(format string, args ...any) {
	cs := s.ColorScheme()
	fmt.Fprintf(s.ErrOut, "%s %s\n", cs.FailureIcon(), fmt.Sprintf(format, args...))
}
