// Package dbg provides an injectable diagnostic sink for the triangulation
// core, replacing the reference implementation's compile-time kVerbose and
// kWarning globals with a value the caller constructs and owns. A nil *Sink
// is valid everywhere and behaves as a no-op, so callers that don't care
// about diagnostics never have to construct one.
package dbg

import (
	"fmt"
	"io"
	"strings"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"
)

func init() {
	// Names are generated lazily and memoized per-Sink run, so making them
	// nondeterministic just reminds a reader not to expect the same label to
	// mean the same vertex between runs.
	petname.NonDeterministicMode()
}

// Sink collects everything Triangulate and its internal stages want to tell
// a caller who asked for diagnostics: a per-Sink correlation id, readable
// names for otherwise-opaque vertex indices, and colored trace/warning
// lines. Every method is nil-safe.
type Sink struct {
	Verbose bool
	Warn    bool
	out     io.Writer
	runID   string
	names   map[interface{}]string
}

// NewSink constructs a Sink that writes to out. verbose enables Tracef;
// warn enables Warnf. Each Sink gets its own correlation id, so diagnostic
// output from Triangulate calls that were given different Sinks can be told
// apart; calls that share one Sink share its id.
func NewSink(out io.Writer, verbose, warn bool) *Sink {
	return &Sink{
		Verbose: verbose,
		Warn:    warn,
		out:     out,
		runID:   uuid.NewString()[:8],
		names:   make(map[interface{}]string),
	}
}

// Name turns an arbitrary key (typically a sweep-vertex index, but any
// comparable value works) into a stable, readable label for the lifetime of
// this Sink.
func (s *Sink) Name(key interface{}) string {
	if s == nil {
		return fmt.Sprint(key)
	}
	if r, ok := s.names[key]; ok {
		return r
	}
	r := strings.Title(petname.Adjective()) + strings.Title(petname.Name())
	s.names[key] = r
	return r
}

// Tracef writes a cyan-tagged trace line when Verbose is set.
func (s *Sink) Tracef(format string, args ...interface{}) {
	if s == nil || !s.Verbose {
		return
	}
	fmt.Fprintf(s.out, "[%s] %s\n", aurora.Cyan(s.runID), fmt.Sprintf(format, args...))
}

// Warnf writes a yellow-tagged, red-bodied warning line when Warn is set.
// This is the direct replacement for the reference's
// PrintTriangulationWarning: Triangulate calls it when it falls back from
// the primary triangulator to the backup, and again if the backup also
// fails validation.
func (s *Sink) Warnf(format string, args ...interface{}) {
	if s == nil || !s.Warn {
		return
	}
	fmt.Fprintf(s.out, "[%s] %s\n", aurora.Yellow(s.runID), aurora.Red(fmt.Sprintf(format, args...)))
}

// DumpPolygons pretty-prints an arbitrary polygon-shaped value when Verbose
// is set, the replacement for the reference's Dump() std::cout dumper.
func (s *Sink) DumpPolygons(label string, polys interface{}) {
	if s == nil || !s.Verbose {
		return
	}
	fmt.Fprintf(s.out, "[%s] %s:\n%s\n", aurora.Cyan(s.runID), label, pretty.Sprint(polys))
}
