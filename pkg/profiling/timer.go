// Package profiling records nested timing spans and prints them as a tree.
package profiling

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Stopper ends a timed span.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	profiler *Profiler
}

func (s *span) Stop() {
	s.profiler.endSpan(s, time.Since(s.start))
}

// Profiler records a tree of timing spans. A nil or disabled Profiler records
// nothing, so callers never need to check before timing.
type Profiler struct {
	mu        sync.Mutex
	enabled   bool
	root      *span
	spanStack []*span
}

// New returns an enabled profiler whose clock starts now.
func New() *Profiler {
	p := &Profiler{enabled: true}
	p.root = &span{name: "root", start: time.Now(), profiler: p}
	p.spanStack = []*span{p.root}
	return p
}

// Disabled returns a profiler that records nothing.
func Disabled() *Profiler {
	return &Profiler{}
}

// Enabled reports whether spans are being recorded.
func (p *Profiler) Enabled() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Start begins a span nested under the innermost open span. End it with Stop,
// typically via defer.
func (p *Profiler) Start(name string) Stopper {
	if p == nil {
		return noopStopper{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return noopStopper{}
	}

	parent := p.spanStack[len(p.spanStack)-1]
	s := &span{name: name, start: time.Now(), profiler: p}
	parent.children = append(parent.children, s)
	p.spanStack = append(p.spanStack, s)
	return s
}

// Time runs fn inside a span called name.
func (p *Profiler) Time(name string, fn func()) {
	s := p.Start(name)
	defer s.Stop()
	fn()
}

func (p *Profiler) endSpan(s *span, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s.duration = d
	for i := len(p.spanStack) - 1; i > 0; i-- {
		if p.spanStack[i] == s {
			p.spanStack = p.spanStack[:i]
			return
		}
	}
}

// Summarize prints the span tree with each span's share of the total time.
func (p *Profiler) Summarize(w io.Writer) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.root == nil {
		return
	}

	total := p.root.duration
	if total == 0 {
		total = time.Since(p.root.start)
	}

	fmt.Fprintln(w, "\n--- Timing Profile ---")
	printSpan(w, p.root, 0, total)
	fmt.Fprintln(w, "--------------------")
}

func printSpan(w io.Writer, s *span, depth int, total time.Duration) {
	if s.name != "root" {
		percentage := 0.0
		if total > 0 {
			percentage = (float64(s.duration) / float64(total)) * 100
		}
		fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n", strings.Repeat("  ", depth-1), s.name, s.duration.Round(100*time.Microsecond), percentage)
	}

	children := append([]*span(nil), s.children...)
	sort.Slice(children, func(i, j int) bool {
		return children[i].start.Before(children[j].start)
	})
	for _, child := range children {
		printSpan(w, child, depth+1, total)
	}
}

type noopStopper struct{}

func (noopStopper) Stop() {}
