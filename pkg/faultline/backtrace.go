// backtrace.go parses raw textual stack traces into structured frames.

package faultline

import (
	"fmt"
	"regexp"
	"strconv"
)

// ParseError reports a backtrace line that no frame pattern could match.
// It aborts the whole parse; a backtrace with one malformed line is treated
// as wholly unparsable.
type ParseError struct {
	// Line is the offending raw backtrace line.
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("can't parse stack frame: %q", e.Line)
}

// Frame patterns, tried in order per line (first match wins).
var (
	// nativeFramePattern matches interpreter frames: /app/foo.rb:10:in `bar'
	nativeFramePattern = regexp.MustCompile(`\A(?P<file>.+):(?P<line>\d+):in .(?P<function>.*).\z`)

	// foreignFramePattern matches foreign-VM frames produced by a hosting
	// runtime: org.jruby.ast.Foo.interpret(Foo.java:42)
	foreignFramePattern = regexp.MustCompile(`\A(?P<function>.+)\((?P<file>[^:]+):?(?P<line>\d+)?\)\z`)

	// genericFramePattern recovers partial information from synthetic or
	// manually-set traces: file, file:10, file:10:in `fn'
	genericFramePattern = regexp.MustCompile(`\A(?:from )?(?P<file>[^:\s]+)(?::(?P<line>\d+))?(?::in .(?P<function>.*).)?\z`)
)

// ParseBacktrace converts raw stack-trace lines into structured frames.
//
// foreignRuntime selects the foreign-VM frame pattern over the native one;
// it is a per-exception capability check ("did this come from the hosting
// VM"), not a per-line decision. The generic pattern is always tried as a
// fallback. Empty input yields an empty result.
//
// The first line no pattern matches aborts the parse with *ParseError.
func ParseBacktrace(lines []string, foreignRuntime bool) ([]StackFrame, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	primary := nativeFramePattern
	if foreignRuntime {
		primary = foreignFramePattern
	}

	frames := make([]StackFrame, 0, len(lines))
	for _, line := range lines {
		frame, ok, err := matchFrame(primary, line)
		if err != nil {
			return nil, err
		}
		if !ok {
			frame, ok, err = matchFrame(genericFramePattern, line)
			if err != nil {
				return nil, err
			}
		}
		if !ok {
			return nil, &ParseError{Line: line}
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// matchFrame applies one pattern to a line, building a frame from the named
// captures. A non-numeric line capture is a parser bug, surfaced as an error
// rather than skipped.
func matchFrame(pattern *regexp.Regexp, line string) (StackFrame, bool, error) {
	match := pattern.FindStringSubmatch(line)
	if match == nil {
		return StackFrame{}, false, nil
	}

	frame := StackFrame{
		File:     match[pattern.SubexpIndex("file")],
		Function: match[pattern.SubexpIndex("function")],
	}

	if captured := match[pattern.SubexpIndex("line")]; captured != "" {
		n, err := strconv.Atoi(captured)
		if err != nil {
			return StackFrame{}, false, fmt.Errorf("invalid line number %q in frame %q: %w", captured, line, err)
		}
		frame.Line = n
	}

	return frame, true, nil
}
