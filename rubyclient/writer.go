/*
Copyright 2021 Lee R. Boynton

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package rubyclient

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

const IndentAmount = "  "

// UnbalancedBlockError means a CodeWriter was finalized, or abandoned on an
// error path, with open_block calls that were never matched by close_block.
// It always indicates a generator bug, never a bad model.
type UnbalancedBlockError struct {
	File string
	Open []string
}

func (e *UnbalancedBlockError) Error() string {
	return fmt.Sprintf("unbalanced code block in %s: %d block(s) still open: %v", e.File, len(e.Open), e.Open)
}

// CodeWriter is a line-oriented text accumulator: one writer produces one
// file. It tracks an indent stack and a stack of pending close strings so
// open_block/close_block calls must balance on every exit path; Finalize
// checks that invariant before handing text to the FileManifest.
type CodeWriter struct {
	file    string
	buf     bytes.Buffer
	writer  *bufio.Writer
	indent  int
	closers []string
}

func NewCodeWriter(file string) *CodeWriter {
	w := &CodeWriter{file: file}
	w.writer = bufio.NewWriter(&w.buf)
	return w
}

func (w *CodeWriter) pad() string {
	return strings.Repeat(IndentAmount, w.indent)
}

// Write emits one formatted, indented line terminated with a newline.
func (w *CodeWriter) Write(format string, args ...interface{}) *CodeWriter {
	w.writer.WriteString(w.pad())
	w.writer.WriteString(fmt.Sprintf(format, args...))
	w.writer.WriteString("\n")
	return w
}

// WriteInline emits text with no indentation and no trailing newline, for
// composing a line from multiple fragments.
func (w *CodeWriter) WriteInline(format string, args ...interface{}) *CodeWriter {
	w.writer.WriteString(fmt.Sprintf(format, args...))
	return w
}

// Blank emits an empty line.
func (w *CodeWriter) Blank() *CodeWriter {
	w.writer.WriteString("\n")
	return w
}

// WriteNamed substitutes $NAME-style placeholders bound in args, then
// writes the result as one indented line. Unresolved placeholders are left
// verbatim so a missing binding is visible in the output instead of being
// silently dropped.
func (w *CodeWriter) WriteNamed(template string, args map[string]string) *CodeWriter {
	return w.Write("%s", interpolateNamed(template, args))
}

func interpolateNamed(template string, args map[string]string) string {
	s := template
	for name, val := range args {
		s = strings.ReplaceAll(s, "$"+name, val)
	}
	return s
}

// OpenBlock writes prefix as its own line, then indents subsequent writes
// one level. closer is pushed onto the pending-close stack and is what
// CloseBlock will emit to end this block (typically "end").
func (w *CodeWriter) OpenBlock(prefix string, closer string) *CodeWriter {
	w.Write("%s", prefix)
	w.indent++
	w.closers = append(w.closers, closer)
	return w
}

// CloseBlock pops the most recently opened block and writes its closer.
// Calling CloseBlock with no open block is a generator bug; it is recorded
// rather than panicking so Finalize can surface one UnbalancedBlockError
// for the whole file.
func (w *CodeWriter) CloseBlock() *CodeWriter {
	if len(w.closers) == 0 {
		w.closers = append(w.closers, "<CloseBlock called with nothing open>")
		return w
	}
	last := len(w.closers) - 1
	closer := w.closers[last]
	w.closers = w.closers[:last]
	w.indent--
	w.Write("%s", closer)
	return w
}

// Else writes an "else" line dedented to match the if/unless it continues,
// for a multi-branch block opened with OpenBlock(prefix, "end"): the
// branch bodies before and after Else stay at the block's indented level,
// only the "else" keyword itself sits one level out.
func (w *CodeWriter) Else() *CodeWriter {
	w.indent--
	w.Write("else")
	w.indent++
	return w
}

// CallOut invokes fn with this writer, for composing emitters that need to
// interleave writes from more than one generator into a single file.
func (w *CodeWriter) CallOut(fn func(*CodeWriter)) *CodeWriter {
	fn(w)
	return w
}

// Finalize returns the accumulated text, failing with UnbalancedBlockError
// if any OpenBlock was never matched by a CloseBlock.
func (w *CodeWriter) Finalize() (string, error) {
	if err := w.writer.Flush(); err != nil {
		return "", err
	}
	if len(w.closers) > 0 {
		return "", &UnbalancedBlockError{File: w.file, Open: append([]string(nil), w.closers...)}
	}
	return w.buf.String(), nil
}

// Text returns whatever has been written so far without checking block
// balance. It exists for tests and for a writer that is still being
// composed by a caller that will check balance itself later.
func (w *CodeWriter) Text() string {
	_ = w.writer.Flush()
	return w.buf.String()
}

func (w *CodeWriter) File() string {
	return w.file
}
