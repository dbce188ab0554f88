package rubyclient

import (
	"strings"
	"testing"
)

func TestCodeWriterBalancedBlocks(test *testing.T) {
	w := NewCodeWriter("foo.rb")
	w.OpenBlock("class Foo", "end")
	w.Write("attr_reader :bar")
	w.OpenBlock("def initialize", "end")
	w.Write("@bar = 1")
	w.CloseBlock()
	w.CloseBlock()
	text, err := w.Finalize()
	if err != nil {
		test.Errorf("%v", err)
	}
	if !strings.Contains(text, "class Foo") || !strings.Contains(text, "end") {
		test.Errorf("unexpected output: %q", text)
	}
}

func TestCodeWriterUnbalancedBlock(test *testing.T) {
	w := NewCodeWriter("foo.rb")
	w.OpenBlock("class Foo", "end")
	_, err := w.Finalize()
	if err == nil {
		test.Errorf("expected UnbalancedBlockError, got nil")
	}
	if _, ok := err.(*UnbalancedBlockError); !ok {
		test.Errorf("expected *UnbalancedBlockError, got %T", err)
	}
}

func TestCodeWriterIndentation(test *testing.T) {
	w := NewCodeWriter("foo.rb")
	w.OpenBlock("module M", "end")
	w.Write("x = 1")
	w.CloseBlock()
	text := w.Text()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if lines[0] != "module M" {
		test.Errorf("expected unindented block opener, got %q", lines[0])
	}
	if lines[1] != "  x = 1" {
		test.Errorf("expected one level of indent, got %q", lines[1])
	}
	if lines[2] != "end" {
		test.Errorf("expected unindented closer, got %q", lines[2])
	}
}

func TestCodeWriterWriteNamed(test *testing.T) {
	w := NewCodeWriter("foo.rb")
	w.WriteNamed("puts $GREETING, $NAME", map[string]string{"GREETING": "hello", "NAME": "world"})
	text := w.Text()
	if strings.TrimSpace(text) != `puts hello, world` {
		test.Errorf("unexpected interpolation result: %q", text)
	}
}

func TestCodeWriterWriteNamedLeavesUnresolved(test *testing.T) {
	w := NewCodeWriter("foo.rb")
	w.WriteNamed("puts $MISSING", map[string]string{})
	text := w.Text()
	if !strings.Contains(text, "$MISSING") {
		test.Errorf("expected unresolved placeholder left verbatim, got %q", text)
	}
}

func TestCodeWriterCloseBlockWithNothingOpen(test *testing.T) {
	w := NewCodeWriter("foo.rb")
	w.CloseBlock()
	_, err := w.Finalize()
	if err == nil {
		test.Errorf("expected an error from an unbalanced close with nothing open")
	}
}
