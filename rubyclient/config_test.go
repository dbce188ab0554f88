package rubyclient

import (
	"strings"
	"testing"
)

func TestGenerateConfigDedupesAndAppliesDefaults(test *testing.T) {
	ctx := &GenContext{Stack: NewMiddlewareStack()}
	ctx.Stack.Register(&MiddlewareRecord{
		Klass: "Retry",
		ClientConfig: []ConfigKey{
			{Name: "retries", Type: "Integer", Default: "3"},
			{Name: "http_wire_trace", Type: "boolean", Default: "true"},
		},
	})
	w := NewCodeWriter("config.rb")
	GenerateConfig(ctx, w, []ConfigKey{{Name: "region", Type: "String", Default: `"us-east-1"`}})
	text := w.Text()

	if !strings.Contains(text, ":logger") || !strings.Contains(text, ":endpoint") {
		test.Errorf("expected base config keys to be included, got:\n%s", text)
	}
	if !strings.Contains(text, ":retries") {
		test.Errorf("expected middleware-contributed config key, got:\n%s", text)
	}
	if !strings.Contains(text, ":region") {
		test.Errorf("expected extra config key, got:\n%s", text)
	}
	if strings.Count(text, ":http_wire_trace") != 1 {
		test.Errorf("expected http_wire_trace to appear exactly once (base wins over middleware), got:\n%s", text)
	}
	if !strings.Contains(text, `self.retries ||= 3`) {
		test.Errorf("expected a default assignment for retries, got:\n%s", text)
	}
	if !strings.Contains(text, `self.region ||= "us-east-1"`) {
		test.Errorf("expected a default assignment for region, got:\n%s", text)
	}
}
