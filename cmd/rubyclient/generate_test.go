package main

import (
	"testing"

	"github.com/boynton/smithyruby/rubyclient"
	"github.com/boynton/smithyruby/smithy"
)

func TestExitCodeForGenerateErrMapsKnownErrorTypes(test *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&smithy.ModelIntegrityError{ShapeId: "example#Thing"}, 2},
		{&rubyclient.ValidationError{Message: "bad input"}, 2},
		{&rubyclient.UnsupportedProtocolError{ServiceId: "example#Svc", Protocol: "example#unknown"}, 3},
		{&rubyclient.UnbalancedBlockError{File: "types.rb"}, 4},
		{&rubyclient.ManifestConflictError{Path: "types.rb"}, 4},
		{&rubyclient.LabelBindingError{Operation: "example#GetThing", Label: "id"}, 2},
	}
	for _, c := range cases {
		if got := exitCodeForGenerateErr(c.err); got != c.want {
			test.Errorf("exitCodeForGenerateErr(%T) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestExitCodeForGenerateErrDefaultsToModelError(test *testing.T) {
	if got := exitCodeForGenerateErr(errUnmapped{}); got != 2 {
		test.Errorf("exitCodeForGenerateErr(unmapped) = %d, want 2", got)
	}
}

type errUnmapped struct{}

func (errUnmapped) Error() string { return "unmapped" }
