package rubyclient

import (
	"encoding/json"
	"testing"

	"github.com/boynton/smithyruby/smithy"
)

const transportModel = `{
  "smithy": "2.0",
  "shapes": {
    "example#Svc": {
      "type": "service",
      "version": "2020-01-01",
      "operations": [
        { "target": "example#PutBlob" },
        { "target": "example#PutEventStream" },
        { "target": "example#Checksummed" }
      ]
    },
    "example#PutBlob": {
      "type": "operation",
      "input": { "target": "example#PutBlobInput" }
    },
    "example#PutBlobInput": {
      "type": "structure",
      "members": {
        "body": {
          "target": "smithy.api#Blob",
          "traits": { "smithy.api#httpPayload": {} }
        }
      }
    },
    "example#PutEventStream": {
      "type": "operation",
      "input": { "target": "example#PutEventStreamInput" }
    },
    "example#PutEventStreamInput": {
      "type": "structure",
      "members": {
        "events": {
          "target": "example#EventStream",
          "traits": { "smithy.api#httpPayload": {} }
        }
      }
    },
    "example#EventStream": {
      "type": "union",
      "traits": { "smithy.api#streaming": {} },
      "members": {
        "chunk": { "target": "smithy.api#String" }
      }
    },
    "example#Checksummed": {
      "type": "operation",
      "traits": { "smithy.api#httpChecksumRequired": {} },
      "input": { "target": "example#ChecksummedInput" }
    },
    "example#ChecksummedInput": {
      "type": "structure",
      "members": {
        "body": { "target": "smithy.api#String" }
      }
    }
  }
}`

func loadTransportAST(test *testing.T) *smithy.AST {
	var ast smithy.AST
	if err := json.Unmarshal([]byte(transportModel), &ast); err != nil {
		test.Fatalf("failed to parse fixture model: %v", err)
	}
	return &ast
}

func findMiddleware(records []*MiddlewareRecord, klass string) *MiddlewareRecord {
	for _, r := range records {
		if r.Klass == klass {
			return r
		}
	}
	return nil
}

func TestDefaultMiddlewareSkipsContentLengthForEventStreaming(test *testing.T) {
	ast := loadTransportAST(test)
	records := DefaultMiddleware(ast, "example#Svc")
	rec := findMiddleware(records, "ContentLength")
	if rec == nil {
		test.Fatalf("expected a ContentLength middleware record")
	}
	if rec.OperationPredicate == nil {
		test.Fatalf("expected ContentLength to carry an operation predicate")
	}
	if rec.OperationPredicate("example#Svc", "example#PutEventStream") {
		test.Errorf("expected ContentLength to be skipped for an event-streaming payload")
	}
	if !rec.OperationPredicate("example#Svc", "example#PutBlob") {
		test.Errorf("expected ContentLength to apply to a plain blob payload")
	}
}

func TestDefaultMiddlewareGatesContentMD5OnChecksumTrait(test *testing.T) {
	ast := loadTransportAST(test)
	records := DefaultMiddleware(ast, "example#Svc")
	rec := findMiddleware(records, "ContentMD5")
	if rec == nil {
		test.Fatalf("expected a ContentMD5 middleware record")
	}
	if !rec.OperationPredicate("example#Svc", "example#Checksummed") {
		test.Errorf("expected ContentMD5 to apply to an operation with httpChecksumRequired")
	}
	if rec.OperationPredicate("example#Svc", "example#PutBlob") {
		test.Errorf("expected ContentMD5 to be skipped for an operation without httpChecksumRequired")
	}
}

func TestIsEventStreamingRequiresUnionTarget(test *testing.T) {
	ast := loadTransportAST(test)
	if !isEventStreaming(ast, "example#PutEventStreamInput", "events") {
		test.Errorf("expected events member (streaming union) to be detected as event streaming")
	}
	if isEventStreaming(ast, "example#PutBlobInput", "body") {
		test.Errorf("expected a plain blob member to not be event streaming")
	}
}

func TestDefaultMiddlewareOrdersBuildInSerializeStep(test *testing.T) {
	ast := loadTransportAST(test)
	records := DefaultMiddleware(ast, "example#Svc")
	rec := findMiddleware(records, "Build")
	if rec == nil {
		test.Fatalf("expected a Build middleware record")
	}
	if rec.Step != StepSerialize {
		test.Errorf("expected Build to run in the SERIALIZE step, got %v", rec.Step)
	}
	contentLength := findMiddleware(records, "ContentLength")
	if contentLength == nil || contentLength.Step != StepBuild {
		test.Errorf("expected ContentLength to stay in the BUILD step, got %v", contentLength)
	}
}

func TestBaseConfigKeysIncludesEndpointWithOperationOverride(test *testing.T) {
	keys := BaseConfigKeys()
	var endpoint *ConfigKey
	for i := range keys {
		if keys[i].Name == "endpoint" {
			endpoint = &keys[i]
		}
	}
	if endpoint == nil {
		test.Fatalf("expected an endpoint config key")
	}
	if !endpoint.AllowOperationOverride {
		test.Errorf("expected endpoint to allow per-operation override")
	}
}
