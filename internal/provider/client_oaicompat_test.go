package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"vidscribe/internal/catalog"
)

func compatServer(t *testing.T, handler func(w http.ResponseWriter, req chatRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		handler(w, req)
	}))
}

func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func testCompatHandle(baseURL string, support schemaSupport) *oaiCompatHandle {
	return &oaiCompatHandle{
		vendor:        catalog.VendorGroq,
		modelID:       "llama-3.1-8b-instant",
		model:         "llama-3.1-8b-instant",
		apiKey:        "test-key",
		baseURL:       baseURL,
		schemaSupport: support,
		httpClient:    http.DefaultClient,
		log:           zap.NewNop(),
	}
}

func TestOAICompat_TextMode(t *testing.T) {
	srv := compatServer(t, func(w http.ResponseWriter, req chatRequest) {
		if req.ResponseFormat != nil {
			t.Error("text mode must not set response_format")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		w.Write([]byte(completionBody("  plain answer  ")))
	})
	defer srv.Close()

	out, err := testCompatHandle(srv.URL, schemaJSON).Generate(context.Background(),
		Request{System: "sys", User: "hello"}, ModeText)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Text != "plain answer" || out.Object != nil {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestOAICompat_StructuredMode_StrictSchema(t *testing.T) {
	srv := compatServer(t, func(w http.ResponseWriter, req chatRequest) {
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_schema" {
			t.Errorf("response_format = %+v, want json_schema", req.ResponseFormat)
		} else if req.ResponseFormat.JSONSchema == nil || !req.ResponseFormat.JSONSchema.Strict {
			t.Errorf("json_schema spec = %+v", req.ResponseFormat.JSONSchema)
		}
		w.Write([]byte(completionBody(`{"title":"T","content":"C"}`)))
	})
	defer srv.Close()

	out, err := testCompatHandle(srv.URL, schemaStrict).Generate(context.Background(),
		Request{User: "go", Schema: BlogContentSchema(), SchemaName: "BlogContent"}, ModeStructured)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Object == nil || out.Object["title"] != "T" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestOAICompat_StructuredMode_JSONMode(t *testing.T) {
	srv := compatServer(t, func(w http.ResponseWriter, req chatRequest) {
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("response_format = %+v, want json_object", req.ResponseFormat)
		}
		w.Write([]byte(completionBody(`{"title":"T","content":"C"}`)))
	})
	defer srv.Close()

	out, err := testCompatHandle(srv.URL, schemaJSON).Generate(context.Background(),
		Request{User: "go", Schema: BlogContentSchema()}, ModeStructured)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Object == nil {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestOAICompat_StructuredMode_NonJSONFallsToText(t *testing.T) {
	srv := compatServer(t, func(w http.ResponseWriter, req chatRequest) {
		w.Write([]byte(completionBody("sorry, here is prose")))
	})
	defer srv.Close()

	out, err := testCompatHandle(srv.URL, schemaStrict).Generate(context.Background(),
		Request{User: "go", Schema: BlogContentSchema()}, ModeStructured)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Object != nil || out.Text != "sorry, here is prose" {
		t.Errorf("unexpected output: %+v", out)
	}
}

func TestOAICompat_APIError(t *testing.T) {
	srv := compatServer(t, func(w http.ResponseWriter, req chatRequest) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	})
	defer srv.Close()

	_, err := testCompatHandle(srv.URL, schemaJSON).Generate(context.Background(),
		Request{User: "go"}, ModeText)
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestOAICompat_ErrorEnvelope(t *testing.T) {
	srv := compatServer(t, func(w http.ResponseWriter, req chatRequest) {
		w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
	})
	defer srv.Close()

	_, err := testCompatHandle(srv.URL, schemaJSON).Generate(context.Background(),
		Request{User: "go"}, ModeText)
	if err == nil {
		t.Fatal("expected error from error envelope")
	}
}

func TestOAICompat_EmptyChoices(t *testing.T) {
	srv := compatServer(t, func(w http.ResponseWriter, req chatRequest) {
		w.Write([]byte(`{"choices":[]}`))
	})
	defer srv.Close()

	_, err := testCompatHandle(srv.URL, schemaJSON).Generate(context.Background(),
		Request{User: "go"}, ModeText)
	if err == nil {
		t.Fatal("expected error on empty choices")
	}
}
