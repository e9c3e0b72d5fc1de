package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/tanpawarit/Chative-Commerce-Assistant/agent/contract"
)

func echoHandler(ctx context.Context, args map[string]any) contractx.ToolResult {
	return contractx.ToolResult{Content: StringArg(args, "query")}
}

func queryProps() []contractx.ToolProperty {
	return []contractx.ToolProperty{
		{Name: "query", Type: "string", Required: true},
		{Name: "limit", Type: "number", Required: false},
	}
}

func TestInvokeRunsHandlerOnValidArgs(t *testing.T) {
	t.Parallel()

	d := New("echo", "echoes the query", queryProps(), echoHandler)
	res := d.Invoke(context.Background(), map[string]any{"query": "hello"})
	if res.Failed() {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if res.Tool != "echo" {
		t.Fatalf("result must carry the tool name, got %q", res.Tool)
	}
	if res.Content != "hello" {
		t.Fatalf("unexpected content %q", res.Content)
	}
}

func TestInvokeMissingRequiredArgumentIsContained(t *testing.T) {
	t.Parallel()

	d := New("echo", "echoes the query", queryProps(), echoHandler)
	res := d.Invoke(context.Background(), map[string]any{})
	if !res.Failed() {
		t.Fatal("expected a contained validation failure")
	}
	if !strings.Contains(res.Error, contractx.ErrToolValidation.Error()) {
		t.Fatalf("error must mention validation, got %q", res.Error)
	}
	if !strings.Contains(res.Error, "query") {
		t.Fatalf("error must name the missing argument, got %q", res.Error)
	}
}

func TestInvokeTypeMismatchIsContained(t *testing.T) {
	t.Parallel()

	d := New("echo", "echoes the query", queryProps(), echoHandler)
	res := d.Invoke(context.Background(), map[string]any{"query": 42})
	if !res.Failed() {
		t.Fatal("expected a contained validation failure")
	}
	if !strings.Contains(res.Error, "string") {
		t.Fatalf("error must name the expected type, got %q", res.Error)
	}
}

func TestInvokeOptionalArgumentMayBeAbsent(t *testing.T) {
	t.Parallel()

	d := New("echo", "echoes the query", queryProps(), echoHandler)
	res := d.Invoke(context.Background(), map[string]any{"query": "hello"})
	if res.Failed() {
		t.Fatalf("absent optional argument must validate: %s", res.Error)
	}
}

func TestInvokeAuthorizationFailureMarksState(t *testing.T) {
	t.Parallel()

	state := NewState()
	handlerRan := false
	d := New("guarded", "requires admin", nil,
		func(ctx context.Context, args map[string]any) contractx.ToolResult {
			handlerRan = true
			return contractx.ToolResult{Content: "ok"}
		},
		WithPermissions("admin"),
		WithAuthorize(func(ctx context.Context, permissions []string) error {
			return errors.New("caller lacks admin")
		}),
		WithState(state),
	)

	res := d.Invoke(context.Background(), map[string]any{})
	if handlerRan {
		t.Fatal("handler must not run when authorization fails")
	}
	if !res.Failed() {
		t.Fatal("expected a contained authorization failure")
	}
	if !strings.Contains(res.Error, contractx.ErrToolAuthorization.Error()) {
		t.Fatalf("error must mention authorization, got %q", res.Error)
	}
	failed, reason := state.Failed()
	if !failed || reason == "" {
		t.Fatalf("state must record the failure, got failed=%v reason=%q", failed, reason)
	}
}

func TestInvokeHandlerErrorMarksState(t *testing.T) {
	t.Parallel()

	state := NewState()
	d := New("broken", "always fails", nil,
		func(ctx context.Context, args map[string]any) contractx.ToolResult {
			return contractx.ToolResult{Error: "backend unavailable"}
		},
		WithState(state),
	)

	res := d.Invoke(context.Background(), nil)
	if !res.Failed() {
		t.Fatal("expected the handler error to surface in the result")
	}
	if !state.Terminal() {
		t.Fatal("a failed tool must make the workflow state terminal")
	}
}

func TestStateFinishedIsTerminalButNotFailed(t *testing.T) {
	t.Parallel()

	state := NewState()
	state.MarkFinished()
	if !state.Terminal() {
		t.Fatal("finished state must be terminal")
	}
	if failed, _ := state.Failed(); failed {
		t.Fatal("finished state must not read as failed")
	}
}

func TestTypeMatches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		declared string
		value    any
		want     bool
	}{
		{"string", "x", true},
		{"string", 1, false},
		{"number", float64(1.5), true},
		{"number", 3, true},
		{"integer", float64(2), true},
		{"boolean", true, true},
		{"boolean", "true", false},
		{"array", []any{"a"}, true},
		{"array", "a", false},
		{"object", map[string]any{}, true},
		{"object", []any{}, false},
		{"unknown", struct{}{}, true},
	}
	for _, tc := range cases {
		if got := typeMatches(tc.declared, tc.value); got != tc.want {
			t.Fatalf("typeMatches(%q, %T) = %v, want %v", tc.declared, tc.value, got, tc.want)
		}
	}
}

type stubRepo struct {
	entities []contractx.Entity
	err      error
	gotKw    []string
	gotLimit int
}

func (s *stubRepo) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]contractx.Entity, error) {
	s.gotKw = keywords
	s.gotLimit = limit
	return s.entities, s.err
}

func TestFilteredQueryToolFormatsMatches(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{entities: []contractx.Entity{
		{ID: "p1", Title: "Mountain Bike", Body: "26-inch trail bike"},
	}}
	d := NewFilteredQueryTool("product.search", "search products", "products", repo, nil)

	res := d.Invoke(context.Background(), map[string]any{"query": "mountain bike", "limit": float64(5)})
	if res.Failed() {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if !strings.Contains(res.Content, "Mountain Bike") || !strings.Contains(res.Content, "p1") {
		t.Fatalf("formatted line missing entity data: %q", res.Content)
	}
	if repo.gotLimit != 5 {
		t.Fatalf("limit not forwarded, got %d", repo.gotLimit)
	}
	if len(repo.gotKw) != 2 || repo.gotKw[0] != "mountain" || repo.gotKw[1] != "bike" {
		t.Fatalf("unexpected keywords %v", repo.gotKw)
	}
}

func TestFilteredQueryToolRepositoryErrorIsContained(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{err: errors.New("connection refused")}
	d := NewFilteredQueryTool("product.search", "search products", "products", repo, nil)

	res := d.Invoke(context.Background(), map[string]any{"query": "bike"})
	if !res.Failed() {
		t.Fatal("expected the repository error in the result")
	}
	if !strings.Contains(res.Error, "products") {
		t.Fatalf("error must name the collection, got %q", res.Error)
	}
}

func TestFilteredQueryToolShortTokensOnly(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	d := NewFilteredQueryTool("product.search", "search products", "products", repo, nil)

	res := d.Invoke(context.Background(), map[string]any{"query": "a to of"})
	if res.Failed() {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if !strings.Contains(res.Content, "No usable keywords") {
		t.Fatalf("expected the no-keywords message, got %q", res.Content)
	}
	if repo.gotKw != nil {
		t.Fatal("repository must not be queried without keywords")
	}
}

func TestFilteredQueryToolNoMatches(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	d := NewFilteredQueryTool("customer.lookup", "find customers", "customers", repo, nil)

	res := d.Invoke(context.Background(), map[string]any{"query": "nobody"})
	if res.Failed() {
		t.Fatalf("unexpected failure: %s", res.Error)
	}
	if !strings.Contains(res.Content, "No customers matched") {
		t.Fatalf("expected the empty-result message, got %q", res.Content)
	}
}

func TestArgHelpers(t *testing.T) {
	t.Parallel()

	args := map[string]any{"q": "text", "n": float64(7), "m": 3}
	if got := StringArg(args, "q"); got != "text" {
		t.Fatalf("StringArg = %q", got)
	}
	if got := StringArg(args, "missing"); got != "" {
		t.Fatalf("StringArg on missing key = %q", got)
	}
	if got := IntArg(args, "n"); got != 7 {
		t.Fatalf("IntArg float = %d", got)
	}
	if got := IntArg(args, "m"); got != 3 {
		t.Fatalf("IntArg int = %d", got)
	}
	if got := IntArg(args, "missing"); got != 0 {
		t.Fatalf("IntArg on missing key = %d", got)
	}
}
