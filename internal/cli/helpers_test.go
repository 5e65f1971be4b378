package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/alexanderramin/incubator/internal/config"
	"github.com/alexanderramin/incubator/internal/llm"
	"github.com/alexanderramin/incubator/internal/repository"
	"github.com/alexanderramin/incubator/internal/service"
	"github.com/alexanderramin/incubator/internal/session"
	"github.com/alexanderramin/incubator/internal/testutil"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(context.Context, llm.GenerateRequest) (string, error) {
	return g.text, g.err
}

type stubModel struct{ available bool }

func (m stubModel) Backend() string                { return "stub" }
func (m stubModel) Configured() bool               { return true }
func (m stubModel) Available(context.Context) bool { return m.available }

func offlineGenerator() stubGenerator {
	return stubGenerator{err: llm.ErrGenerationFailed}
}

// testApp wires a coach over an in-memory store and a call log over an
// in-memory database. Output is captured in the returned buffer.
func testApp(t *testing.T, gen stubGenerator) (*App, *bytes.Buffer) {
	t.Helper()
	store := session.NewStore()
	out := &bytes.Buffer{}
	return &App{
		Coach:    service.NewCoachService(store, gen),
		Sessions: store,
		Model:    stubModel{available: gen.err == nil},
		Calls:    repository.NewSQLiteCallLogRepo(testutil.NewTestDB(t)),
		Config: &config.Config{
			Port:          8080,
			LogLevel:      "info",
			DBPath:        ":memory:",
			SessionTTL:    session.DefaultTTL,
			SweepInterval: session.DefaultSweepInterval,
		},
		In:  strings.NewReader(""),
		Out: out,
	}, out
}

func executeCmd(t *testing.T, app *App, in io.Reader, args ...string) error {
	t.Helper()
	if in != nil {
		app.In = in
	}
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func requireContainsAll(t *testing.T, s string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		require.Contains(t, s, p)
	}
}
