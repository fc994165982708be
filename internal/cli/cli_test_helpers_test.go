package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	return runCLIWith(t, &App{}, args)
}

func runCLIWith(t *testing.T, app *App, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	cmd := newRootCmd(app)
	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate points the config dir at a temp dir (so tests never touch ~/.whisperdeck) and
// returns a fresh data dir.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("WHISPERDECK_CONFIG_DIR", t.TempDir())
	t.Setenv("WHISPERDECK_DIR", "")
	t.Setenv("WHISPERDECK_BACKEND", "")
	t.Setenv("WHISPERDECK_CLIPBOARD", "")
	t.Setenv("WHISPERDECK_LOG_LEVEL", "")
	t.Setenv("WHISPERDECK_FORMAT", "")
	return t.TempDir()
}

func mustRun(t *testing.T, args ...string) []byte {
	t.Helper()
	out, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("%v: %v (stderr=%s)", args, err, string(stderr))
	}
	return out
}

func decodeData(t *testing.T, out []byte, into any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, string(out))
	}
	if len(env.Data) == 0 {
		t.Fatalf("missing data in %s", string(out))
	}
	if err := json.Unmarshal(env.Data, into); err != nil {
		t.Fatalf("decode data: %v\n%s", err, string(env.Data))
	}
}
