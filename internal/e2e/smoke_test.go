package e2e

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer smoke-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"posts":[{"id":"10","author":{"name":"Ada","handle":"ada"},"text":"smoke test post"}]}`)
	}))
	defer server.Close()

	home := t.TempDir()
	binaryPath := buildBinary(t)
	env := []string{
		"HOME=" + home,
		"PETIT_SECRETS_BACKEND=file",
		"PETIT_API_BASE_URL=" + server.URL,
	}

	_, stderr, err := runPetit(t, binaryPath, env, "login", "--token", "smoke-token")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runPetit(t, binaryPath, env, "timeline", "--print", "--compact")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "smoke test post")

	_, err = os.Stat(filepath.Join(home, ".cache", "petit", "timeline.toml"))
	require.NoError(t, err)

	_, stderr, err = runPetit(t, binaryPath, env, "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, stderr, err = runPetit(t, binaryPath, env, "timeline", "--print")
	require.Error(t, err)
	assert.Contains(t, stderr, "please login")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "petit-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/petit")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build petit binary: %s", string(output))
	return binaryPath
}

func runPetit(t *testing.T, binaryPath string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
