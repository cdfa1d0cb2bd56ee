package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

type cliHarness struct {
	dsn       string
	exportDir string
}

func newHarness(t *testing.T) *cliHarness {
	dir := t.TempDir()
	for _, k := range []string{"S3_BUCKET", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_PUBLIC_BASE_URL", "S3_USE_PATH_STYLE"} {
		t.Setenv(k, "")
	}
	h := &cliHarness{
		dsn:       "file:" + filepath.Join(dir, "swiss.db") + "?_foreign_keys=1",
		exportDir: filepath.Join(dir, "exports"),
	}
	h.run(t, "migrate")
	return h
}

func (h *cliHarness) exec(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(&out)
	app.ErrWriter = &bytes.Buffer{}
	app.ExitErrHandler = func(*cli.Context, error) {}

	argv := append([]string{"swissctl", "--database-driver", "sqlite3", "--database-url", h.dsn}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func (h *cliHarness) run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.exec(t, args...)
	require.NoError(t, err, "swissctl %s", strings.Join(args, " "))
	return out
}

func TestSwissctlTournament(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "registered Ada as player 1\n", h.run(t, "register", "Ada"))
	for _, name := range []string{"Boris", "Chen", "Dana"} {
		h.run(t, "register", name)
	}
	assert.Equal(t, "4\n", h.run(t, "count"))

	h.run(t, "report", "1", "2")
	h.run(t, "report", "3", "4")

	standings := h.run(t, "standings")
	lines := strings.Split(strings.TrimSpace(standings), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"RANK", "ID", "NAME", "WINS", "MATCHES"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "1", "Ada", "1", "1"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "3", "Chen", "1", "1"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"3", "2", "Boris", "0", "1"}, strings.Fields(lines[3]))

	pairings := strings.Split(strings.TrimSpace(h.run(t, "pairings")), "\n")
	require.Len(t, pairings, 3)
	assert.Equal(t, []string{"1", "1", "Ada", "3", "Chen"}, strings.Fields(pairings[1]))
	assert.Equal(t, []string{"2", "2", "Boris", "4", "Dana"}, strings.Fields(pairings[2]))

	players := h.run(t, "players")
	assert.Contains(t, players, "Dana")

	_, err := h.exec(t, "delete-players")
	require.Error(t, err)

	assert.Equal(t, "deleted 2 matches\n", h.run(t, "delete-matches"))
	assert.Equal(t, "deleted 4 players\n", h.run(t, "delete-players"))
	assert.Equal(t, "0\n", h.run(t, "count"))
}

func TestSwissctlRejectsBadInput(t *testing.T) {
	h := newHarness(t)
	h.run(t, "register", "Ada")

	tests := [][]string{
		{"register"},
		{"report", "1"},
		{"report", "one", "2"},
		{"report", "1", "1"},
		{"report", "1", "7"},
		{"export", "--format", "pdf"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := h.exec(t, args...)
			assert.Error(t, err)
		})
	}

	_, err := h.exec(t, "pairings")
	assert.Error(t, err, "one player cannot be paired")
}

func TestSwissctlHashPassword(t *testing.T) {
	var out bytes.Buffer
	app := newApp(&out)
	app.ExitErrHandler = func(*cli.Context, error) {}

	require.NoError(t, app.Run([]string{"swissctl", "hash-password", "organizer-pass"}))
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("organizer-pass")))

	app = newApp(&bytes.Buffer{})
	app.ExitErrHandler = func(*cli.Context, error) {}
	assert.Error(t, app.Run([]string{"swissctl", "hash-password", "short"}))
}

func TestSwissctlExportAndReset(t *testing.T) {
	h := newHarness(t)
	h.run(t, "register", "Ada")
	h.run(t, "register", "Boris")
	h.run(t, "report", "2", "1")

	out := h.run(t, "export", "--format", "csv,xlsx", "--export-dir", h.exportDir)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	entries, err := os.ReadDir(filepath.Join(h.exportDir, "standings"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	assert.Equal(t, "deleted 1 matches and 2 players\n", h.run(t, "reset"))
}
