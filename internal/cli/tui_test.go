package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/lootgrid/pkg/assets"
	"github.com/matzehuels/lootgrid/pkg/catalog"
	"github.com/matzehuels/lootgrid/pkg/grid"
	"github.com/matzehuels/lootgrid/pkg/raid"
	"github.com/matzehuels/lootgrid/pkg/render"
)

func fakeOpening(key string) raidOpening {
	item := catalog.Item{ID: 1, Name: "Bolt", Grade: 2, Width: 1, Length: 1}
	return raidOpening{
		path: "raid/" + key + ".png",
		result: &render.Result{
			Selected: []catalog.Item{item},
			Pack:     grid.Pack(1, []grid.Size{{Width: 1, Length: 1}}),
		},
	}
}

func newTestRaidModel(t *testing.T, cfg raid.Config) (*raidModel, *time.Time) {
	t.Helper()
	now := time.Unix(1_700_000_000, 0)
	sess, err := raid.New(cfg, raid.WithSeed(3), raid.WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatal(err)
	}
	open := func(_ context.Context, key string) (raidOpening, error) { return fakeOpening(key), nil }
	name := func(key string) string { return strings.ToUpper(key) }
	return newRaidModel(context.Background(), sess, open, name), &now
}

func typeLine(m *raidModel, text string) tea.Cmd {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestRaidModelExtract(t *testing.T) {
	cfg := raid.DefaultConfig()
	cfg.DeathChance = 0
	cfg.Containers = []string{"box"}
	m, _ := newTestRaidModel(t, cfg)

	m.Init()
	if !m.pending {
		t.Fatal("first container should be rendering")
	}
	if !strings.Contains(m.View(), "Found BOX") {
		t.Errorf("view = %q", m.View())
	}

	// Enter is ignored while a render is in flight.
	if cmd := typeLine(m, "extract"); cmd != nil || m.session.Done() {
		t.Fatal("reply accepted while pending")
	}
	m.input = m.input[:0]

	m.Update(openedMsg{key: "box", opening: fakeOpening("box")})
	if m.pending || len(m.files) != 1 {
		t.Fatalf("pending = %v files = %v", m.pending, m.files)
	}
	if !strings.Contains(m.View(), "continue") {
		t.Errorf("prompt missing from view: %q", m.View())
	}

	typeLine(m, "continue")
	if !m.pending || m.session.Retries() != 1 {
		t.Fatalf("continue did not open: pending=%v retries=%d", m.pending, m.session.Retries())
	}
	m.Update(openedMsg{key: "box", opening: fakeOpening("box")})

	if cmd := typeLine(m, "撤离"); !isQuit(cmd) {
		t.Error("extract should quit")
	}
	if m.session.Ending() != raid.Extracted || !m.done {
		t.Errorf("ending = %v done = %v", m.session.Ending(), m.done)
	}
	if len(m.files) != 2 {
		t.Errorf("files = %v", m.files)
	}
}

func TestRaidModelIgnoredReplyHidesPrompt(t *testing.T) {
	cfg := raid.DefaultConfig()
	cfg.Containers = []string{"box"}
	m, _ := newTestRaidModel(t, cfg)
	m.Init()
	m.Update(openedMsg{key: "box", opening: fakeOpening("box")})

	typeLine(m, "hello")
	if m.ask || m.session.Done() {
		t.Errorf("ask = %v done = %v", m.ask, m.session.Done())
	}
	if strings.Contains(m.View(), "Keep looting?") {
		t.Error("prompt should not repeat after an ignored reply")
	}
}

func TestRaidModelTimeout(t *testing.T) {
	cfg := raid.DefaultConfig()
	cfg.Containers = []string{"box"}
	m, now := newTestRaidModel(t, cfg)
	m.Init()
	m.Update(openedMsg{key: "box", opening: fakeOpening("box")})

	if _, cmd := m.Update(tickMsg(*now)); cmd == nil || m.done {
		t.Fatal("tick before the deadline should schedule another tick")
	}
	*now = now.Add(cfg.Timeout + time.Second)
	_, cmd := m.Update(tickMsg(*now))
	if !isQuit(cmd) || m.session.Ending() != raid.TimedOut {
		t.Errorf("ending = %v", m.session.Ending())
	}
}

func TestRaidModelMaxRetriesWaitsForRender(t *testing.T) {
	cfg := raid.DefaultConfig()
	cfg.DeathChance = 0
	cfg.MaxRetries = 1
	cfg.Containers = []string{"box"}
	m, _ := newTestRaidModel(t, cfg)
	m.Init()
	m.Update(openedMsg{key: "box", opening: fakeOpening("box")})

	cmd := typeLine(m, "continue")
	if isQuit(cmd) || !m.pending {
		t.Fatal("last opening should render before quitting")
	}
	_, cmd = m.Update(openedMsg{key: "box", opening: fakeOpening("box")})
	if !isQuit(cmd) || m.session.Ending() != raid.MaxRetriesReached {
		t.Errorf("ending = %v", m.session.Ending())
	}
}

func TestRaidModelCtrlC(t *testing.T) {
	m, _ := newTestRaidModel(t, raid.DefaultConfig())
	m.Init()
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}
}

func TestRaidModelTickWhileLastRenderPending(t *testing.T) {
	cfg := raid.DefaultConfig()
	cfg.DeathChance = 0
	cfg.MaxRetries = 1
	cfg.Containers = []string{"box"}
	m, now := newTestRaidModel(t, cfg)
	m.Init()
	m.Update(openedMsg{key: "box", opening: fakeOpening("box")})

	typeLine(m, "continue")
	if !m.session.Done() || !m.pending {
		t.Fatalf("done = %v pending = %v", m.session.Done(), m.pending)
	}
	if _, cmd := m.Update(tickMsg(*now)); cmd != nil {
		t.Error("tick after the session ended should not schedule work")
	}
	m.Update(openedMsg{key: "box", opening: fakeOpening("box")})

	if n := strings.Count(m.View(), "Reached the opening limit"); n != 1 {
		t.Errorf("ending line printed %d times", n)
	}
}

func TestRaidModelDeathSavesImage(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		files int
	}{
		{"image available", "raid/died.jpg", 2},
		{"image missing", "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := raid.DefaultConfig()
			cfg.DeathChance = 1
			cfg.Containers = []string{"box"}
			m, _ := newTestRaidModel(t, cfg)
			calls := 0
			m.dead = func() string {
				calls++
				return tt.path
			}
			m.Init()
			m.Update(openedMsg{key: "box", opening: fakeOpening("box")})

			if cmd := typeLine(m, "continue"); !isQuit(cmd) {
				t.Fatal("death should quit")
			}
			if m.session.Ending() != raid.Died || calls != 1 {
				t.Fatalf("ending = %v, dead calls = %d", m.session.Ending(), calls)
			}
			if len(m.files) != tt.files {
				t.Errorf("files = %v, want %d", m.files, tt.files)
			}
			if tt.path != "" && !strings.Contains(m.View(), tt.path) {
				t.Errorf("death image path missing from view: %q", m.View())
			}
		})
	}
}

func TestSaveDeathImage(t *testing.T) {
	res := t.TempDir()
	if err := os.WriteFile(filepath.Join(res, "fail.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}
	local := assets.NewLocal(res)
	out := filepath.Join(t.TempDir(), "raid")

	path, err := saveDeathImage(local, "fail.jpg", out)
	if err != nil {
		t.Fatalf("saveDeathImage: %v", err)
	}
	if path != filepath.Join(out, "died.jpg") {
		t.Errorf("path = %q", path)
	}
	if data, err := os.ReadFile(path); err != nil || string(data) != "jpeg" {
		t.Errorf("copied data = %q, %v", data, err)
	}

	if path, err := saveDeathImage(local, "missing.jpg", out); path != "" || err == nil {
		t.Errorf("missing image: path = %q err = %v", path, err)
	}
	if path, err := saveDeathImage(local, "", out); path != "" || err != nil {
		t.Errorf("unset image: path = %q err = %v", path, err)
	}
}
