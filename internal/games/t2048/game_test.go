package t2048

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     42,
	}
}

func newTestGame(t *testing.T, id string) *Game {
	t.Helper()
	// Keep user configs out of the test.
	t.Setenv("HOME", t.TempDir())

	v, ok := VariantByID(id)
	if !ok {
		t.Fatalf("unknown variant %q", id)
	}
	g := NewVariant(v)
	g.Reset(testRuntime())
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %q not registered", v.ID)
			continue
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%q): %v", v.ID, err)
		}
		if g.ID() != v.ID || g.Title() != v.Title {
			t.Errorf("Create(%q) = %s/%s", v.ID, g.ID(), g.Title())
		}
	}

	if _, ok := VariantByID("2048_9x9"); ok {
		t.Error("VariantByID found an unknown variant")
	}
}

func TestVariantBoardSizes(t *testing.T) {
	tests := []struct {
		id   string
		size int
	}{
		{"2048", 4},
		{"2048_5x5", 5},
		{"2048_3x3", 3},
	}
	for _, tt := range tests {
		g := newTestGame(t, tt.id)
		if got := g.Session().Grid().Size(); got != tt.size {
			t.Errorf("%s board size = %d, want %d", tt.id, got, tt.size)
		}
	}
}

func TestDeterministicReset(t *testing.T) {
	g1 := newTestGame(t, "2048")
	g2 := newTestGame(t, "2048")

	if !reflect.DeepEqual(g1.Snapshot().Board, g2.Snapshot().Board) {
		t.Errorf("Same seed should produce same initial board:\n%v\nvs\n%v", g1.Session().Grid(), g2.Session().Grid())
	}
}

func TestStepMove(t *testing.T) {
	g := newTestGame(t, "2048")
	g.session.grid = MustGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	res := g.Step(frame(core.ActionLeft))
	if !res.Changed {
		t.Fatal("move did not change the board")
	}
	if res.State.Score != 4 || res.State.Best != 4 {
		t.Errorf("score=%d best=%d, want 4/4", res.State.Score, res.State.Best)
	}

	// Nothing pressed, nothing changes.
	if res := g.Step(core.NewInputFrame()); res.Changed {
		t.Error("empty frame changed the board")
	}
}

func TestStepNotifiesListener(t *testing.T) {
	g := newTestGame(t, "2048")
	var got []Event
	var ids []string
	g.SetListener(ListenerFunc(func(id string, ev Event) {
		ids = append(ids, id)
		got = append(got, ev)
	}))
	g.session.grid = MustGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(frame(core.ActionLeft))

	want := []EventKind{EventMoved, EventMerged, EventSpawned}
	if kinds := eventKinds(got); !equalKinds(kinds, want) {
		t.Errorf("events = %v, want %v", kinds, want)
	}
	for _, id := range ids {
		if id != g.Session().ID() {
			t.Errorf("event for session %q, want %q", id, g.Session().ID())
		}
	}

	got = nil
	g.Step(frame(core.ActionRestart))
	if len(got) == 0 || got[0].Kind != EventRestarted {
		t.Errorf("restart events = %v", eventKinds(got))
	}

	g.SetListener(nil)
	g.Step(frame(core.ActionRestart)) // must not panic
}

func TestResetEmitsStartEvents(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New()
	var got []Event
	g.SetListener(ListenerFunc(func(_ string, ev Event) { got = append(got, ev) }))
	g.Reset(testRuntime())

	want := []EventKind{EventRestarted, EventSpawned, EventSpawned}
	if kinds := eventKinds(got); !equalKinds(kinds, want) {
		t.Errorf("events = %v, want %v", kinds, want)
	}
}

func TestPauseBlocksMoves(t *testing.T) {
	g := newTestGame(t, "2048")
	g.session.grid = MustGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if res := g.Step(frame(core.ActionPause)); !res.State.Paused {
		t.Fatal("pause did not pause")
	}
	if res := g.Step(frame(core.ActionLeft)); res.Changed {
		t.Error("move applied while paused")
	}
	if res := g.Step(frame(core.ActionPause)); res.State.Paused {
		t.Fatal("second pause did not resume")
	}
	if res := g.Step(frame(core.ActionLeft)); !res.Changed {
		t.Error("move ignored after resume")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := newTestGame(t, "2048")
	before := g.Session().Grid()

	g.Resize(10, 5)
	if !g.State().Paused {
		t.Error("tiny screen should pause")
	}
	for _, dir := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if res := g.Step(frame(dir)); res.Changed {
			t.Errorf("%v applied on a tiny screen", dir)
		}
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize back should unpause")
	}
	if !g.Session().Grid().Equal(before) {
		t.Error("resize changed the board")
	}
}

func TestKeepPlayingAction(t *testing.T) {
	g := newTestGame(t, "2048")
	g.session.grid = MustGrid([][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	if res := g.Step(frame(core.ActionLeft)); !res.State.Won {
		t.Fatal("State.Won = false after reaching 2048")
	}
	before := g.Session().Grid()
	for _, dir := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		g.Step(frame(dir))
	}
	if !g.Session().Grid().Equal(before) {
		t.Error("moves applied while waiting for keep-playing")
	}

	if res := g.Step(frame(core.ActionKeepPlaying)); res.State.Won {
		t.Error("State.Won still set after keep-playing")
	}
	if g.Session().State() != StateContinuing {
		t.Errorf("session state = %s, want continuing", g.Session().State())
	}
}

func TestUndoAndRestartActions(t *testing.T) {
	g := newTestGame(t, "2048")
	g.session.grid = MustGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(frame(core.ActionLeft))
	res := g.Step(frame(core.ActionUndo))
	if !res.Changed || res.State.Score != 0 {
		t.Errorf("undo: changed=%v score=%d", res.Changed, res.State.Score)
	}
	if res.State.Best != 4 {
		t.Errorf("undo lowered best to %d", res.State.Best)
	}
	if res := g.Step(frame(core.ActionUndo)); res.Changed {
		t.Error("second undo changed the board")
	}

	g.Step(frame(core.ActionLeft))
	res = g.Step(frame(core.ActionRestart))
	if !res.Changed || res.State.Score != 0 || g.Session().Moves() != 0 {
		t.Errorf("restart: changed=%v score=%d moves=%d", res.Changed, res.State.Score, g.Session().Moves())
	}
}

func TestDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { difficultyPreset = "" })

	if err := SetDifficultyPreset("impossible"); err == nil {
		t.Error("unknown preset accepted")
	}
	if err := SetDifficultyPreset("hard"); err != nil {
		t.Fatalf("SetDifficultyPreset: %v", err)
	}

	g := newTestGame(t, "2048")
	if g.Config().Rules.Undo {
		t.Error("hard preset kept undo")
	}
	if g.Session().Options().Spawn4Prob != 0.20 {
		t.Errorf("Spawn4Prob = %v, want 0.20", g.Session().Options().Spawn4Prob)
	}
}

func TestSetDifficultyOverridesPackagePreset(t *testing.T) {
	t.Cleanup(func() { difficultyPreset = "" })
	if err := SetDifficultyPreset("hard"); err != nil {
		t.Fatalf("SetDifficultyPreset: %v", err)
	}

	g := newTestGame(t, "2048")
	g.SetDifficulty(config.DifficultyEasy)
	g.Reset(testRuntime())

	if !g.Config().Rules.Undo {
		t.Error("easy difficulty disabled undo")
	}
	if g.Session().Options().Spawn4Prob != 0.05 {
		t.Errorf("Spawn4Prob = %v, want 0.05", g.Session().Options().Spawn4Prob)
	}
}

func TestAnimationPhases(t *testing.T) {
	g := newTestGame(t, "2048")
	g.cfg.Animation = config.AnimationConfig{SlideTicks: 3, PopTicks: 2}
	g.session.grid = MustGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(frame(core.ActionLeft))
	if g.anim.phase != phaseSlide {
		t.Fatalf("phase = %v, want slide", g.anim.phase)
	}
	if len(g.anim.sliding) != 1 || !g.anim.sliding[0].merged {
		t.Errorf("sliding = %+v, want one merging tile", g.anim.sliding)
	}

	for range 3 {
		g.Step(core.NewInputFrame())
	}
	if g.anim.phase != phasePop {
		t.Fatalf("phase = %v, want pop", g.anim.phase)
	}
	if !g.anim.popping(Position{0, 0}) {
		t.Error("merged tile not popping")
	}

	for range 2 {
		g.Step(core.NewInputFrame())
	}
	if g.anim.active() {
		t.Error("animation still active")
	}
}

func TestAnimationDisabled(t *testing.T) {
	g := newTestGame(t, "2048")
	g.cfg.Animation = config.AnimationConfig{}
	g.session.grid = MustGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	g.Step(frame(core.ActionLeft))
	if g.anim.active() {
		t.Error("animation started with zero durations")
	}
}

func TestInterpolate(t *testing.T) {
	ta := tileAnim{from: Position{0, 3}, to: Position{0, 0}}
	if r, c := ta.interpolate(0); r != 0 || c != 3 {
		t.Errorf("interpolate(0) = %v, %v", r, c)
	}
	if r, c := ta.interpolate(1); r != 0 || c != 0 {
		t.Errorf("interpolate(1) = %v, %v", r, c)
	}
	if _, c := ta.interpolate(0.5); c <= 0 || c >= 1.5 {
		t.Errorf("interpolate(0.5) col = %v, want eased past halfway", c)
	}
}

func render(g *Game) string {
	screen := core.NewScreen(g.screenW, g.screenH)
	g.Render(screen)
	return screen.String()
}

func TestRender(t *testing.T) {
	g := newTestGame(t, "2048")
	g.SetBestScore(1234)
	g.session.grid = MustGrid([][]int{
		{1024, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2},
	})

	out := render(g)
	for _, want := range []string{"2048", "Score: 0", "Best: 1234", "1024", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game)
		want  string
	}{
		{"paused", func(g *Game) { g.paused = true }, "PAUSED"},
		{"won", func(g *Game) { g.session.won = true }, "YOU WIN!"},
		{"over", func(g *Game) { g.session.over = true }, "GAME OVER"},
		{"too small", func(g *Game) { g.Resize(20, 8) }, "Window too small"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, "2048")
			tt.setup(g)
			if out := render(g); !strings.Contains(out, tt.want) {
				t.Errorf("render missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	g := newTestGame(t, "2048_5x5")
	snap := g.Snapshot()

	if snap.Game != "2048_5x5" {
		t.Errorf("Snapshot Game = %s, want 2048_5x5", snap.Game)
	}
	if snap.SessionID != g.Session().ID() {
		t.Error("Snapshot SessionID mismatch")
	}
	if len(snap.Board) != 5 {
		t.Errorf("Snapshot Board has %d rows, want 5", len(snap.Board))
	}
	if snap.State != StatePlaying {
		t.Errorf("Snapshot State = %s, want playing", snap.State)
	}
	if snap.MaxTile != g.Session().Grid().MaxTile() {
		t.Errorf("Snapshot MaxTile = %d", snap.MaxTile)
	}
}

func TestSetBestScore(t *testing.T) {
	g := newTestGame(t, "2048")
	g.SetBestScore(500)
	g.SetBestScore(100)
	if g.State().Best != 500 {
		t.Errorf("Best = %d, want 500", g.State().Best)
	}
}

func TestTileColor(t *testing.T) {
	tests := []struct {
		value int
		want  core.Color
	}{
		{0, core.ColorDefault},
		{3, core.ColorDefault},
		{2, core.ColorTile2},
		{4, core.ColorTile4},
		{128, core.ColorTile128},
		{2048, core.ColorTile2048},
		{4096, core.ColorTileSuper},
		{1 << 20, core.ColorTileSuper},
	}
	for _, tt := range tests {
		if got := TileColor(tt.value); got != tt.want {
			t.Errorf("TileColor(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
