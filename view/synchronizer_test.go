package view

import (
	"testing"

	"github.com/mjsandagi/riichi-mahjong/mahjong"
)

type fakeRenderer struct {
	last     *ViewModel
	renders  int
	warnings []string
	events   []*GameEvent
}

func (r *fakeRenderer) Render(vm *ViewModel) {
	r.last = vm
	r.renders++
}
func (r *fakeRenderer) ShowWarning(msg string)  { r.warnings = append(r.warnings, msg) }
func (r *fakeRenderer) ShowEvent(ev *GameEvent) { r.events = append(r.events, ev) }

type sentMessage struct {
	Route   string
	Payload any
}

type fakeSender struct {
	sent []sentMessage
}

func (s *fakeSender) Send(route string, payload any) error {
	s.sent = append(s.sent, sentMessage{Route: route, Payload: payload})
	return nil
}

func newTestSynchronizer() (*Synchronizer, *fakeRenderer, *fakeSender) {
	renderer := &fakeRenderer{}
	sender := &fakeSender{}
	return NewSynchronizer(renderer, sender, "session-1"), renderer, sender
}

func tile(suit mahjong.Suit, rank int) mahjong.Tile {
	return mahjong.Tile{Suit: suit, Rank: rank}
}

func fourPlayerSnapshot() *Snapshot {
	return &Snapshot{
		Phase:             PhaseDiscard,
		ActivePlayerIndex: 2,
		Players: []PlayerState{
			{Index: 0, Name: "North-ish", Score: 25000},
			{Index: 1, Name: "Bot 1", Score: 24000},
			{Index: 2, Name: "Hero", Score: 26000, Hand: []mahjong.Tile{
				tile(mahjong.SuitMan, 1), tile(mahjong.SuitPin, 5), tile(mahjong.SuitSou, 9),
			}},
			{Index: 3, Name: "Bot 3", Score: 25000, OpenMelds: []string{"[Pon: 7s 7s 7s]"}},
		},
		WallRemaining: 60,
	}
}

func TestSynchronizerSeatRotation(t *testing.T) {
	s, renderer, _ := newTestSynchronizer()
	s.SetLocalSeat(2)
	s.OnSnapshot(fourPlayerSnapshot())

	vm := renderer.last
	if vm == nil {
		t.Fatal("no view model rendered")
	}
	if vm.Slots[0].Seat != 2 || vm.Slots[0].Name != "Hero" {
		t.Errorf("slot 0 = seat %d (%s), want local seat 2", vm.Slots[0].Seat, vm.Slots[0].Name)
	}
	if vm.Slots[1].Seat != 3 {
		t.Errorf("slot 1 = seat %d, want 3 (next in turn order)", vm.Slots[1].Seat)
	}
	if vm.Slots[3].Seat != 1 {
		t.Errorf("slot 3 = seat %d, want 1", vm.Slots[3].Seat)
	}
	if vm.ActiveSlot != 0 {
		t.Errorf("active slot = %d, want 0 (local player acting)", vm.ActiveSlot)
	}
}

func TestSynchronizerDecodesMelds(t *testing.T) {
	s, renderer, _ := newTestSynchronizer()
	s.SetLocalSeat(2)
	s.OnSnapshot(fourPlayerSnapshot())

	melds := renderer.last.Slots[1].Melds
	if len(melds) != 1 {
		t.Fatalf("got %d melds, want 1", len(melds))
	}
	if melds[0].Kind != mahjong.MeldPon || len(melds[0].Tiles) != 3 {
		t.Errorf("meld = %+v, want pon of three tiles", melds[0])
	}
}

func TestSynchronizerSeparatesDrawnTile(t *testing.T) {
	s, renderer, _ := newTestSynchronizer()
	s.SetLocalSeat(0)

	drawn := tile(mahjong.SuitSou, 3)
	snap := &Snapshot{
		Phase:             PhaseDiscard,
		ActivePlayerIndex: 0,
		DrawnTile:         &drawn,
		Players: []PlayerState{
			{Index: 0, Name: "Hero", Hand: []mahjong.Tile{
				tile(mahjong.SuitMan, 1), tile(mahjong.SuitMan, 2), drawn,
			}},
			{Index: 1}, {Index: 2}, {Index: 3},
		},
	}
	s.OnSnapshot(snap)

	self := renderer.last.Slots[0]
	if len(self.Hand) != 2 {
		t.Fatalf("hand length = %d, want 2 after drawn split", len(self.Hand))
	}
	if self.Drawn == nil || *self.Drawn != drawn {
		t.Errorf("drawn = %v, want %v", self.Drawn, drawn)
	}
	if self.DrawnIndex != 2 {
		t.Errorf("drawn index = %d, want 2", self.DrawnIndex)
	}
}

func TestSynchronizerSnapshotClearsSelection(t *testing.T) {
	s, renderer, _ := newTestSynchronizer()
	s.SetLocalSeat(2)
	s.OnSnapshot(fourPlayerSnapshot())

	s.OnTileActivated(1)
	if renderer.last.SelectedIndex != 1 {
		t.Fatalf("selected = %d, want 1", renderer.last.SelectedIndex)
	}

	s.OnSnapshot(fourPlayerSnapshot())
	if renderer.last.SelectedIndex != -1 {
		t.Errorf("selection survived a snapshot: %d", renderer.last.SelectedIndex)
	}
}

func TestSynchronizerDoubleTapSendsDiscard(t *testing.T) {
	s, _, sender := newTestSynchronizer()
	s.SetLocalSeat(2)
	s.OnSnapshot(fourPlayerSnapshot())

	s.OnTileActivated(1)
	s.OnTileActivated(1)

	if len(sender.sent) != 1 {
		t.Fatalf("got %d messages, want 1", len(sender.sent))
	}
	msg, ok := sender.sent[0].Payload.(ActionMessage)
	if !ok {
		t.Fatalf("payload type %T", sender.sent[0].Payload)
	}
	if sender.sent[0].Route != RoutePlayerAction || msg.ActionType != "DISCARD" {
		t.Errorf("sent %s %s, want player_action DISCARD", sender.sent[0].Route, msg.ActionType)
	}
	if msg.TileIndex == nil || *msg.TileIndex != 1 {
		t.Errorf("tile_index = %v, want 1", msg.TileIndex)
	}
	if msg.SessionID != "session-1" {
		t.Errorf("session_id = %q", msg.SessionID)
	}
}

func TestSynchronizerRiichiCommitsSelection(t *testing.T) {
	s, renderer, sender := newTestSynchronizer()
	s.SetLocalSeat(2)
	s.OnSnapshot(fourPlayerSnapshot())

	// no selection yet: invoke must warn, not send
	s.Invoke(ActionOffer{Kind: ActionRiichi})
	if len(sender.sent) != 0 {
		t.Fatalf("riichi without selection sent %v", sender.sent)
	}
	if len(renderer.warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(renderer.warnings))
	}

	s.OnTileActivated(0)
	s.Invoke(ActionOffer{Kind: ActionRiichi})
	if len(sender.sent) != 1 {
		t.Fatalf("got %d messages, want 1", len(sender.sent))
	}
	msg := sender.sent[0].Payload.(ActionMessage)
	if msg.ActionType != "DECLARE_RIICHI" || msg.TileIndex == nil || *msg.TileIndex != 0 {
		t.Errorf("message = %+v, want DECLARE_RIICHI tile 0", msg)
	}
}

func TestSynchronizerChiCarriesOption(t *testing.T) {
	s, _, sender := newTestSynchronizer()
	s.SetLocalSeat(2)
	s.OnSnapshot(fourPlayerSnapshot())

	s.Invoke(ActionOffer{Kind: ActionChi, ChiOption: 2})
	msg := sender.sent[0].Payload.(ActionMessage)
	if msg.ActionType != "CHI" || msg.ChiOption == nil || *msg.ChiOption != 2 {
		t.Errorf("message = %+v, want CHI option 2", msg)
	}
}

func TestSynchronizerPlainActions(t *testing.T) {
	s, _, sender := newTestSynchronizer()
	s.SetLocalSeat(2)
	s.OnSnapshot(fourPlayerSnapshot())

	for _, kind := range []ActionKind{ActionTsumo, ActionRon, ActionPon, ActionKan, ActionPass} {
		s.Invoke(ActionOffer{Kind: kind})
	}
	if len(sender.sent) != 5 {
		t.Fatalf("got %d messages, want 5", len(sender.sent))
	}
	for i, want := range []string{"TSUMO", "RON", "PON", "KAN", "PASS"} {
		msg := sender.sent[i].Payload.(ActionMessage)
		if msg.ActionType != want {
			t.Errorf("message %d = %s, want %s", i, msg.ActionType, want)
		}
		if msg.TileIndex != nil || msg.ChiOption != nil {
			t.Errorf("%s carried tile/chi fields: %+v", want, msg)
		}
	}
}

func TestSynchronizerGameOverFreezesAndRanks(t *testing.T) {
	s, renderer, _ := newTestSynchronizer()
	s.SetLocalSeat(2)

	winner := 2
	final := fourPlayerSnapshot()
	final.Phase = PhaseGameOverWin
	final.WinnerIndex = &winner
	final.WinningYaku = []string{"Riichi", "Tsumo"}
	s.OnGameOver(final)

	vm := renderer.last
	if !vm.Closed {
		t.Fatal("view model not closed after game over")
	}
	if vm.WinnerSeat != 2 {
		t.Errorf("winner seat = %d, want 2", vm.WinnerSeat)
	}
	if len(vm.Ranking) != 4 {
		t.Fatalf("ranking has %d entries, want 4", len(vm.Ranking))
	}
	for i := 1; i < len(vm.Ranking); i++ {
		if vm.Ranking[i-1].Score < vm.Ranking[i].Score {
			t.Errorf("ranking not descending: %v", vm.Ranking)
		}
	}
	if vm.Ranking[0].Seat != 2 {
		t.Errorf("top rank seat = %d, want 2 (highest score)", vm.Ranking[0].Seat)
	}

	// frozen: later snapshots and inputs are ignored until reset
	s.OnSnapshot(fourPlayerSnapshot())
	if !renderer.last.Closed {
		t.Error("snapshot after game over thawed the view")
	}
}

func TestSynchronizerDuplicateGameOverIgnored(t *testing.T) {
	s, renderer, _ := newTestSynchronizer()
	s.SetLocalSeat(2)
	s.OnGameOver(fourPlayerSnapshot())

	before := renderer.renders
	s.OnGameOver(fourPlayerSnapshot())
	if renderer.renders != before {
		t.Errorf("duplicate game over re-rendered: %d -> %d", before, renderer.renders)
	}
	if !renderer.last.Closed {
		t.Error("view no longer closed after duplicate game over")
	}
}

func TestSynchronizerResetReopens(t *testing.T) {
	s, renderer, sender := newTestSynchronizer()
	s.SetLocalSeat(2)
	s.OnGameOver(fourPlayerSnapshot())

	s.OnReset()
	if renderer.last.Closed {
		t.Error("view still closed after reset")
	}

	s.OnSnapshot(fourPlayerSnapshot())
	s.OnTileActivated(0)
	s.OnTileActivated(0)
	if len(sender.sent) != 1 {
		t.Errorf("input after reset produced %d messages, want 1", len(sender.sent))
	}
}

func TestSynchronizerStartAndRestart(t *testing.T) {
	s, _, sender := newTestSynchronizer()
	s.RequestStart()
	s.RequestRestart()

	if len(sender.sent) != 2 {
		t.Fatalf("got %d messages, want 2", len(sender.sent))
	}
	if sender.sent[0].Route != RouteStartGame || sender.sent[1].Route != RouteRestartGame {
		t.Errorf("routes = %s, %s", sender.sent[0].Route, sender.sent[1].Route)
	}
	for _, m := range sender.sent {
		payload := m.Payload.(SessionMessage)
		if payload.SessionID != "session-1" {
			t.Errorf("%s session_id = %q", m.Route, payload.SessionID)
		}
	}
}

func TestSynchronizerEventsForwarded(t *testing.T) {
	s, renderer, _ := newTestSynchronizer()
	s.OnGameEvent(&GameEvent{EventType: "discard", Message: "Hero discards 5p"})
	if len(renderer.events) != 1 || renderer.events[0].EventType != "discard" {
		t.Errorf("events = %v", renderer.events)
	}
}

func TestSynchronizerCapabilitiesReplaceWholesale(t *testing.T) {
	s, renderer, _ := newTestSynchronizer()
	s.SetLocalSeat(2)
	snap := fourPlayerSnapshot()
	snap.AvailableActions = &Capabilities{PlayerIndex: 2, CanTsumo: true}
	s.OnSnapshot(snap)
	if got := kinds(renderer.last.Actions); len(got) != 1 || got[0] != ActionTsumo {
		t.Fatalf("actions = %v, want [Tsumo]", got)
	}

	// a later decision-point descriptor replaces the old one outright
	s.OnCapabilities(&Capabilities{PlayerIndex: 2, CanRon: true, CanPass: true})
	got := kinds(renderer.last.Actions)
	if len(got) != 2 || got[0] != ActionRon || got[1] != ActionPass {
		t.Errorf("actions = %v, want [Ron Pass]", got)
	}
}

func TestSynchronizerForeignCapabilitiesYieldNoActions(t *testing.T) {
	s, renderer, _ := newTestSynchronizer()
	s.SetLocalSeat(2)
	snap := fourPlayerSnapshot()
	snap.AvailableActions = &Capabilities{PlayerIndex: 0, CanDiscard: true, CanPass: true}
	s.OnSnapshot(snap)

	if len(renderer.last.Actions) != 0 {
		t.Errorf("foreign capabilities produced actions: %v", renderer.last.Actions)
	}
}
