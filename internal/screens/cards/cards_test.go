package cards

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questisland/internal/achievements"
	"github.com/abhisek/questisland/internal/profile"
	"github.com/abhisek/questisland/internal/rewards"
)

type fakeRedeemer struct {
	ids []string
	err error
}

func (f *fakeRedeemer) Redeem(_ context.Context, p *profile.Profile, id string) (*profile.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.ids = append(f.ids, id)
	next := p.Clone()
	next.Inventory, _ = rewards.Redeem(next.Inventory, id)
	return next, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testProfile() *profile.Profile {
	p := profile.New(1)
	p.UnlockedAchievements = []string{"speed_runner"}
	p.Inventory = []rewards.Item{
		{ID: "i1", Type: rewards.ItemSticker, SourceID: "s1", Name: "Little Dino", Icon: "🦕"},
		{ID: "i2", Type: rewards.ItemSticker, SourceID: "s1", Name: "Little Dino", Icon: "🦕"},
		{ID: "c1", Type: rewards.ItemCustomCoupon, Name: "Old treat", Icon: "🎟️", Redeemed: true},
		{ID: "c2", Type: rewards.ItemCustomCoupon, Name: "Park trip", Icon: "🎟️"},
	}
	return p
}

func TestCardsScreen_Tabs(t *testing.T) {
	s := New(&fakeRedeemer{}, testProfile())
	if s.rowCount() != len(achievements.All()) {
		t.Errorf("cards rows = %d", s.rowCount())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.tab != tabStickers || s.rowCount() != len(rewards.Stickers) {
		t.Errorf("tab = %v rows = %d", s.tab, s.rowCount())
	}
	if view := s.View(100, 40); !strings.Contains(view, "×2") {
		t.Error("sticker count missing")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if s.tab != tabCards {
		t.Errorf("shift+tab = %v", s.tab)
	}
}

func TestCardsScreen_CouponsUnredeemedFirst(t *testing.T) {
	s := New(&fakeRedeemer{}, testProfile())
	got := s.coupons()
	if len(got) != 2 || got[0].ID != "c2" || got[1].ID != "c1" {
		t.Errorf("coupons = %+v", got)
	}
}

func TestCardsScreen_Redeem(t *testing.T) {
	r := &fakeRedeemer{}
	s := New(r, testProfile())
	s.switchTab(tabCoupons)

	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("r should redeem the selected coupon")
	}
	s.Update(cmd())
	if len(r.ids) != 1 || r.ids[0] != "c2" {
		t.Errorf("redeemed = %v", r.ids)
	}
	if !s.changed {
		t.Error("profile should be marked changed")
	}

	// Everything is used now.
	if _, cmd := s.Update(keyPress('r')); cmd != nil {
		t.Error("redeemed coupon should not redeem again")
	}
}

func TestCardsScreen_RedeemError(t *testing.T) {
	s := New(&fakeRedeemer{err: errors.New("nope")}, testProfile())
	s.switchTab(tabCoupons)
	_, cmd := s.Update(keyPress('r'))
	s.Update(cmd())
	if s.errMsg != "nope" {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}

func TestCardsScreen_RedeemOnlyOnCouponTab(t *testing.T) {
	s := New(&fakeRedeemer{}, testProfile())
	if _, cmd := s.Update(keyPress('r')); cmd != nil {
		t.Error("r outside the coupon tab should do nothing")
	}
}

func TestCardsScreen_Esc(t *testing.T) {
	s := New(&fakeRedeemer{}, testProfile())
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd == nil {
		t.Error("esc should pop")
	}
}
