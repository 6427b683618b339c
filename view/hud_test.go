package view

import (
	"testing"

	"github.com/phanxgames/orchard"
)

func TestHUDText(t *testing.T) {
	fruits := []*orchard.Fruit{
		{Location: orchard.LocationMatrix},
		{Location: orchard.LocationMatrix},
		{Location: orchard.LocationCart},
		{Location: orchard.LocationFloor},
	}
	want := "FPS: 59.9\nTPS: 60.0\nTree: 2\nCart: 1"
	if got := hudText(59.94, 60, fruits); got != want {
		t.Errorf("hudText = %q, want %q", got, want)
	}
}

func TestHUDRefreshInterval(t *testing.T) {
	var h hud
	h.update(0.3)
	if h.stale {
		t.Error("stale before the refresh interval")
	}
	h.update(0.3)
	if !h.stale {
		t.Error("not stale after the refresh interval")
	}
}

func TestHUDNoticeFades(t *testing.T) {
	var h hud
	h.notify("Cleared", 1)
	if h.noticeAlpha != 1 {
		t.Fatalf("alpha = %v, want 1", h.noticeAlpha)
	}
	h.update(0.5)
	if h.noticeAlpha <= 0 || h.noticeAlpha >= 1 {
		t.Errorf("alpha mid-fade = %v", h.noticeAlpha)
	}
	h.update(0.6)
	if h.notice != "" || h.noticeAlpha != 0 {
		t.Errorf("notice = %q alpha = %v after the fade", h.notice, h.noticeAlpha)
	}
}
