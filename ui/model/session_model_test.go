package model

import (
	"testing"
	"time"
)

func TestStatsModel_LiveLifecycle(t *testing.T) {
	m := NewStatsModel()
	base := time.Unix(0, 0)

	m.OnTick(true, base)
	m.OnTick(true, base.Add(5*time.Second))
	v := m.Values()
	if v.Live != 5*time.Second || v.Total != 5*time.Second {
		t.Fatalf("expected 5s live & total; got %+v", v)
	}

	// camera lost at 5s
	m.OnTick(false, base.Add(5*time.Second))
	m.OnTick(false, base.Add(7*time.Second))
	v2 := m.Values()
	if v2.Live != 5*time.Second || v2.Total != 5*time.Second {
		t.Fatalf("idle tick should not change durations: %+v", v2)
	}

	// back at 10s for 3s
	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(13*time.Second))
	v3 := m.Values()
	if v3.Live != 3*time.Second || v3.Total != 8*time.Second {
		t.Fatalf("expected live 3s total 8s, got %+v", v3)
	}
}

func TestStatsModel_Counters(t *testing.T) {
	var m StatsModel
	m.AddPhoto()
	m.AddPhoto()
	m.AddStrip()
	m.AddFailure()
	v := m.Values()
	if v.Photos != 2 || v.Strips != 1 || v.Failures != 1 {
		t.Fatalf("unexpected counters %+v", v)
	}
}

func TestNoticeModel_PostAndExpire(t *testing.T) {
	var m NoticeModel
	now := time.Unix(100, 0)
	_, v0 := m.Current()
	m.Post(NoticeWarn, "Camera not ready", now)
	n, v1 := m.Current()
	if n.Text != "Camera not ready" || n.Level != NoticeWarn || v1 == v0 {
		t.Fatalf("unexpected notice %+v v=%d", n, v1)
	}
	m.Expire(now.Add(time.Second), 3*time.Second)
	if n, _ := m.Current(); n.Text == "" {
		t.Fatalf("expired too early")
	}
	m.Expire(now.Add(3*time.Second), 3*time.Second)
	n, v2 := m.Current()
	if n.Text != "" || v2 == v1 {
		t.Fatalf("expected cleared notice, got %+v", n)
	}
}
