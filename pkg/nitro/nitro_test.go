package nitro

import "testing"

func TestNewIsFullButNotReady(t *testing.T) {
	m := New()
	if m.Charge != 1 || m.Ready || m.Active {
		t.Fatalf("New() = %+v", m)
	}
	if m.Engage(false) {
		t.Fatal("engage before the first tick should fail")
	}

	res := m.Tick(3, 3)
	if !res.BecameReady || res.BonusLife {
		t.Fatalf("first tick at max lives = %+v", res)
	}
	if !m.Engage(false) {
		t.Fatal("engage on a ready meter failed")
	}
	if m.SpeedBonus() != Boost {
		t.Errorf("SpeedBonus = %v, want %v", m.SpeedBonus(), Boost)
	}
}

func TestEngageRefusedWhilePaused(t *testing.T) {
	m := &Meter{Charge: 1, Ready: true}
	if m.Engage(true) {
		t.Fatal("engage while paused should fail")
	}
	if m.Active || !m.Ready {
		t.Errorf("meter changed: %+v", m)
	}
}

func TestDrainDepletesAndDeactivates(t *testing.T) {
	m := &Meter{Charge: 1, Ready: true}
	m.Engage(false)

	var depleted int
	for i := 0; i < 150 && m.Active; i++ {
		if m.Tick(3, 3).Depleted {
			depleted++
		}
		if m.Charge < 0 || m.Charge > 1 {
			t.Fatalf("charge out of range: %v", m.Charge)
		}
	}
	if m.Active {
		t.Fatal("boost never ran out")
	}
	if depleted != 1 || m.Charge != 0 {
		t.Errorf("depleted %d times, charge %v", depleted, m.Charge)
	}
	if m.SpeedBonus() != 0 {
		t.Error("no bonus after depletion")
	}
}

func TestReleaseAlwaysStops(t *testing.T) {
	m := &Meter{Charge: 0.4, Active: true}
	if !m.Release() {
		t.Error("Release should report the running boost")
	}
	if m.Active {
		t.Error("still active after release")
	}
	if m.Release() {
		t.Error("second Release should report nothing running")
	}
}

func TestFullChargeBecomesLife(t *testing.T) {
	m := &Meter{Charge: 0.998}
	lives := 2

	var ticks int
	for ; ticks < 5; ticks++ {
		res := m.Tick(lives, 3)
		if res.BonusLife {
			lives++
			break
		}
	}
	if lives != 3 {
		t.Fatalf("lives = %d after %d ticks, want 3", lives, ticks)
	}
	if m.Charge != 0 || m.Active || m.Ready {
		t.Errorf("meter after conversion = %+v", m)
	}
}

func TestRechargeHoldsAtFullWithMaxLives(t *testing.T) {
	m := &Meter{}
	for i := 0; i < 600; i++ {
		if m.Tick(3, 3).BonusLife {
			t.Fatal("no bonus life at max lives")
		}
	}
	if m.Charge != 1 || !m.Ready {
		t.Errorf("meter = %+v, want full and ready", m)
	}
}

func TestReadyReportedOnce(t *testing.T) {
	m := &Meter{Charge: 0.999}
	var ready int
	for i := 0; i < 10; i++ {
		if m.Tick(3, 3).BecameReady {
			ready++
		}
	}
	if ready != 1 {
		t.Errorf("BecameReady fired %d times, want 1", ready)
	}
}
