package rate

import (
	"testing"
	"time"
)

func TestLimiter(t *testing.T) {
	burst := 1

	interval := 10 * time.Millisecond
	lim := Every(interval)
	r := NewLimiter(burst, 100, lim)

	tooshort := 1 * time.Millisecond

	client := "192.0.2.1"
	expected := []bool{true, false, true, true, false, false}
	waits := []time.Duration{tooshort, interval, interval, tooshort, tooshort, tooshort}
	for i, exp := range expected {
		if got := r.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}

func TestLimiterIsolatesClients(t *testing.T) {
	interval := 100 * time.Millisecond
	r := NewLimiter(1, 100, Every(interval))

	if !r.Check("192.0.2.1") {
		t.Fatal("first request of first client should pass")
	}
	if r.Check("192.0.2.1") {
		t.Fatal("second immediate request of first client should be limited")
	}
	if !r.Check("192.0.2.2") {
		t.Fatal("an unrelated client must not be limited by the first one")
	}
}

func TestLimiterWithBurst(t *testing.T) {
	client := "192.0.2.1"
	burst := 10

	interval := 100 * time.Millisecond
	lim := Every(interval)

	tooshort := 10 * time.Millisecond

	shortest := 1 * time.Millisecond

	expected := []bool{true, true, true, true, true, true, true, true, true, true}
	waits := []time.Duration{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	expected = append(expected, false, true, true, false, false, false)
	waits = append(waits, interval, interval, tooshort, tooshort, shortest, shortest)

	rr := NewLimiter(burst, 100, lim)
	for i, exp := range expected {
		if got := rr.Check(client); got != exp {
			t.Fatalf("iteration %d: expected %v, but got %v", i, exp, got)
		}
		time.Sleep(waits[i])
	}
}
