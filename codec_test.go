package valido_test

import (
	"testing"
	"time"

	valido "github.com/valido-go/valido"
)

func TestParseDatetime(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.ParseDatetime())

	got := mustValidate(t, v, "2024-05-01T10:30:00Z").(time.Time)
	if !got.Equal(time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("got %v", got)
	}
	mustValidate(t, v, "2024-05-01T10:30:00.123Z")

	now := time.Now()
	if got := mustValidate(t, v, now); got != any(now) {
		t.Fatalf("time.Time must pass through unchanged")
	}
	mustReject(t, v, "yesterday")
	mustReject(t, v, 42)
}

func TestParseDatetimeCustomLayout(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.ParseDatetime("2006-01-02"))
	got := mustValidate(t, v, "2024-05-01").(time.Time)
	if got.Year() != 2024 || got.Month() != time.May {
		t.Fatalf("got %v", got)
	}
	mustReject(t, v, "2024-05-01T10:30:00Z")
}

func TestParseDuration(t *testing.T) {
	c := valido.NewContext()
	v := mustParse(t, c, valido.ParseDuration())
	if got := mustValidate(t, v, "1h30m"); got != 90*time.Minute {
		t.Fatalf("got %v", got)
	}
	if got := mustValidate(t, v, time.Second); got != time.Second {
		t.Fatalf("got %v", got)
	}
	mustReject(t, v, "fast")
}
