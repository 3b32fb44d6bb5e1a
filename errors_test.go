package kvrange

import (
	"errors"
	"strings"
	"testing"
)

var errTest = errors.New("test error")

func TestSelectorError(t *testing.T) {
	err := selErrf("startAfter", "start")
	if !errors.Is(err, ErrInvalidSelector) {
		t.Errorf("** selector error does not unwrap to ErrInvalidSelector")
	}
	var selErr *SelectorError
	if !errors.As(err, &selErr) || selErr.Field != "startAfter" || selErr.Conflict != "start" {
		t.Errorf("** errors.As = %+v", selErr)
	}
	if msg := err.Error(); !strings.Contains(msg, "startAfter") || !strings.Contains(msg, "start") {
		t.Errorf("** message does not name the conflicting fields: %q", msg)
	}
}

func TestDataError(t *testing.T) {
	err := dataErrf([]byte{0x70, 0x61}, 1, errTest, "bad key at %d", 1)
	if !errors.Is(err, errTest) {
		t.Errorf("** data error does not unwrap to its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "bad key at 1") || !strings.Contains(msg, "7061") {
		t.Errorf("** message missing detail or data excerpt: %q", msg)
	}
}

func TestDataErrorTruncatesLongData(t *testing.T) {
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i)
	}
	msg := dataErrf(data, 0, nil, "oops").Error()
	if !strings.Contains(msg, "...") {
		t.Errorf("** long data not elided: %q", msg)
	}
	if !strings.Contains(msg, "(200)") {
		t.Errorf("** message missing total length: %q", msg)
	}
}
