package escalation

import (
	"strings"
	"testing"
)

func TestRespond(t *testing.T) {
	msg := Respond()

	if msg == "" {
		t.Fatal("escalation message must not be empty")
	}
	for _, want := range []string{SupportEmail, SupportPhone, SupportHours, SupportWebsite} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing contact detail %q", want)
		}
	}
	if !strings.Contains(msg, "\n") {
		t.Error("expected a multi-line message")
	}
}

func TestRespond_Fixed(t *testing.T) {
	if Respond() != Respond() {
		t.Error("escalation message must be identical across calls")
	}
}
