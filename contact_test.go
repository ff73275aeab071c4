package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContactFormValidate(t *testing.T) {
	tests := []struct {
		name string
		form contactForm
		want error
	}{
		{"email", contactForm{Name: "Ada", Contact: "ada@example.com", Summary: "An app"}, nil},
		{"phone", contactForm{Name: "Ada", Contact: "+234 801 234 5678", Summary: "An app"}, nil},
		{"missing name", contactForm{Contact: "ada@example.com", Summary: "An app"}, errMissingField},
		{"missing summary", contactForm{Name: "Ada", Contact: "ada@example.com"}, errMissingField},
		{"missing contact", contactForm{Name: "Ada", Summary: "An app"}, errMissingField},
		{"bad email", contactForm{Name: "Ada", Contact: "ada@", Summary: "An app"}, errInvalidEmail},
		{"neither email nor phone", contactForm{Name: "Ada", Contact: "call me", Summary: "An app"}, errInvalidEmail},
		{"separators only", contactForm{Name: "Ada", Contact: ".......", Summary: "An app"}, errInvalidEmail},
		{"parentheses only", contactForm{Name: "Ada", Contact: "(((((((", Summary: "An app"}, errInvalidEmail},
		{"too few digits", contactForm{Name: "Ada", Contact: "(12) 34-5", Summary: "An app"}, errInvalidEmail},
		{"formatted phone", contactForm{Name: "Ada", Contact: "(555) 010-0199", Summary: "An app"}, nil},
		{"summary too long", contactForm{Name: "Ada", Contact: "ada@example.com", Summary: strings.Repeat("é", 5001)}, errTooLong},
		{"summary at limit", contactForm{Name: "Ada", Contact: "ada@example.com", Summary: strings.Repeat("é", 5000)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestContactDelivered(t *testing.T) {
	sender := &fakeSender{}
	s, r := newTestServer(t, sender)

	w := do(r, postForm("/contact", url.Values{
		"name":    {"  Ada  "},
		"contact": {"ada@example.com"},
		"summary": {"A trivia app"},
	}))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Thank you for your message!")

	require.Len(t, sender.sent, 1)
	require.Equal(t, "Ada", sender.sent[0].Name)

	messages, err := s.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.True(t, messages[0].Delivered)
	require.Len(t, messages[0].ID, 36)
}

func TestContactInvalid(t *testing.T) {
	sender := &fakeSender{}
	s, r := newTestServer(t, sender)

	w := do(r, postForm("/contact", url.Values{"name": {"Ada"}, "contact": {"nope"}, "summary": {"hi"}}))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "valid email address or phone number")
	require.Empty(t, sender.sent)

	messages, err := s.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestContactDeliveryFailureKeepsMessage(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay down")}
	s, r := newTestServer(t, sender)

	w := do(r, postForm("/contact", url.Values{
		"name":    {"Ada"},
		"contact": {"+1 555 010 0100"},
		"summary": {"A trivia app"},
	}))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "error sending your message")

	messages, err := s.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.False(t, messages[0].Delivered)
}
