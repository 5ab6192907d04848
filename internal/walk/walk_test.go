package walk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formframe/pkg/frames"
	"github.com/goliatone/go-formframe/pkg/server"
	"github.com/goliatone/go-formframe/pkg/testsupport"
)

// scripted answers prompts by message; select answers name an option label.
type scripted struct {
	answers map[string]string
	confirm bool
	asked   []string
	infos   []string
}

func (s *scripted) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.asked = append(s.asked, cfg.Message)
	value := s.answers[cfg.Message]
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (s *scripted) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.asked = append(s.asked, cfg.Message)
	want, ok := s.answers[cfg.Message]
	if !ok {
		return cfg.DefaultIndex, nil
	}
	for i, option := range cfg.Options {
		if option == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no option %q for %s", want, cfg.Message)
}

func (s *scripted) Confirm(context.Context, ConfirmConfig) (bool, error) {
	return s.confirm, nil
}

func (s *scripted) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func newWalker(t *testing.T, prompter Prompter, fns ...frames.OptionFn) *Walker {
	t.Helper()
	srv, err := server.New()
	if err != nil {
		t.Fatalf("server: %v", err)
	}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	host, err := frames.New(ts.URL, append([]frames.OptionFn{frames.WithHTTPClient(ts.Client())}, fns...)...)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	w, err := New(host, prompter)
	if err != nil {
		t.Fatalf("walker: %v", err)
	}
	return w
}

func TestRunFillsAndSubmits(t *testing.T) {
	prompter := &scripted{
		confirm: true,
		answers: map[string]string{
			"Full name":        "Ada Lovelace",
			"Address line 1":   "1 Main St",
			"City":             "Calgary",
			"Country":          "Canada",
			"State / Province": "Alberta",
			"Postal code":      "T2P 1J9",
		},
	}
	loc, err := newWalker(t, prompter).Run(testsupport.Context(), "/addresses/new")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if loc.Path != "/addresses/addr-1" {
		t.Fatalf("unexpected location %s", loc)
	}
	want := []string{"Full name", "Address line 1", "Address line 2", "City", "Country", "State / Province", "Postal code"}
	if diff := cmp.Diff(want, prompter.asked); diff != "" {
		t.Fatalf("unexpected prompts (-want +got):\n%s", diff)
	}
}

func TestRunWithoutScriptingUsesFallback(t *testing.T) {
	prompter := &scripted{
		confirm: true,
		answers: map[string]string{
			"Full name":        "Ada Lovelace",
			"Address line 1":   "1 Main St",
			"City":             "Perth",
			"Country":          "Australia",
			"State / Province": "Western Australia",
			"Postal code":      "6000",
		},
	}
	loc, err := newWalker(t, prompter, frames.WithScripting(false)).Run(testsupport.Context(), "/addresses/new")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if loc.Path != "/addresses/addr-1" {
		t.Fatalf("unexpected location %s", loc)
	}
	if prompter.asked[len(prompter.asked)-2] != "State / Province" {
		t.Fatalf("expected state prompt after the fallback reload, got %v", prompter.asked)
	}
}

func TestRunReportsHintForCountryWithoutStates(t *testing.T) {
	prompter := &scripted{
		confirm: true,
		answers: map[string]string{
			"Full name":      "Ada",
			"Address line 1": "Via della Posta",
			"City":           "Vatican City",
			"Country":        "Vatican City",
			"Postal code":    "00120",
		},
	}
	if _, err := newWalker(t, prompter).Run(testsupport.Context(), "/addresses/new"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(prompter.infos) != 1 || !strings.Contains(prompter.infos[0], "No state or province") {
		t.Fatalf("expected region hint, got %v", prompter.infos)
	}
	for _, asked := range prompter.asked {
		if asked == "State / Province" {
			t.Fatalf("state must not be prompted")
		}
	}
}

func TestRunShowsServerErrors(t *testing.T) {
	prompter := &scripted{
		confirm: true,
		answers: map[string]string{
			"Full name":      "Ada",
			"Address line 1": "1 Main St",
			"City":           "Springfield",
			"Postal code":    "12345",
		},
	}
	_, err := newWalker(t, prompter).Run(testsupport.Context(), "/addresses/new")
	var statusErr *frames.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
	found := false
	for _, msg := range prompter.infos {
		if strings.Contains(msg, "Country is required") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected country error, got %v", prompter.infos)
	}
}

func TestRunCancelled(t *testing.T) {
	prompter := &scripted{answers: map[string]string{
		"Full name":      "Ada",
		"Address line 1": "1 Main St",
		"City":           "Springfield",
		"Postal code":    "12345",
	}}
	if _, err := newWalker(t, prompter).Run(testsupport.Context(), "/addresses/new"); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(nil, &scripted{}); err == nil {
		t.Fatalf("expected error")
	}
}
