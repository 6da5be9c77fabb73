package models

import (
	"errors"
	"testing"
)

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		in      string
		want    EntityType
		wantErr bool
	}{
		{in: "country", want: TypeCountry},
		{in: "institution", want: TypeInstitution},
		{in: "countries", wantErr: true},
		{in: "Country", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseEntityType(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseEntityType(%q): expected error", tc.in)
			} else if !errors.Is(err, ErrInvalidEntityType) {
				t.Errorf("ParseEntityType(%q): error %v not ErrInvalidEntityType", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEntityType(%q): unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseEntityType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEntityTypePlural(t *testing.T) {
	if got := TypeCountry.Plural(); got != "countries" {
		t.Errorf("country plural: got %q", got)
	}
	if got := TypeInstitution.Plural(); got != "institutions" {
		t.Errorf("institution plural: got %q", got)
	}
}

func validEntity() Entity {
	return Entity{
		ID:         "NZL",
		Name:       "New Zealand",
		EntityType: TypeCountry,
		Stats:      Stats{NOutputs: 100, NOutputsOpen: 40},
		Years: []Year{
			{Year: 2021, Stats: Stats{NOutputs: 50, NOutputsOpen: 20}},
		},
	}
}

func TestEntityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *Entity)
		wantErr error
	}{
		{name: "valid", mutate: func(e *Entity) {}},
		{name: "missing id", mutate: func(e *Entity) { e.ID = "" }, wantErr: ErrMissingID},
		{name: "missing name", mutate: func(e *Entity) { e.Name = "" }, wantErr: ErrMissingName},
		{name: "bad type", mutate: func(e *Entity) { e.EntityType = "region" }, wantErr: ErrInvalidEntityType},
		{
			name:    "open exceeds total",
			mutate:  func(e *Entity) { e.Stats.NOutputsOpen = 101 },
			wantErr: errors.New("any"),
		},
		{
			name:    "negative outputs",
			mutate:  func(e *Entity) { e.Stats.NOutputs = -1 },
			wantErr: errors.New("any"),
		},
		{
			name:    "bad year stats",
			mutate:  func(e *Entity) { e.Years[0].Stats.NOutputsOpen = 60 },
			wantErr: errors.New("any"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := validEntity()
			tc.mutate(&e)
			err := e.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			// Sentinel cases must match with errors.Is.
			if tc.wantErr == ErrMissingID || tc.wantErr == ErrMissingName || tc.wantErr == ErrInvalidEntityType {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("got %v, want %v", err, tc.wantErr)
				}
			}
		})
	}
}

func TestStringSet(t *testing.T) {
	s := NewStringSet("a", "", "b", "a")
	if len(s) != 2 {
		t.Errorf("got %d members, want 2 (empty and duplicate dropped)", len(s))
	}
	if !s.Has("a") || !s.Has("b") || s.Has("c") {
		t.Errorf("membership wrong: %v", s)
	}
	if s.Empty() {
		t.Error("non-empty set reported empty")
	}
	if !(StringSet{}).Empty() {
		t.Error("empty set not reported empty")
	}
	if got := s.Values(); len(got) != 2 {
		t.Errorf("Values: got %v", got)
	}
}
