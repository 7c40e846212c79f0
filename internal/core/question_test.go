package core

import "testing"

func TestPlayerIndexOther(t *testing.T) {
	if Player1.Other() != Player2 {
		t.Errorf("Player1.Other() = %v, expected Player2", Player1.Other())
	}
	if Player2.Other() != Player1 {
		t.Errorf("Player2.Other() = %v, expected Player1", Player2.Other())
	}
}

func TestPlayerIndexValid(t *testing.T) {
	tests := []struct {
		p        PlayerIndex
		expected bool
	}{
		{Player1, true},
		{Player2, true},
		{-1, false},
		{2, false},
	}

	for _, tc := range tests {
		if tc.p.Valid() != tc.expected {
			t.Errorf("PlayerIndex(%d).Valid() = %v, expected %v", int(tc.p), tc.p.Valid(), tc.expected)
		}
	}
}

func TestSourceFunc(t *testing.T) {
	var got PlayerIndex = -1
	src := SourceFunc(func(p PlayerIndex) (Question, error) {
		got = p
		return nil, nil
	})

	if _, err := src.Next(Player2); err != nil {
		t.Fatalf("Next() failed: %v", err)
	}
	if got != Player2 {
		t.Errorf("SourceFunc received %v, expected Player2", got)
	}
}

func TestActionString(t *testing.T) {
	if ActionForfeit.String() != "Forfeit" {
		t.Errorf("ActionForfeit.String() = %q", ActionForfeit.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
	if in := SelectOption(2); in.Action != ActionSelect || in.Option != 2 {
		t.Errorf("SelectOption(2) = %+v", in)
	}
}
