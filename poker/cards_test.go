package poker

import "testing"

func TestCardRoundTrip(t *testing.T) {
	t.Parallel()

	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < 13; rank++ {
			c := NewCard(rank, suit)
			if c.Rank() != rank {
				t.Errorf("NewCard(%d, %d).Rank() = %d", rank, suit, c.Rank())
			}
			if c.Suit() != suit {
				t.Errorf("NewCard(%d, %d).Suit() = %d", rank, suit, c.Suit())
			}

			parsed, err := ParseCard(c.String())
			if err != nil {
				t.Fatalf("ParseCard(%q): %v", c.String(), err)
			}
			if parsed != c {
				t.Errorf("ParseCard(%q) = %v, want %v", c.String(), parsed, c)
			}
		}
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		rank uint8
		suit uint8
	}{
		{"As", Ace, Spades},
		{"as", Ace, Spades},
		{"2c", Two, Clubs},
		{"Td", Ten, Diamonds},
		{"kh", King, Hearts},
	}
	for _, tc := range cases {
		c, err := ParseCard(tc.in)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", tc.in, err)
		}
		if c.Rank() != tc.rank || c.Suit() != tc.suit {
			t.Errorf("ParseCard(%q) = rank %d suit %d, want %d %d", tc.in, c.Rank(), c.Suit(), tc.rank, tc.suit)
		}
	}

	for _, bad := range []string{"", "A", "1s", "Ax", "10c", "Zz"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) should fail", bad)
		}
	}
}

func TestRankValue(t *testing.T) {
	t.Parallel()

	if v := NewCard(Two, Clubs).RankValue(); v != 2 {
		t.Errorf("deuce value = %d, want 2", v)
	}
	if v := NewCard(Ace, Spades).RankValue(); v != 14 {
		t.Errorf("ace value = %d, want 14", v)
	}
}

func TestHandOperations(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("AsKdQh")
	h := NewHand(cards...)

	if h.CountCards() != 3 {
		t.Errorf("CountCards = %d, want 3", h.CountCards())
	}
	for _, c := range cards {
		if !h.Contains(c) {
			t.Errorf("hand should contain %v", c)
		}
	}
	if h.Contains(MustParseCards("2c")[0]) {
		t.Errorf("hand should not contain 2c")
	}

	h = h.Add(MustParseCards("2c")[0])
	if h.CountCards() != 4 {
		t.Errorf("CountCards after Add = %d, want 4", h.CountCards())
	}

	// Adding a card already present is a no-op on the mask.
	h = h.Add(cards[0])
	if h.CountCards() != 4 {
		t.Errorf("CountCards after duplicate Add = %d, want 4", h.CountCards())
	}
}

func TestGetSuitMask(t *testing.T) {
	t.Parallel()

	h := NewHand(MustParseCards("2s3sAs4c")...)

	spades := h.GetSuitMask(Spades)
	if spades != 1<<Two|1<<Three|1<<Ace {
		t.Errorf("spade mask = %013b", spades)
	}
	clubs := h.GetSuitMask(Clubs)
	if clubs != 1<<Four {
		t.Errorf("club mask = %013b", clubs)
	}
	if h.GetSuitMask(Hearts) != 0 {
		t.Errorf("heart mask should be empty")
	}
}

func TestHandCards(t *testing.T) {
	t.Parallel()

	cards := MustParseCards("AsKdQh2c")
	h := NewHand(cards...)

	got := h.Cards()
	if len(got) != 4 {
		t.Fatalf("Cards() returned %d cards, want 4", len(got))
	}
	for _, c := range cards {
		found := false
		for _, g := range got {
			if g == c {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Cards() missing %v", c)
		}
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Errorf("MustParseCards should panic on odd-length input")
		}
	}()
	MustParseCards("AsK")
}
