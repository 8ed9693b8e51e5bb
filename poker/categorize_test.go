package poker

import "testing"

func holePair(t *testing.T, s string) (Card, Card) {
	t.Helper()
	cards := MustParseCards(s)
	if len(cards) != 2 {
		t.Fatalf("want 2 cards in %q", s)
	}
	return cards[0], cards[1]
}

func TestHandLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cards string
		want  string
	}{
		{"AsKs", "AKs"},
		{"AsKd", "AKo"},
		{"KdAs", "AKo"}, // Order independent
		{"QcQh", "QQ"},
		{"2c7d", "72o"},
		{"Th9h", "T9s"},
	}
	for _, tc := range cases {
		c1, c2 := holePair(t, tc.cards)
		if got := HandLabel(c1, c2); got != tc.want {
			t.Errorf("HandLabel(%s) = %q, want %q", tc.cards, got, tc.want)
		}
	}
}

func TestCategorizeHoleCards(t *testing.T) {
	t.Parallel()

	cases := []struct {
		cards string
		want  HoleCardCategory
	}{
		{"AsAd", CategoryPremium},
		{"JcJh", CategoryPremium},
		{"AsKd", CategoryPremium},
		{"TcTd", CategoryStrong},
		{"AsQd", CategoryStrong},
		{"AsJd", CategoryStrong},
		{"7c7d", CategoryMedium},
		{"KhQh", CategoryMedium},
		{"2c2d", CategoryWeak},
		{"6h5h", CategoryWeak},
		{"7c2d", CategoryTrash},
		{"Kc4d", CategoryTrash},
	}
	for _, tc := range cases {
		c1, c2 := holePair(t, tc.cards)
		if got := CategorizeHoleCards(c1, c2); got != tc.want {
			t.Errorf("CategorizeHoleCards(%s) = %q, want %q", tc.cards, got, tc.want)
		}
	}
}

func TestHandPercentile(t *testing.T) {
	t.Parallel()

	aa := HandPercentile(MustParseCards("AsAd")[0], MustParseCards("AsAd")[1])
	seventwo := HandPercentile(MustParseCards("7c2d")[0], MustParseCards("7c2d")[1])

	if aa != 1.0 {
		t.Errorf("AA percentile = %.3f, want 1.0", aa)
	}
	if seventwo != 0.0 {
		t.Errorf("72o percentile = %.3f, want 0.0", seventwo)
	}

	aks := HandPercentile(MustParseCards("AhKh")[0], MustParseCards("AhKh")[1])
	ako := HandPercentile(MustParseCards("AhKd")[0], MustParseCards("AhKd")[1])
	if aks <= ako {
		t.Errorf("AKs (%.1f) should rank above AKo (%.1f)", aks, ako)
	}
}
