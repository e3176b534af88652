package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"finledger/internal/models"
)

// CardStanding is the derived position of one credit card.
type CardStanding struct {
	Card        string          `json:"card"`
	Limit       decimal.Decimal `json:"limit"`
	Spent       decimal.Decimal `json:"spent"`
	Repaid      decimal.Decimal `json:"repaid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Available   decimal.Decimal `json:"available"`
	Registered  bool            `json:"registered"`
}

// StandingFor computes spent, repaid, outstanding and available credit for a
// card. Matching is case-insensitive. Available may go negative when the card
// is over its limit.
func StandingFor(txns []models.Transaction, card string, limit decimal.Decimal) CardStanding {
	key := models.NormalizeName(card)
	spent, repaid := decimal.Zero, decimal.Zero
	for _, t := range txns {
		if t.Card == "" || models.NormalizeName(t.Card) != key {
			continue
		}
		switch t.Type {
		case models.TransactionTypeExpense:
			spent = spent.Add(t.Amount)
		case models.TransactionTypeRepayment:
			repaid = repaid.Add(t.Amount)
		}
	}

	outstanding := spent.Sub(repaid)
	return CardStanding{
		Card:        card,
		Limit:       limit,
		Spent:       spent,
		Repaid:      repaid,
		Outstanding: outstanding,
		Available:   limit.Sub(outstanding),
	}
}

// CardStandingOf looks the card up in the snapshot registry. A card that is
// not registered (removed, or never added) is reported with a zero limit and
// Registered set to false; its history still sums.
func CardStandingOf(s Snapshot, card string) CardStanding {
	key := models.NormalizeName(card)
	for _, c := range s.Cards {
		if models.NormalizeName(c.Card) == key {
			standing := StandingFor(s.Transactions, c.Card, c.MaxLimit)
			standing.Registered = true
			return standing
		}
	}
	return StandingFor(s.Transactions, card, decimal.Zero)
}

// CardStandings reports every registered card, ordered by name, followed by
// every orphaned card name that still appears in the ledger.
func CardStandings(s Snapshot) []CardStanding {
	cards := append([]models.CreditCard(nil), s.Cards...)
	sort.SliceStable(cards, func(i, j int) bool {
		return models.NormalizeName(cards[i].Card) < models.NormalizeName(cards[j].Card)
	})

	seen := make(map[string]bool, len(cards))
	out := make([]CardStanding, 0, len(cards))
	for _, c := range cards {
		seen[models.NormalizeName(c.Card)] = true
		standing := StandingFor(s.Transactions, c.Card, c.MaxLimit)
		standing.Registered = true
		out = append(out, standing)
	}

	var orphans []string
	for _, t := range s.Transactions {
		key := models.NormalizeName(t.Card)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		orphans = append(orphans, t.Card)
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		out = append(out, StandingFor(s.Transactions, name, decimal.Zero))
	}
	return out
}
