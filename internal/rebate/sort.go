package rebate

import (
	"cmp"
	"slices"

	"github.com/myfriendben/screener/internal/domain"
)

// authorityPriority ranks authority types; anything absent ranks last.
var authorityPriority = map[domain.AuthorityType]int{
	domain.AuthorityFederal:    0,
	domain.AuthorityState:      1,
	domain.AuthorityUtility:    2,
	domain.AuthorityGasUtility: 3,
	domain.AuthorityCounty:     4,
	domain.AuthorityCity:       5,
	domain.AuthorityOther:      6,
}

const unknownAuthority = 7

func authorityRank(t domain.AuthorityType) int {
	if p, ok := authorityPriority[t]; ok {
		return p
	}
	return unknownAuthority
}

// amountValue is the figure incentives are compared by: the representative
// amount when given, else the cap, else the headline number.
func amountValue(a domain.Amount) float64 {
	switch {
	case a.Representative != nil:
		return *a.Representative
	case a.Maximum != nil:
		return *a.Maximum
	default:
		return a.Number
	}
}

// compareNames orders authority names ascending with missing names last.
func compareNames(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}

// Sort orders one bucket in place: authority priority first, then
// equipment class for HVAC or authority name elsewhere, then the largest
// amount first. Ties keep their input order.
func Sort(category domain.CategoryType, incentives []domain.Incentive) {
	slices.SortStableFunc(incentives, func(a, b domain.Incentive) int {
		if c := cmp.Compare(authorityRank(a.AuthorityType), authorityRank(b.AuthorityType)); c != 0 {
			return c
		}
		var c int
		if category == domain.CategoryHVAC {
			c = cmp.Compare(equipmentClass(a.Items), equipmentClass(b.Items))
		} else {
			c = compareNames(a.AuthorityName, b.AuthorityName)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(amountValue(b.Amount), amountValue(a.Amount))
	})
}
