package rebate

import "github.com/myfriendben/screener/internal/domain"

// Categorize fans incentives out into category buckets. An incentive whose
// items span several categories lands in each of them once. Buckets follow
// the fixed category order, keep input order, and empty ones are omitted.
func Categorize(incentives []domain.Incentive) []domain.RebateCategory {
	buckets := make(map[domain.CategoryType][]domain.Incentive, len(categoryOrder))
	for _, inc := range incentives {
		seen := make(map[domain.CategoryType]bool, 2)
		for _, it := range inc.Items {
			cat, ok := itemCategories[it]
			if !ok || seen[cat] {
				continue
			}
			seen[cat] = true
			buckets[cat] = append(buckets[cat], inc)
		}
	}

	out := make([]domain.RebateCategory, 0, len(buckets))
	for _, t := range categoryOrder {
		if len(buckets[t]) == 0 {
			continue
		}
		out = append(out, domain.RebateCategory{
			Type:       t,
			Name:       categoryNames[t],
			Incentives: buckets[t],
		})
	}
	return out
}

// CategorizeAndSort categorizes incentives and sorts every bucket.
func CategorizeAndSort(incentives []domain.Incentive) []domain.RebateCategory {
	cats := Categorize(incentives)
	for i := range cats {
		Sort(cats[i].Type, cats[i].Incentives)
	}
	return cats
}
