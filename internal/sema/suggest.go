package sema

// closestName подбирает кандидата для "Did you mean" по дистанции
// Левенштейна. Слишком далёкие совпадения отбрасываются.
func closestName(name string, candidates []string) (string, bool) {
	best := ""
	bestDist := maxSuggestDistance(name) + 1
	for _, candidate := range candidates {
		if candidate == name || candidate == "" {
			continue
		}
		d := levenshtein(name, candidate)
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best, best != ""
}

// Порог: треть длины имени, минимум 1, максимум 3 правки.
func maxSuggestDistance(name string) int {
	limit := len(name) / 3
	if limit < 1 {
		limit = 1
	}
	if limit > 3 {
		limit = 3
	}
	return limit
}

// levenshtein — классическое редакционное расстояние на двух строках байт.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
