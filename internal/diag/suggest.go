package diag

// damerauLevenshtein computes the Damerau-Levenshtein edit distance between
// a and b, counting insertion, deletion, substitution, and adjacent
// transposition as single edits.
func damerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	lenA, lenB := len(ra), len(rb)

	// da tracks, per rune value, the last row at which it occurred in b.
	da := make(map[rune]int)

	d := make([][]int, lenA+2)
	for i := range d {
		d[i] = make([]int, lenB+2)
	}

	maxDist := lenA + lenB
	d[0][0] = maxDist
	for i := 0; i <= lenA; i++ {
		d[i+1][0] = maxDist
		d[i+1][1] = i
	}
	for j := 0; j <= lenB; j++ {
		d[0][j+1] = maxDist
		d[1][j+1] = j
	}

	for i := 1; i <= lenA; i++ {
		db := 0
		for j := 1; j <= lenB; j++ {
			i2 := da[rb[j-1]]
			j2 := db
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
				db = j
			}
			d[i+1][j+1] = min4(
				d[i][j]+cost,
				d[i+1][j]+1,
				d[i][j+1]+1,
				d[i2][j2]+(i-i2-1)+1+(j-j2-1),
			)
		}
		da[ra[i-1]] = i
	}

	return d[lenA+1][lenB+1]
}

func min4(a, b, c, d int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if d < m {
		m = d
	}
	return m
}

// Suggest returns the candidate closest to word by Damerau-Levenshtein
// distance, provided that distance is <= 2 (spec.md §7). Returns "" if no
// candidate is close enough.
func Suggest(word string, candidates []string) string {
	best := ""
	bestDist := 3 // one more than the accepted maximum
	for _, c := range candidates {
		dist := damerauLevenshtein(word, c)
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	if bestDist > 2 {
		return ""
	}
	return best
}
