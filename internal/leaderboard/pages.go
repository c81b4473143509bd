package leaderboard

// PageSize is the number of rows rendered per leaderboard page.
const PageSize = 15

// Pages splits formatted rows into fixed-size pages.
func Pages(rows []string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	out := make([][]string, 0, (len(rows)+PageSize-1)/PageSize)
	for start := 0; start < len(rows); start += PageSize {
		end := start + PageSize
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}
