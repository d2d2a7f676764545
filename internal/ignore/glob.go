package ignore

// globMatch matches name against a glob pattern supporting "*" (any
// run of characters within one path segment) and "?" (any single
// character except the separator). It uses the classic two-pointer
// scheme with a single backtrack point per "*", so matching is linear
// in practice and never recursive.
func globMatch(pattern, name string) bool {
	px, nx := 0, 0
	backPx, backNx := -1, -1

	for px < len(pattern) || nx < len(name) {
		if px < len(pattern) {
			switch c := pattern[px]; c {
			case '*':
				// Record the restart point; a star initially matches
				// the empty string.
				backPx = px
				backNx = nx
				px++
				continue
			case '?':
				if nx < len(name) && name[nx] != '/' {
					px++
					nx++
					continue
				}
			default:
				if nx < len(name) && name[nx] == c {
					px++
					nx++
					continue
				}
			}
		}

		// Mismatch: extend the most recent star by one character,
		// unless that would make it swallow a separator.
		if backPx >= 0 && backNx < len(name) && name[backNx] != '/' {
			backNx++
			px = backPx + 1
			nx = backNx
			continue
		}
		return false
	}
	return true
}
