package git

// Traversal cap for graph walks. A simulated repository stays far below
// this; it bounds the damage of a corrupted snapshot.
const maxTraversalSteps = 20000

// MergeBase returns the nearest common ancestor of a and b, walking
// parent edges breadth-first from both tips at once. The second return
// is false when either id is unknown or the histories are unrelated.
func MergeBase(st *State, a, b string) (string, bool) {
	if _, ok := st.Commits[a]; !ok {
		return "", false
	}
	if _, ok := st.Commits[b]; !ok {
		return "", false
	}
	if a == b {
		return a, true
	}

	seenA := map[string]bool{a: true}
	seenB := map[string]bool{b: true}
	queueA := []string{a}
	queueB := []string{b}

	for steps := 0; steps < maxTraversalSteps && (len(queueA) > 0 || len(queueB) > 0); steps++ {
		if id, ok := stepFrontier(st, &queueA, seenA, seenB); ok {
			return id, true
		}
		if id, ok := stepFrontier(st, &queueB, seenB, seenA); ok {
			return id, true
		}
	}
	return "", false
}

// stepFrontier pops one commit off queue, reports it if the opposite
// walk has already seen it, and enqueues its unseen parents.
func stepFrontier(st *State, queue *[]string, seen, other map[string]bool) (string, bool) {
	if len(*queue) == 0 {
		return "", false
	}
	id := (*queue)[0]
	*queue = (*queue)[1:]
	if other[id] {
		return id, true
	}
	for _, p := range st.Commits[id].Parents {
		if !seen[p] {
			seen[p] = true
			*queue = append(*queue, p)
		}
	}
	return "", false
}

// IsAncestor reports whether anc is reachable from desc over parent
// edges. Every commit is its own ancestor.
func IsAncestor(st *State, anc, desc string) bool {
	if _, ok := st.Commits[anc]; !ok {
		return false
	}
	seen := map[string]bool{desc: true}
	queue := []string{desc}
	for steps := 0; len(queue) > 0 && steps < maxTraversalSteps; steps++ {
		id := queue[0]
		queue = queue[1:]
		if id == anc {
			return true
		}
		for _, p := range st.Commits[id].Parents {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return false
}

// ReachableFrom returns the set of commit ids reachable from the given
// tips, tips included. Unknown tips are skipped.
func ReachableFrom(st *State, tips ...string) map[string]bool {
	seen := make(map[string]bool)
	var queue []string
	for _, tip := range tips {
		if _, ok := st.Commits[tip]; ok && !seen[tip] {
			seen[tip] = true
			queue = append(queue, tip)
		}
	}
	for steps := 0; len(queue) > 0 && steps < maxTraversalSteps; steps++ {
		id := queue[0]
		queue = queue[1:]
		for _, p := range st.Commits[id].Parents {
			if !seen[p] {
				seen[p] = true
				queue = append(queue, p)
			}
		}
	}
	return seen
}

// FirstParentChain walks first parents from tip and returns the ids
// newest first, stopping before stop or at a root. tip itself is
// included; stop is not.
func FirstParentChain(st *State, tip, stop string) []string {
	var chain []string
	for id := tip; id != "" && id != stop; {
		c, ok := st.Commits[id]
		if !ok {
			break
		}
		chain = append(chain, id)
		if len(c.Parents) == 0 || len(chain) >= maxTraversalSteps {
			break
		}
		id = c.Parents[0]
	}
	return chain
}
