package git

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Short hex ids like git's abbreviated hashes.
const idLength = 7

// mintID derives an id for c that no commit in st already uses. The
// digest covers every field that distinguishes the commit; the nonce
// only matters when a truncated hash collides.
func mintID(st *State, c Commit) string {
	for nonce := 0; ; nonce++ {
		h := sha256.New()
		fmt.Fprintf(h, "%d\n%s\n%s\n%s\n%d\n%d",
			c.Seq, strings.Join(c.Parents, " "), c.Author, c.Message, c.Timestamp, nonce)
		id := hex.EncodeToString(h.Sum(nil))[:idLength]
		if _, taken := st.Commits[id]; !taken {
			return id
		}
	}
}

// addCommit builds a commit from parents/message/author, stamps it with
// the engine clock and the next creation seq, mints its id and inserts
// it into st. st must be a private clone.
func (e *Engine) addCommit(st *State, parents []string, message, author string) Commit {
	if author == "" {
		author = e.Author
	}
	c := Commit{
		Parents:   parents,
		Message:   message,
		Author:    author,
		Timestamp: e.Now().UnixMilli(),
		Seq:       st.NextSeq(),
	}
	c.ID = mintID(st, c)
	st.Commits[c.ID] = c
	return c
}
