package scenario

// Scenario defines one guided exercise loaded from YAML: setup commands
// that build the starting graph, checks that decide completion, and the
// teaching copy around them.
type Scenario struct {
	ID          string     `yaml:"id" json:"id"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description" json:"description"`
	Difficulty  Difficulty `yaml:"difficulty" json:"difficulty"`
	Skill       string     `yaml:"skill" json:"skill"`
	Setup       []string   `yaml:"setup" json:"-"`
	Validation  Validation `yaml:"validation" json:"-"`
	Hints       []string   `yaml:"hints" json:"hints"`
}

type Difficulty struct {
	Level string `yaml:"level" json:"level"` // basic, intermediate, advanced
	Stars int    `yaml:"stars" json:"stars"` // 1-5
}

type Validation struct {
	Checks []Check `yaml:"checks"`
}

// Check is one pass/fail condition evaluated against the session state.
type Check struct {
	Type           string `yaml:"type"`            // commit_message, merge_commit_exists, branch_exists, branch_at, current_branch, head_detached, tag_exists
	Description    string `yaml:"description"`     // user facing description
	MessagePattern string `yaml:"message_pattern"` // substring for commit message checks
	Name           string `yaml:"name"`            // branch or tag name
	Revision       string `yaml:"revision"`        // expected position for branch_at
	Negate         bool   `yaml:"negate"`          // inverts the pass condition
}
