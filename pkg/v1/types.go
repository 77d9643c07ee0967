package v1

// Commit is one entry of a branch history.
type Commit struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// Branch is a named line of history. Tip is nil for a branch with no commits.
type Branch struct {
	Name    string  `json:"name"`
	Tip     *Commit `json:"tip,omitempty"`
	Current bool    `json:"current"`
}
