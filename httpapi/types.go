package httpapi

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code,omitempty"`
}

// Problem is the maze part shared by solve and verify requests. Coordinates
// are [col, row] pairs.
type Problem struct {
	// Maze holds the grid rows.
	Maze []string `json:"maze" binding:"required"`

	// Start defaults to the '*' marker.
	Start *[2]int `json:"start,omitempty"`

	// Goals default to the 'G' markers.
	Goals [][2]int `json:"goals,omitempty"`
}

type SolveRequest struct {
	Problem
}

type SolveResponse struct {
	Actions       string   `json:"actions"`
	Cost          int      `json:"cost"`
	Order         [][2]int `json:"order"`
	ExpandedNodes int      `json:"expanded_nodes"`
	Permutations  int      `json:"permutations"`
}

type VerifyRequest struct {
	Problem

	// Actions is a code string such as "UURR".
	Actions string `json:"actions"`
}

// VerifyResponse reports a replay. Cost is -1 when the actions walk into a wall.
type VerifyResponse struct {
	Cost    int  `json:"cost"`
	Success bool `json:"success"`
}

type ClausesRequest struct {
	Clauses []string `json:"clauses" binding:"required"`
}

type ClausesResponse struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

type EntailsRequest struct {
	Query string `json:"query" binding:"required"`
}

type EntailsResponse struct {
	// Query is the canonical form of the parsed query.
	Query    string `json:"query"`
	Entailed bool   `json:"entailed"`
	Strategy string `json:"strategy"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
