// Package httpapi serves maze solving, action verification and the shared
// knowledge base over JSON.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/internal/mazefile"
	"github.com/pdrpinto/pathfinder/kb"
	"github.com/pdrpinto/pathfinder/maze"
)

// Handlers holds the dependencies of the HTTP handlers. The knowledge base is
// shared by every request.
type Handlers struct {
	knowledgeBase *kb.KnowledgeBase
	mazeOptions   []maze.Option
	searchOptions []pathfinder.Option
	maxGoals      int
	logger        *slog.Logger
}

// HandlerOption configures Handlers.
type HandlerOption func(*Handlers)

// WithMazeOptions sets the options used to parse request mazes, such as terrain costs.
func WithMazeOptions(options ...maze.Option) HandlerOption {
	return func(h *Handlers) { h.mazeOptions = options }
}

// WithSearchOptions sets the options passed to every tour.
func WithSearchOptions(options ...pathfinder.Option) HandlerOption {
	return func(h *Handlers) { h.searchOptions = options }
}

// WithMaxGoals rejects solve requests with more than n goals. n <= 0 means no
// limit.
func WithMaxGoals(n int) HandlerOption {
	return func(h *Handlers) { h.maxGoals = n }
}

func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handlers) { h.logger = logger }
}

// NewHandlers creates handlers around knowledgeBase.
func NewHandlers(knowledgeBase *kb.KnowledgeBase, options ...HandlerOption) *Handlers {
	h := &Handlers{knowledgeBase: knowledgeBase}
	for _, option := range options {
		option(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	getOrCreateRequestID(c)
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleSolve handles POST /v1/solve.
//
// Tours every goal of the maze and returns the cheapest action sequence.
func (h *Handlers) HandleSolve(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleSolve")

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	grid, start, goals, err := h.buildProblem(req.Problem)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	goalCount := len(goals)
	if goalCount == 0 {
		goalCount = len(grid.Goals())
	}
	if h.maxGoals > 0 && goalCount > h.maxGoals {
		logger.Warn("Too many goals", "goals", goalCount, "max_goals", h.maxGoals)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("%d goals exceed the limit of %d", goalCount, h.maxGoals),
			Code:  "TOO_MANY_GOALS",
		})
		return
	}

	searchOptions := append(slices.Clone(h.searchOptions), pathfinder.WithLogger(logger))
	result, err := pathfinder.Plan(c.Request.Context(), grid, start, goals, searchOptions...)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	order := make([][2]int, 0, len(result.Order))
	for _, goal := range result.Order {
		order = append(order, [2]int{goal.Col, goal.Row})
	}
	logger.Info("Maze solved",
		"cost", result.TotalCost,
		"goals", len(result.Order),
		"expanded_nodes", result.ExpandedNodes)

	c.JSON(http.StatusOK, SolveResponse{
		Actions:       maze.FormatActions(result.Actions),
		Cost:          result.TotalCost,
		Order:         order,
		ExpandedNodes: result.ExpandedNodes,
		Permutations:  result.Permutations,
	})
}

// HandleVerify handles POST /v1/verify.
//
// Replays the actions on the maze. An invalid replay is a normal response
// with success false and cost -1.
func (h *Handlers) HandleVerify(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleVerify")

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	grid, start, goals, err := h.buildProblem(req.Problem)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	actions, err := maze.ParseActions(req.Actions)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	cost, success := grid.Verify(actions, start, goals)
	c.JSON(http.StatusOK, VerifyResponse{Cost: cost, Success: success})
}

// HandleAssert handles POST /v1/kb/clauses.
//
// Either every clause is asserted or, on a syntax error, none is.
func (h *Handlers) HandleAssert(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleAssert")

	var req ClausesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	clauses, err := mazefile.ParseClauses(req.Clauses)
	if err != nil {
		h.fail(c, logger, err)
		return
	}
	added := h.knowledgeBase.AssertAll(clauses...)
	total := h.knowledgeBase.Len()
	logger.Info("Clauses asserted", "added", added, "total", total)

	c.JSON(http.StatusOK, ClausesResponse{Added: added, Total: total})
}

// HandleEntails handles POST /v1/kb/entails.
func (h *Handlers) HandleEntails(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleEntails")

	var req EntailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST"})
		return
	}

	query, err := kb.ParseClause(req.Query)
	if err != nil {
		h.fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, EntailsResponse{
		Query:    query.String(),
		Entailed: h.knowledgeBase.Entails(query),
		Strategy: h.knowledgeBase.Strategy().String(),
	})
}

func (h *Handlers) buildProblem(problem Problem) (*maze.Grid, maze.State, []maze.State, error) {
	document := mazefile.Problem{Maze: problem.Maze}
	if problem.Start != nil {
		document.Start = &mazefile.Coordinate{Col: problem.Start[0], Row: problem.Start[1]}
	}
	for _, goal := range problem.Goals {
		document.Goals = append(document.Goals, mazefile.Coordinate{Col: goal[0], Row: goal[1]})
	}
	return document.Build(h.mazeOptions...)
}

// fail maps library errors onto status codes: bad input is 400, a well-formed
// problem without an answer is 422.
func (h *Handlers) fail(c *gin.Context, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	errCode := "INTERNAL"

	switch {
	case errors.Is(err, maze.ErrMalformedGrid):
		statusCode, errCode = http.StatusBadRequest, "MALFORMED_GRID"
	case errors.Is(err, maze.ErrInvalidAction):
		statusCode, errCode = http.StatusBadRequest, "INVALID_ACTIONS"
	case errors.Is(err, mazefile.ErrInvalidDocument):
		statusCode, errCode = http.StatusBadRequest, "INVALID_DOCUMENT"
	case errors.Is(err, pathfinder.ErrInvalidStart):
		statusCode, errCode = http.StatusBadRequest, "INVALID_START"
	case errors.Is(err, kb.ErrClauseSyntax):
		statusCode, errCode = http.StatusBadRequest, "CLAUSE_SYNTAX"
	case errors.Is(err, pathfinder.ErrUnreachableGoal):
		statusCode, errCode = http.StatusUnprocessableEntity, "UNREACHABLE_GOAL"
	case errors.Is(err, pathfinder.ErrNoSolution):
		statusCode, errCode = http.StatusUnprocessableEntity, "NO_SOLUTION"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		statusCode, errCode = http.StatusServiceUnavailable, "CANCELLED"
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Warn("Request rejected", "error", err, "code", errCode)
	}
	c.JSON(statusCode, ErrorResponse{Error: err.Error(), Code: errCode})
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
