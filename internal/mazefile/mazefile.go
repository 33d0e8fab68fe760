// Package mazefile reads the YAML problem and knowledge documents used by the
// command line.
package mazefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/pathfinder/kb"
	"github.com/pdrpinto/pathfinder/maze"
)

// ErrInvalidDocument is wrapped by every decoding and validation failure.
var ErrInvalidDocument = errors.New("invalid document")

// Coordinate is a [col, row] pair.
type Coordinate struct {
	Col, Row int
}

func (c Coordinate) State() maze.State { return maze.State{Col: c.Col, Row: c.Row} }

func (c *Coordinate) UnmarshalYAML(node *yaml.Node) error {
	var pair []int
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("line %d: coordinate: %w", node.Line, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: coordinate needs [col, row], got %d values", node.Line, len(pair))
	}
	c.Col, c.Row = pair[0], pair[1]
	return nil
}

func (c Coordinate) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{c.Col, c.Row} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return node, nil
}

// Problem describes a maze, optional start and goals, and an optional action
// sequence to verify.
type Problem struct {
	Maze    []string     `yaml:"maze"`
	Start   *Coordinate  `yaml:"start,omitempty"`
	Goals   []Coordinate `yaml:"goals,omitempty"`
	Actions string       `yaml:"actions,omitempty"`
}

// DecodeProblem reads one problem document. Unknown fields are rejected.
func DecodeProblem(r io.Reader) (*Problem, error) {
	var problem Problem
	if err := decodeStrict(r, &problem); err != nil {
		return nil, err
	}
	if len(problem.Maze) == 0 {
		return nil, fmt.Errorf("%w: maze is empty", ErrInvalidDocument)
	}
	return &problem, nil
}

// LoadProblem reads a problem document from path.
func LoadProblem(path string) (*Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeProblem(f)
}

// Build parses the maze and resolves the start. The start defaults to the
// '*' marker. Goals are nil when the document names none, leaving the grid's
// markers in charge.
func (p *Problem) Build(opts ...maze.Option) (*maze.Grid, maze.State, []maze.State, error) {
	grid, err := maze.ParseLayout(p.Maze, opts...)
	if err != nil {
		return nil, maze.State{}, nil, err
	}

	start, ok := grid.Start()
	if p.Start != nil {
		start, ok = p.Start.State(), true
	}
	if !ok {
		return nil, maze.State{}, nil, fmt.Errorf("%w: no start given and the maze has no %q marker", ErrInvalidDocument, maze.Start)
	}

	var goals []maze.State
	for _, goal := range p.Goals {
		goals = append(goals, goal.State())
	}
	return grid, start, goals, nil
}

// ParsedActions decodes the Actions field.
func (p *Problem) ParsedActions() ([]maze.Action, error) {
	return maze.ParseActions(p.Actions)
}

// Knowledge lists clauses to assert and queries to ask, in clause text syntax.
type Knowledge struct {
	Clauses []string `yaml:"clauses"`
	Queries []string `yaml:"queries,omitempty"`
}

// DecodeKnowledge reads one knowledge document.
func DecodeKnowledge(r io.Reader) (*Knowledge, error) {
	var knowledge Knowledge
	if err := decodeStrict(r, &knowledge); err != nil {
		return nil, err
	}
	return &knowledge, nil
}

// LoadKnowledge reads a knowledge document from path.
func LoadKnowledge(path string) (*Knowledge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeKnowledge(f)
}

// Build asserts every clause into a new knowledge base and parses the queries.
func (k *Knowledge) Build(options ...kb.Option) (*kb.KnowledgeBase, []kb.Clause, error) {
	clauses, err := ParseClauses(k.Clauses)
	if err != nil {
		return nil, nil, err
	}
	queries, err := ParseClauses(k.Queries)
	if err != nil {
		return nil, nil, err
	}
	knowledgeBase := kb.New(options...)
	knowledgeBase.AssertAll(clauses...)
	return knowledgeBase, queries, nil
}

// ParseClauses parses each text, naming the failing index.
func ParseClauses(texts []string) ([]kb.Clause, error) {
	clauses := make([]kb.Clause, 0, len(texts))
	for i, text := range texts {
		clause, err := kb.ParseClause(text)
		if err != nil {
			return nil, fmt.Errorf("clause %d: %w", i, err)
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func decodeStrict(r io.Reader, out any) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
