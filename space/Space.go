// Package space implements the state and action spaces of 3D gridworlds.
//
// A State is a position (x, y, z) in a bounded grid and an Action is one
// of six unit moves, paired by axis: {PosX, NegX}, {PosY, NegY} and
// {PosZ, NegZ}.
package space

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// State is an agent position in a 3D grid. States are comparable and
// may be used directly as map keys.
type State struct {
	X, Y, Z int
}

// Start is the state every episode begins in
var Start = State{0, 0, 0}

// Add returns the state displaced by action a. The result is not
// checked against any bounds.
func (s State) Add(a Action) State {
	d := a.Displacement()
	return State{s.X + d.X, s.Y + d.Y, s.Z + d.Z}
}

// InBounds returns whether each coordinate of s lies in [0, dim) for
// the given dimensions
func (s State) InBounds(width, height, depth int) bool {
	return s.X >= 0 && s.X < width &&
		s.Y >= 0 && s.Y < height &&
		s.Z >= 0 && s.Z < depth
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %d, %d)", s.X, s.Y, s.Z)
}

// ParseState parses a state written as "x,y,z". Surrounding
// parentheses and spaces are ignored, so the output of String is
// accepted.
func ParseState(str string) (State, error) {
	trimmed := strings.Trim(strings.TrimSpace(str), "()")
	fields := strings.Split(trimmed, ",")
	if len(fields) != 3 {
		return State{}, fmt.Errorf("parseState: want 3 coordinates in %q, "+
			"have %d", str, len(fields))
	}

	var coords [3]int
	for i, f := range fields {
		c, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return State{}, fmt.Errorf("parseState: %q: %w", str, err)
		}
		coords[i] = c
	}
	return State{coords[0], coords[1], coords[2]}, nil
}

// Action is a discrete directional move
type Action int

const (
	PosX Action = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// NumActions is the number of actions available in every state
const NumActions = 6

// ErrInvalidAction is returned when an action index lies outside
// [0, NumActions)
var ErrInvalidAction = errors.New("invalid action")

var displacements = [NumActions]State{
	PosX: {1, 0, 0},
	NegX: {-1, 0, 0},
	PosY: {0, 1, 0},
	NegY: {0, -1, 0},
	PosZ: {0, 0, 1},
	NegZ: {0, 0, -1},
}

// Actions perpendicular to each axis. A slip never stays on the
// intended axis.
var (
	perpendicularX = []Action{PosY, NegY, PosZ, NegZ}
	perpendicularY = []Action{PosX, NegX, PosZ, NegZ}
	perpendicularZ = []Action{PosX, NegX, PosY, NegY}
)

var names = [NumActions]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

// Actions returns all actions in index order
func Actions() []Action {
	return []Action{PosX, NegX, PosY, NegY, PosZ, NegZ}
}

// Valid returns whether a is in [0, NumActions)
func (a Action) Valid() bool {
	return a >= 0 && a < NumActions
}

// Validate returns an error wrapping ErrInvalidAction if a is not
// valid
func (a Action) Validate() error {
	if !a.Valid() {
		return fmt.Errorf("action %d not in [0, %d): %w", int(a), NumActions,
			ErrInvalidAction)
	}
	return nil
}

// Displacement returns the unit displacement of the action. It panics
// if the action is invalid.
func (a Action) Displacement() State {
	if !a.Valid() {
		panic(fmt.Sprintf("displacement: %v", a.Validate()))
	}
	return displacements[a]
}

// Axis returns 0, 1 or 2 for actions along X, Y or Z respectively
func (a Action) Axis() int {
	return int(a) / 2
}

// Perpendicular returns the actions which move along the two axes
// other than the axis of a. The returned slice must not be modified.
func (a Action) Perpendicular() []Action {
	switch a.Axis() {
	case 0:
		return perpendicularX
	case 1:
		return perpendicularY
	default:
		return perpendicularZ
	}
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return names[a]
}
