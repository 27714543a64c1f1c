package xform

import (
	"errors"
	"fmt"
	"strings"
)

// Intensity is the step used by every discrete command: translation units,
// rotation degrees, and a tenth of it for relative scaling.
const Intensity float32 = 15

// Op is the kind of transform a Command performs.
type Op uint8

const (
	OpTranslate Op = iota
	OpRotate
	OpScale
)

var opTokens = [...]byte{OpTranslate: 't', OpRotate: 'r', OpScale: 's'}

// Command is one discrete step from the input loop.
type Command struct {
	Op   Op
	Axis Axis
	Neg  bool
}

// ErrBadCommand is returned for tokens that do not name a command.
var ErrBadCommand = errors.New("unknown transform command")

// Apply performs c as a single operation on n.
func (c Command) Apply(n *Node) {
	sign := float32(1)
	if c.Neg {
		sign = -1
	}
	switch c.Op {
	case OpTranslate:
		var d [3]float32
		d[c.Axis] = sign * Intensity
		n.Translate(d[0], d[1], d[2])
	case OpRotate:
		n.Rotate(Intensity, c.Axis.Unit().Mul(sign))
	case OpScale:
		f := [3]float32{1, 1, 1}
		f[c.Axis] = 1 + sign*Intensity*0.1
		n.Scale(f[0], f[1], f[2])
	}
}

// String returns the token ParseCommand accepts for c, such as "ry-".
func (c Command) String() string {
	sign := byte('+')
	if c.Neg {
		sign = '-'
	}
	return string([]byte{opTokens[c.Op], c.Axis.String()[0], sign})
}

// ParseCommand parses a token such as "tx+", "rz-" or "sy+".
func ParseCommand(tok string) (Command, error) {
	if len(tok) != 3 {
		return Command{}, fmt.Errorf("%w: %q", ErrBadCommand, tok)
	}
	var c Command
	switch tok[0] {
	case 't':
		c.Op = OpTranslate
	case 'r':
		c.Op = OpRotate
	case 's':
		c.Op = OpScale
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrBadCommand, tok)
	}
	switch tok[1] {
	case 'x':
		c.Axis = X
	case 'y':
		c.Axis = Y
	case 'z':
		c.Axis = Z
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrBadCommand, tok)
	}
	switch tok[2] {
	case '+':
	case '-':
		c.Neg = true
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrBadCommand, tok)
	}
	return c, nil
}

// ParseCommands parses a script of tokens separated by spaces or commas.
func ParseCommands(script string) ([]Command, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	cmds := make([]Command, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCommand(strings.ToLower(f))
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// ApplyAll applies cmds to n in order.
func ApplyAll(n *Node, cmds []Command) {
	for _, c := range cmds {
		c.Apply(n)
	}
}
