package dataset

import (
	"context"
	"strings"
)

// Transform derives a new Table from its input. Implementations must not
// modify the input table.
type Transform interface {
	Name() string
	Apply(ctx context.Context, t *Table) (*Table, error)
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
}

func NewPipeline(steps ...Transform) *Pipeline { return &Pipeline{steps: steps} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

func (p *Pipeline) Len() int { return len(p.steps) }

// Name joins the step names with "+", e.g. "hotdeck+mean".
func (p *Pipeline) Name() string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Apply lets a Pipeline be nested as a single Transform.
func (p *Pipeline) Apply(ctx context.Context, t *Table) (*Table, error) { return p.Run(ctx, t) }

func (p *Pipeline) Run(ctx context.Context, t *Table) (*Table, error) {
	cur := t
	for _, s := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := s.Apply(ctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
