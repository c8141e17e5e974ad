package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

const recentFacts = 5

type factLister interface {
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]core.FactEntry, error)
}

type FactsCommand struct {
	facts     factLister
	formatter *ResponseFormatter
}

func NewFactsCommand(facts factLister) *FactsCommand {
	return &FactsCommand{
		facts:     facts,
		formatter: NewResponseFormatter(),
	}
}

func (c *FactsCommand) Name() string {
	return "facts"
}

func (c *FactsCommand) Description() string {
	return "Show cached facts"
}

func (c *FactsCommand) Execute(ctx context.Context, _ string, _ []string) (string, error) {
	total, err := c.facts.Count(ctx)
	if err != nil {
		return "", err
	}
	if total == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Fact Cache"),
			c.formatter.Label("Cached facts", "0"),
			c.formatter.Tip("Ask about something current, like today's gold price"),
		), nil
	}

	recent, err := c.facts.Recent(ctx, recentFacts)
	if err != nil {
		return "", err
	}

	items := make([]string, 0, len(recent))
	for _, f := range recent {
		items = append(items, fmt.Sprintf("`%s` (%s)", f.Key, f.Updated.Format("2006-01-02")))
	}

	return c.formatter.Combine(
		c.formatter.Info("Fact Cache"),
		c.formatter.Label("Cached facts", strconv.Itoa(total)),
		c.formatter.List(items),
	), nil
}
