package entries

import (
	"fmt"

	"github.com/julianstephens/mindful/internal/cli"
	"github.com/julianstephens/mindful/internal/journal"
)

type TagsCmd struct{}

func (c *TagsCmd) Run(ctx *cli.Context) error {
	all := ctx.Store.GetAll()
	tags := journal.AllTags(all)
	if len(tags) == 0 {
		fmt.Println("No tags yet.")
		return nil
	}

	counts := make(map[string]int, len(tags))
	for _, e := range all {
		for _, t := range e.Tags {
			counts[t]++
		}
	}
	for _, t := range tags {
		fmt.Printf("#%-20s %d\n", t, counts[t])
	}
	return nil
}
