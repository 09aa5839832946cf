package cmd

import (
	"fmt"

	"github.com/cottand/rebank/rules"
	"github.com/cottand/rebank/scat"
	"github.com/spf13/cobra"
)

// noChild stands for the missing right child of a unary production
const noChild = "-"

func ReplaceCmd(s *Settings) *cobra.Command {
	return &cobra.Command{
		Use:          "replace LEFT RIGHT|- PARENT NEW",
		Short:        "Replace the parent of a production and print the new children",
		Args:         cobra.ExactArgs(4),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			arena := scat.NewArena()
			cats := make([]*scat.SuperCat, len(args))
			for i, a := range args {
				if a == noChild {
					continue
				}
				c, err := s.Lexicon.Parse(a)
				if err != nil {
					return fmt.Errorf("could not parse %s: %w", a, err)
				}
				cats[i] = arena.Wrap(c)
			}
			if cats[0] == nil || cats[2] == nil || cats[3] == nil {
				return fmt.Errorf("only the right child can be omitted")
			}

			p, err := rules.New(cats[0], cats[1], cats[2])
			if err != nil {
				return fmt.Errorf("could not classify production: %w", err)
			}
			before := p.Rule
			left, right, err := p.Replace(cats[3])
			if err != nil {
				return fmt.Errorf("could not replace %s: %w", p, err)
			}

			t := newTable(cmd.OutOrStdout())
			t.row("rule", before.String(), p.Rule.String())
			t.row("left", left.String(), left.Annotated())
			if right != nil {
				t.row("right", right.String(), right.Annotated())
			}
			licensed := "yes"
			if p.Verify() != nil {
				licensed = "no"
			}
			t.row("licensed", licensed)
			return t.flush()
		},
	}
}
