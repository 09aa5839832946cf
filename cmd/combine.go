package cmd

import (
	"fmt"

	"github.com/cottand/rebank/rules"
	"github.com/cottand/rebank/scat"
	"github.com/spf13/cobra"
)

func CombineCmd(s *Settings) *cobra.Command {
	var parent string
	c := &cobra.Command{
		Use:          "combine LEFT [RIGHT]",
		Short:        "Classify a production and print the category it derives",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			arena := scat.NewArena()
			wrap := func(str string) (*scat.SuperCat, error) {
				if str == "" {
					return nil, nil
				}
				c, err := s.Lexicon.Parse(str)
				if err != nil {
					return nil, fmt.Errorf("could not parse %s: %w", str, err)
				}
				return arena.Wrap(c), nil
			}

			left, err := wrap(args[0])
			if err != nil {
				return err
			}
			var right *scat.SuperCat
			if len(args) == 2 {
				if right, err = wrap(args[1]); err != nil {
					return err
				}
			}
			par, err := wrap(parent)
			if err != nil {
				return err
			}

			p, err := rules.New(left, right, par)
			if err != nil {
				return fmt.Errorf("could not classify production: %w", err)
			}
			t := newTable(cmd.OutOrStdout())
			t.row("rule", p.Rule.String())
			t.row("combinator", p.Combinator.String())
			if p.Result != nil {
				t.row("result", p.Result.String())
				t.row("annotated", p.Result.Annotated())
			}
			return t.flush()
		},
	}
	c.Flags().StringVarP(&parent, "parent", "p", "", "expected parent, required for unary productions")
	return c
}
