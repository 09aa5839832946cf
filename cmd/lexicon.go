package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func LexiconCmd(s *Settings) *cobra.Command {
	return &cobra.Command{
		Use:          "lexicon [SUPERTAG...]",
		Short:        "Print the canonical annotated category of supertags, or of the whole lexicon",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			supertags := args
			if len(supertags) == 0 {
				supertags = s.Lexicon.Supertags()
			}
			t := newTable(cmd.OutOrStdout())
			for _, tag := range supertags {
				c, ok := s.Lexicon.Lookup(tag)
				if !ok {
					return fmt.Errorf("unknown supertag %s", tag)
				}
				t.row(tag, c.Annotated())
			}
			return t.flush()
		},
	}
}
