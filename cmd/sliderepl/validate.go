package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/sliderepl"
	"github.com/aretw0/sliderepl/pkg/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <script>",
	Short: "Check that a deck parses and list its slides",
	Long:  `Parses the deck and its includes, compiling every code fragment without running it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(cmd, args)
		if err != nil {
			return err
		}
		session := sliderepl.New(args[0],
			sliderepl.WithShort(opts.Short),
			sliderepl.WithSlideDefaults(domain.SlideFlags{NoReturn: opts.NoReturn}),
		)
		res, err := session.Parse()
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		printOutline(os.Stdout, res.Init, res.Slides)
		fmt.Println("Deck is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func printOutline(w io.Writer, init *domain.Slide, slides []*domain.Slide) {
	if init != nil {
		fmt.Fprintf(w, "  setup  %d fragment(s)\n", len(init.Codeblocks))
	}
	for _, s := range slides {
		title := s.Title
		if title == "" && len(s.Intro) > 0 {
			title = s.Intro[0]
		}
		fmt.Fprintf(w, "%5d  %-40s %-4s %d fragment(s)\n", s.Index, title, flagLetters(s.SlideFlags), len(s.Codeblocks))
	}
}

func flagLetters(f domain.SlideFlags) string {
	var b strings.Builder
	for _, x := range []struct {
		on     bool
		letter byte
	}{{f.NeverExec, 'x'}, {f.NoExec && !f.NeverExec, 'p'}, {f.NoClear, 'i'}, {f.Long, 'l'}, {f.BulletMode, 'b'}} {
		if x.on {
			b.WriteByte(x.letter)
		}
	}
	return b.String()
}
