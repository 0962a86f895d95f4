package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/kuandriy/topicgate/internal/config"
	"github.com/kuandriy/topicgate/internal/consumer"
	"github.com/kuandriy/topicgate/internal/normalize"
	"github.com/kuandriy/topicgate/internal/vector"
)

func newIDFCmd() *cobra.Command {
	args := config.DefaultIDFArgs()

	cmd := &cobra.Command{
		Use:   "idf",
		Short: "Build a TF-IDF scheme from a post corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIDF(args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&args.File, "file", "", "line-delimited JSON post corpus (required)")
	flags.StringVar(&args.Output, "output", "", "output path (required)")
	flags.BoolVar(&args.RemoveRetweets, "remove-retweets", false, "drop retweets before counting")
	flags.BoolVar(&args.SkipUnverified, "skip-unverified", false, "drop posts from unverified accounts")
	flags.BoolVar(&args.RemoveUnicodeEntities, "remove-unicode-entities", false, "unescape HTML entities before tokenising")
	flags.BoolVar(&args.NormalizeWords, "normalize-words", false, "case-fold and strip punctuation before counting")
	flags.IntVar(&args.CharacterNormalizationCount, "character-normalization-count", args.CharacterNormalizationCount, "minimum run length of a repeated character to collapse")
	flags.BoolVar(&args.Stem, "stem", false, "stem tokens before counting")
	flags.BoolVar(&args.Summary, "summary", false, "print a term/document-frequency table to stdout")

	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("output")

	return cmd
}

func runIDF(args config.IDFArgs) error {
	f, err := os.Open(args.File)
	if err != nil {
		return fmt.Errorf("open corpus file: %w", err)
	}
	defer f.Close()

	scheme, err := consumer.BuildTFIDFSchemeFiltered(f, args.TokenizerConfig(), idfFilter(args))
	if err != nil {
		return fmt.Errorf("build tfidf scheme: %w", err)
	}

	out := config.IDFOutput{
		Cmd:   args,
		PCmd:  args,
		TFIDF: config.SerializeTFIDF(scheme),
	}
	if err := writeJSON(args.Output, out); err != nil {
		return err
	}

	if args.Summary {
		printDFTable(scheme)
	}
	return nil
}

// printDFTable renders the scheme's document frequencies as a table on
// stdout, most frequent term first — a terminal-friendly complement to the
// JSON file, which is the format of record.
func printDFTable(scheme vector.TFIDF) {
	terms := make([]string, 0, len(scheme.DF))
	for term := range scheme.DF {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if scheme.DF[terms[i]] != scheme.DF[terms[j]] {
			return scheme.DF[terms[i]] > scheme.DF[terms[j]]
		}
		return terms[i] < terms[j]
	})

	tbl := table.New("Term", "Documents")
	for _, term := range terms {
		tbl.AddRow(term, scheme.DF[term])
	}
	tbl.Print()
}

// idfFilter applies the idf tool's --remove-retweets/--skip-unverified
// flags on top of the corpus-wide normalize.Valid check.
func idfFilter(args config.IDFArgs) func(normalize.Post) bool {
	if !args.RemoveRetweets && !args.SkipUnverified {
		return nil
	}
	return func(p normalize.Post) bool {
		if args.RemoveRetweets && p.RetweetedStatus() != nil {
			return false
		}
		if args.SkipUnverified && !p.User().Bool("verified") {
			return false
		}
		return true
	}
}
