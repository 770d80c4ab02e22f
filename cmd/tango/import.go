package main

import (
	"errors"
	"fmt"
	"os"

	"tango/internal/console"
	"tango/internal/domain"
	"tango/internal/tabular"

	"github.com/spf13/cobra"
)

type importOptions struct {
	english   int
	japanese  int
	noHeader  bool
	delimiter string
}

func newImportCmd(a *app) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the word list with the rows of a delimited file",
		Long: `Reads a tab-separated file and replaces the stored word list with it.

Rows missing either selected column are skipped. Column indices are zero-based.

Example:
  tango import words.tsv --english 0 --japanese 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.importFile(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.english, "english", 0, "column holding the english word")
	cmd.Flags().IntVar(&opts.japanese, "japanese", 1, "column holding the japanese meaning")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "treat the first row as data")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", "tab", `cell delimiter: "tab", "comma" or a single character`)

	return cmd
}

func (a *app) importFile(cmd *cobra.Command, path string, opts *importOptions) error {
	delimiter, err := tabular.ParseDelimiter(opts.delimiter)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return &domain.ParseError{Op: "read", Err: err}
	}
	defer f.Close()

	svc, closeStore, err := a.openServices(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	grid, err := svc.importer.ReadGrid(f, delimiter)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyFile) {
			return fmt.Errorf("%s: no file or empty data", path)
		}
		return err
	}

	cols := domain.Columns{English: opts.english, Japanese: opts.japanese, Header: !opts.noHeader}
	result, err := svc.importer.Import(cmd.Context(), grid, cols)
	if errors.Is(err, domain.ErrNoValidWords) {
		return fmt.Errorf("%s: no valid words in columns %d and %d (%d rows skipped)", path, cols.English, cols.Japanese, result.Skipped)
	}
	if err != nil {
		return err
	}

	console.New(cmd.InOrStdin(), cmd.OutOrStdout()).PrintImport(result)
	return nil
}
