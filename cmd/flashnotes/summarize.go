package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/flashnotes/internal/api"
	"github.com/phrazzld/flashnotes/internal/domain"
	"github.com/phrazzld/flashnotes/internal/flashcard"
	"github.com/phrazzld/flashnotes/internal/ingest"
	"github.com/phrazzld/flashnotes/internal/redact"
	"github.com/spf13/cobra"
)

// newSummarizeCmd creates the summarize command
func newSummarizeCmd(opts *globalOptions) *cobra.Command {
	var (
		asJSON bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "summarize FILE",
		Short: "Summarize a notes file and print its flashcards",
		Long: `Summarize a notes file and print its flashcards.

The format is detected from the file extension (.txt, .md, .html, .pdf)
unless --format is given. Use "-" to read plain text from stdin.`,
		Example: `  flashnotes summarize lecture.md
  flashnotes summarize --json notes.txt
  cat notes.txt | flashnotes summarize -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd.InOrStdin(), args[0], format)
			if err != nil {
				return err
			}

			app, err := initializeApp(cmd, opts)
			if err != nil {
				return err
			}

			deck, err := app.notesService.Process(cmd.Context(), doc)
			if err != nil {
				app.logger.Error("summarize failed", slog.String("error", redact.Error(err)))
				return errors.New(api.GetSafeErrorMessage(err))
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(api.NewDeckResponse(deck))
			}
			return printDeck(cmd.OutOrStdout(), deck)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the deck as JSON")
	cmd.Flags().StringVarP(&format, "format", "f", "", "document format: text, markdown, html, pdf")

	return cmd
}

// readDocument reads and decodes the named file, or stdin for "-".
func readDocument(stdin io.Reader, path, format string) (*domain.Document, error) {
	var (
		raw  []byte
		err  error
		name = filepath.Base(path)
	)
	if path == "-" {
		name = "stdin"
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f := domain.Format(format)
	if f == "" && path != "-" {
		f = ingest.DetectFormat(path, "")
	}

	doc, err := ingest.Load(name, f, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return doc, nil
}

// printDeck writes the summary and flashcards as plain text, one column
// after the other.
func printDeck(w io.Writer, deck *domain.Deck) error {
	if _, err := fmt.Fprintf(w, "Summary (%d chunks):\n%s\n", deck.ChunkCount, deck.Summary); err != nil {
		return err
	}

	left, right := flashcard.Columns(deck.Flashcards)
	for i, column := range [][]domain.Flashcard{left, right} {
		for j, card := range column {
			// Positions in the full deck alternate between the columns.
			index := 2*j + i + 1
			if _, err := fmt.Fprintf(w, "\n[%d] %s\n    %s\n", index, card.Question, card.Answer); err != nil {
				return err
			}
		}
	}
	return nil
}
