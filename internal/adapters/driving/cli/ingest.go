package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Add documents to the corpus",
	Long: `Extracts text from the given files, splits it into chunks, embeds the
chunks and adds everything to the corpus. Files already in the corpus (same
content) are skipped.

Supported formats: ` + strings.Join(supportedList(), ", "),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var failed int
		for _, path := range args {
			if err := ingestFile(cmd.Context(), path); err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

// supportedList is resolved lazily because the registry is wired in
// PersistentPreRunE; for help output the default set is used.
func supportedList() []string {
	if registry != nil {
		return registry.Extensions()
	}
	return []string{".txt", ".md", ".pdf", ".docx"}
}

// ingestFile reads, extracts and ingests a single file.
func ingestFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	filename := filepath.Base(path)
	text, err := registry.Extract(ctx, data, filename)
	if err != nil {
		return err
	}

	hash := sha256.Sum256(data)
	doc, err := corpusService.Ingest(ctx, text, filename, int64(len(data)), hex.EncodeToString(hash[:]))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateDocument) {
			fmt.Printf("skipped %s (already in corpus)\n", filename)
			return nil
		}
		return err
	}

	fmt.Printf("ingested %s (%d chunks, id %s)\n", filename, doc.ChunkCount, doc.ID)
	return nil
}
