package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var lsJSON bool

var lsCmd = &cobra.Command{
	Use:   "ls [document-id]",
	Short: "List documents, or the chunks of one document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return listChunks(cmd, args[0])
		}
		return listDocuments(cmd)
	},
}

func init() {
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(lsCmd)
}

func listDocuments(cmd *cobra.Command) error {
	docs, err := corpusService.Documents(cmd.Context())
	if err != nil {
		return err
	}

	if lsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Println("corpus is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tSIZE\tCHUNKS\tUPLOADED")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			doc.ID, doc.Filename, doc.ByteSize, doc.ChunkCount,
			doc.UploadedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func listChunks(cmd *cobra.Command, documentID string) error {
	chunks, err := corpusService.Chunks(cmd.Context(), documentID)
	if err != nil {
		return err
	}

	if lsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(chunks)
	}

	for _, chunk := range chunks {
		embedded := "embedded"
		if chunk.Embedding == nil {
			embedded = "no embedding"
		}
		fmt.Printf("[%d] (%s) %s\n", chunk.Position, embedded, chunk.Content)
	}
	return nil
}
