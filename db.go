package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"logicdraw/codec"
	"logicdraw/store"
)

var (
	putID      int
	putTitle   string
	showOutput string
	clearYes   bool
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Diagram database operations",
	Long:  `Commands for storing diagrams in the database named by the config file.`,
}

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored diagrams",
	Args:  cobra.NoArgs,
	RunE:  runDBList,
}

var dbShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored diagram",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBShow,
}

var dbPutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Store a diagram file",
	Long: `Store a diagram file in the database. Without --id a new id is
allocated; with --id an existing diagram is replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runDBPut,
}

var dbRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a stored diagram",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBRm,
}

var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored diagram",
	Args:  cobra.NoArgs,
	RunE:  runDBClear,
}

func init() {
	dbListCmd.Flags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	dbShowCmd.Flags().StringVarP(&showOutput, "output", "o", "", "write to a file instead of stdout")
	dbPutCmd.Flags().IntVar(&putID, "id", 0, "diagram id to replace")
	dbPutCmd.Flags().StringVar(&putTitle, "title", "", "diagram title (default: file name)")
	dbClearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deleting everything")

	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbListCmd, dbShowCmd, dbPutCmd, dbRmCmd, dbClearCmd)
}

func openStore() (*store.Store, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid diagram id %q", arg)
	}
	return id, nil
}

func runDBList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	diagrams, err := s.All(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(diagrams)
	}
	if len(diagrams) == 0 {
		fmt.Fprintln(w, "No diagrams stored")
		return nil
	}
	fmt.Fprintf(w, "%-6s %-30s %-8s %s\n", "ID", "TITLE", "LINES", "UPDATED")
	for _, d := range diagrams {
		lines := strings.Count(d.Model, "\n")
		fmt.Fprintf(w, "%-6d %-30s %-8d %s\n", d.ID, d.Title, lines, d.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runDBShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	d, err := s.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	if showOutput != "" {
		path, err := cfg.GetSavePath(showOutput)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(d.Model), 0o644)
	}
	fmt.Fprint(cmd.OutOrStdout(), d.Model)
	return nil
}

func runDBPut(cmd *cobra.Command, args []string) error {
	// decode first so that only loadable diagrams are stored
	g, err := readDiagram(args[0], graphOptions(cfg))
	if err != nil {
		return err
	}
	if putID < 0 {
		return fmt.Errorf("invalid diagram id %d", putID)
	}
	title := putTitle
	if title == "" {
		base := filepath.Base(args[0])
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	d := &store.Diagram{ID: putID, Title: title, Model: codec.Encode(g)}
	if err := s.Upsert(cmd.Context(), d); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored %q as %d\n", d.Title, d.ID)
	return nil
}

func runDBRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return s.Delete(cmd.Context(), id)
}

func runDBClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete every diagram without --yes")
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()
	return s.DeleteAll(cmd.Context())
}
