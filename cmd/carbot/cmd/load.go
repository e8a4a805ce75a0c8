package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/carbot/internal/app"
)

var loadCmd = &cobra.Command{
	Use:   "load <file.yaml>",
	Short: "Validate a dataset file and import it into the database",
	Long: "Validates the YAML dataset against the bundled schema, checks that its catalog\n" +
		"can index it, and stores it in the bbolt database (--db, default ~/.carbot/carbot.db).\n" +
		"An existing dataset for the same catalog is replaced.",
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	db := dbPath()
	info, err := app.ImportDataset(db, args[0])
	if err != nil {
		if isDBLockError(err) {
			return fmt.Errorf("%w\n%s", err, diagnoseDBLock(socketPath()))
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d %s records into %s\n", info.Records, info.Catalog, db)
	return nil
}
