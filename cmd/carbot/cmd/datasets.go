package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/carbot/internal/app"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List datasets imported into the database",
	Args:  cobra.NoArgs,
	RunE:  runDatasets,
}

var datasetsRmCmd = &cobra.Command{
	Use:   "rm <catalog>",
	Short: "Remove an imported dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetsRm,
}

func init() {
	datasetsCmd.AddCommand(datasetsRmCmd)
}

func runDatasets(cmd *cobra.Command, args []string) error {
	list, err := app.ListDatasets(dbPath())
	if err != nil {
		if isDBLockError(err) {
			return fmt.Errorf("%w\n%s", err, diagnoseDBLock(socketPath()))
		}
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatDatasets(list, useColor()))
	return nil
}

func runDatasetsRm(cmd *cobra.Command, args []string) error {
	db := dbPath()
	if err := app.RemoveDataset(db, args[0]); err != nil {
		if isDBLockError(err) {
			return fmt.Errorf("%w\n%s", err, diagnoseDBLock(socketPath()))
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s\n", args[0], db)
	return nil
}
