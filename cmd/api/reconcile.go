package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"photohive/internal/usecase"
	"photohive/pkg/logger"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Report drift between the blob store and the metadata store",
	Long: `Compare every object in the blob store with every photo record and print
a JSON report of:

  orphanedBlobs  photo images or thumbnails with no record
  missingBlobs   keys referenced by a record but absent from the blob store
  foreignBlobs   objects outside the photo key layout

Nothing is deleted.`,
	RunE: runReconcile,
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	b, err := openBackends(ctx, cfg)
	if err != nil {
		logger.Error("%v", err)
		return err
	}
	defer b.Close()

	report, err := usecase.NewReconcileUseCase(b.photoRepo, b.blobStore).Reconcile(ctx)
	if err != nil {
		logger.Error("Reconcile failed: %v", err)
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
