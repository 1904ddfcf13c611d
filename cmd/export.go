package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tidalsec/entradump/internal/message"
	"github.com/tidalsec/entradump/pkg/export"
	"github.com/tidalsec/entradump/pkg/graph"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tenant users to CSV",
	Long: `Export every user in the tenant to a CSV file, enriched with
security-group memberships, license and service-plan assignments, and
MFA registration state.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntP("workers", "w", export.DefaultConcurrency, "concurrent enrichment workers")
	exportCmd.Flags().String("tenant", "", "tenant id for device-code sign-in")
	exportCmd.Flags().String("client-id", "", "client id for device-code sign-in")
	exportCmd.Flags().Bool("device-code", false, "authenticate with the device-code flow")
	exportCmd.Flags().String("sku-names", "", "path to Microsoft's product names CSV for friendly license names")
	exportCmd.Flags().String("filename", "", "output file name (default entra-users-<timestamp>.csv)")
	viper.BindPFlag("workers", exportCmd.Flags().Lookup("workers"))
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	message.Banner()

	tenant, _ := cmd.Flags().GetString("tenant")
	clientID, _ := cmd.Flags().GetString("client-id")
	deviceCode, _ := cmd.Flags().GetBool("device-code")
	skuNames, _ := cmd.Flags().GetString("sku-names")
	filename, _ := cmd.Flags().GetString("filename")
	outputPath, _ := cmd.Flags().GetString("output")
	workers := viper.GetInt("workers")

	cred, err := graph.NewCredential(graph.CredentialOptions{
		TenantID:   tenant,
		ClientID:   clientID,
		DeviceCode: deviceCode,
	})
	if err != nil {
		return err
	}

	client, err := graph.NewClient(cred)
	if err != nil {
		return err
	}

	tenantName, tenantID, err := graph.TenantDetails(ctx, client)
	if err != nil {
		return err
	}
	message.Info("Signed in to tenant %s (%s)", tenantName, tenantID)

	retry := graph.DefaultRetryConfig()
	directory := graph.NewDirectoryClient(client, retry)

	catalog, err := export.BuildCatalog(ctx, directory, skuNames)
	if err != nil {
		return err
	}
	message.Info("License catalog ready: %d SKUs, premium entitlement: %t",
		catalog.Len(), catalog.HasPremiumEntitlement())

	users, err := directory.ListUsers(ctx, catalog.HasPremiumEntitlement())
	if err != nil {
		return err
	}
	message.Info("Fetched %d users, enriching with %d workers", len(users), workers)

	progress := io.Writer(io.Discard)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		progress = os.Stdout
	}

	mfa := graph.NewMFAClient(cred, retry)
	pipeline := export.NewPipeline(mfa, directory, catalog, workers, progress)
	records := pipeline.ProcessAll(ctx, users, catalog.HasPremiumEntitlement())

	sink := &export.CSVSink{OutputPath: outputPath, FileName: filename}
	if _, err := sink.Write(records); err != nil {
		return err
	}

	snap := pipeline.Snapshot()
	message.Info("Done: %d total, %d exported, %d errors in %s (%.1f users/s)",
		snap.Total, snap.Processed, snap.Errors,
		snap.Elapsed.Truncate(time.Millisecond), snap.Rate)

	return nil
}
