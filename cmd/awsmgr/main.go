package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/notpepejulian/aws-manager/internal/config"
	"github.com/notpepejulian/aws-manager/internal/version"
	"github.com/notpepejulian/aws-manager/pkg/api"
	"github.com/notpepejulian/aws-manager/pkg/aws"
	"github.com/notpepejulian/aws-manager/pkg/formatter"
	"github.com/notpepejulian/aws-manager/pkg/store"
	"github.com/notpepejulian/aws-manager/pkg/utils"
)

var showVersion bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "awsmgr",
		Short: "Manage AWS accounts and their resource inventory",
		Long: `awsmgr brokers cross-account credentials via STS AssumeRole and
collects resource inventory (EC2, ELBv2, VPC, CloudWatch Logs, S3, Lambda)
across registered accounts.`,
		Run: func(cmd *cobra.Command, args []string) {
			if showVersion {
				info := version.Get()
				fmt.Printf("awsmgr version %s (built: %s, commit: %s)\n",
					info.Version, info.BuildDate, info.GitCommit)
				return
			}
			_ = cmd.Help()
		},
	}

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newInventoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newServeCmd runs the HTTP API backed by PostgreSQL.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the account console HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = zerolog.InfoLevel
			}
			logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer pool.Close()

			if err := store.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("applying schema: %w", err)
			}

			provider := aws.NewCredentialProvider(cfg.MFASerial)
			broker := aws.NewService(provider, logger)
			server := api.NewServer(store.NewAccountStore(pool), broker,
				cfg.DefaultRegion, cfg.AuthToken, cfg.RateLimit, logger)

			httpServer := &http.Server{
				Addr:         cfg.Addr,
				Handler:      server.Router(),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: cfg.RequestTimeout,
			}

			logger.Info().Str("addr", cfg.Addr).Str("version", version.Get().Version).Msg("listening")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}

// newInventoryCmd assumes a role once and prints the inventory as tables.
func newInventoryCmd() *cobra.Command {
	var (
		roleARN   string
		region    string
		mfaCode   string
		mfaSerial string
	)

	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Assume a role and print the account's resource inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if region == "" {
				region = utils.GetDefaultRegion()
			}
			if !utils.IsValidRegion(region) {
				return fmt.Errorf("invalid region %q", region)
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
			provider := aws.NewCredentialProvider(mfaSerial)
			broker := aws.NewService(provider, logger)

			source := aws.CredentialSource{
				RoleARN: roleARN,
				MFACode: mfaCode,
				Region:  region,
			}

			fmt.Println("Starting inventory scan ...")
			scanStartTime := time.Now()

			s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
			s.Suffix = " Collecting account resources ..."
			s.Start()

			report, err := broker.GetCompleteInventory(context.Background(), source)

			scanDuration := time.Since(scanStartTime)
			if err != nil {
				s.Stop()
				return err
			}

			total := len(report.Instances) + len(report.LoadBalancers) + len(report.VPCs) +
				len(report.LogGroups) + len(report.Buckets) + len(report.Functions)
			s.FinalMSG = fmt.Sprintf("✓ [%d resources found] Inventory collected - Completed in %.2f seconds\n",
				total, scanDuration.Seconds())
			s.Stop()

			fmt.Println("\nEC2 Instances:")
			formatter.PrintInstancesTable(os.Stdout, report.Instances, scanStartTime, scanDuration)

			fmt.Println("\nLoad Balancers:")
			formatter.PrintLoadBalancersTable(os.Stdout, report.LoadBalancers, scanStartTime, scanDuration)

			fmt.Println("\nVPCs:")
			formatter.PrintVPCsTable(os.Stdout, report.VPCs, scanStartTime, scanDuration)

			fmt.Println("\nLog Groups:")
			formatter.PrintLogGroupsTable(os.Stdout, report.LogGroups, scanStartTime, scanDuration)

			fmt.Println("\nS3 Buckets:")
			formatter.PrintBucketsTable(os.Stdout, report.Buckets, scanStartTime, scanDuration)

			fmt.Println("\nLambda Functions:")
			formatter.PrintFunctionsTable(os.Stdout, report.Functions, scanStartTime, scanDuration)

			formatter.PrintReportSummary(os.Stdout, report)
			return nil
		},
	}

	cmd.Flags().StringVar(&roleARN, "role-arn", "", "IAM role ARN to assume (required)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "AWS region to scan")
	cmd.Flags().StringVar(&mfaCode, "mfa-code", "", "Current MFA token code")
	cmd.Flags().StringVar(&mfaSerial, "mfa-serial", os.Getenv("AWS_MFA_SERIAL"), "MFA device serial ARN")
	_ = cmd.MarkFlagRequired("role-arn")

	return cmd
}
