package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/maysielabs/maysie/internal/app"
)

// newSecretsCommand exposes credential-store CRUD. This is the configuration
// surface; the free-text router never reaches these operations.
func newSecretsCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage stored API keys",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Credentials.Set(args[0], args[1]); err != nil {
				return err
			}
			cmd.Printf("✓ Stored %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <name>",
		Short: "Print a secret value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, ok := container.Credentials.Get(args[0])
			if !ok {
				return fmt.Errorf("no secret named %q", args[0])
			}
			cmd.Println(value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Credentials.Delete(args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Deleted %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored secret names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range container.Credentials.Names() {
				cmd.Println(name)
			}
			return nil
		},
	})

	return cmd
}

func newCacheCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the sudo credential cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether a sudo credential is cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.SudoCache.HasCredential() {
				cmd.Println("sudo credential cached")
			} else {
				cmd.Println("no sudo credential cached")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Discard the cached sudo credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container.SudoCache.Clear()
			cmd.Println("✓ Cache cleared")
			return nil
		},
	})

	return cmd
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently routed commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.History.Recent(limit)
			if err != nil {
				return err
			}
			for _, rec := range records {
				cmd.Printf("%s  [%s]  %s\n",
					rec.Timestamp.Format("2006-01-02 15:04:05"), rec.Intent, rec.Input)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of records to show")
	return cmd
}

func newConfigCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := yaml.Marshal(container.Config)
			if err != nil {
				return err
			}
			cmd.Print(string(raw))
			return nil
		},
	}
}
