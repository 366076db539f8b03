package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flockbooks/flockbooks/auth"
)

// tokenCmd represents the token command.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the stored auth token",
	Long: `Manage the token kept in the token store. The store is consulted after
an explicit --token and after the cookies.`,
}

var tokenSetCmd = &cobra.Command{
	Use:         "set <token>",
	Short:       "Store a token",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{noClientAnnotation: "true"},
	RunE:        tokenSetRun,
}

var tokenClearCmd = &cobra.Command{
	Use:         "clear",
	Short:       "Remove every stored token",
	Annotations: map[string]string{noClientAnnotation: "true"},
	RunE:        tokenClearRun,
}

var tokenShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show which stored token would be used, masked",
	Annotations: map[string]string{noClientAnnotation: "true"},
	RunE:        tokenShowRun,
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd, tokenClearCmd, tokenShowCmd)

	tokenSetCmd.Flags().String("key", auth.TokenKeys[0], "store key: token, accessToken or jwt")
}

func tokenStore() *auth.FileStore {
	return auth.NewFileStore(currentConfig().TokenStore)
}

func tokenSetRun(cmd *cobra.Command, args []string) error {
	key, _ := cmd.Flags().GetString("key")

	valid := false
	for _, k := range auth.TokenKeys {
		valid = valid || k == key
	}
	if !valid {
		return fmt.Errorf("invalid --key value: %s (must be one of %v)", key, auth.TokenKeys)
	}

	store := tokenStore()
	if err := store.Set(key, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "stored %s in %s\n", key, store.Path())
	return nil
}

func tokenClearRun(cmd *cobra.Command, _ []string) error {
	store := tokenStore()
	for _, k := range auth.TokenKeys {
		if err := store.Delete(k); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", store.Path())
	return nil
}

func tokenShowRun(cmd *cobra.Command, _ []string) error {
	store := tokenStore()
	for _, k := range auth.TokenKeys {
		v, ok, err := store.Get(k)
		if err != nil {
			return err
		}
		if ok && v != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", k, maskToken(v), store.Path())
			return nil
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "no token in %s\n", store.Path())
	return nil
}

// maskToken keeps the first four characters.
func maskToken(v string) string {
	if len(v) <= 4 {
		return "****"
	}
	return v[:4] + "****"
}
