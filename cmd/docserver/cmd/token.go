package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/the-dev-tools/dev-tools/packages/docserver/internal/config"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/idwrap"
	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/stoken"
)

var errNoSecret = errors.New("auth.hmac_secret is not set; tokens cannot be signed")

func newTokenCommand(v *viper.Viper) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for the configured HMAC secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := v.GetString(config.KeyAuthHMACSecret)
			if secret == "" {
				return errNoSecret
			}
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive, got %s", ttl)
			}

			userID := idwrap.NewNow()
			if subject != "" {
				var err error
				if userID, err = idwrap.NewText(subject); err != nil {
					return fmt.Errorf("subject must be a ULID: %w", err)
				}
			}

			token, err := stoken.NewJWT(userID.String(), stoken.AccessToken, ttl, []byte(secret))
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&subject, "subject", "", "user id (ULID) to put in the token; a new one is generated when empty")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return tokenCmd
}
