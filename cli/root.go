// Package cli implements the storefront command: the API server plus a
// shopping client that keeps its session token on disk.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/storefront/config"
	"github.com/junaidrashid-git/storefront/database"
	"github.com/junaidrashid-git/storefront/events"
	"github.com/junaidrashid-git/storefront/gateway"
	"github.com/junaidrashid-git/storefront/logging"
	"github.com/junaidrashid-git/storefront/stores"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type app struct {
	configPath string

	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	kafka *events.KafkaPublisher
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	root, a := newRootCmd()
	defer a.close()
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront API server and shopping client",
		Long: `storefront serves the storefront HTTP API and doubles as a shopping client.

Account, cart and order commands share one session, stored in the file named
by auth.session_file (SESSION_FILE).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./config/config.yaml)")

	root.AddCommand(
		a.serveCmd(),
		a.migrateCmd(),
		a.signUpCmd(),
		a.signInCmd(),
		a.signOutCmd(),
		a.whoamiCmd(),
		a.profileCmd(),
		a.productsCmd(),
		a.productCmd(),
		a.cartCmd(),
		a.checkoutCmd(),
		a.ordersCmd(),
		a.catalogCmd(),
	)
	return root, a
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, !cfg.IsProduction())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) close() {
	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			a.log.Warn("failed to close kafka producer", zap.Error(err))
		}
	}
	if a.db != nil {
		_ = database.Close(a.db)
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// database opens and migrates the configured database once.
func (a *app) database() (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.Open(a.cfg.Database.Driver, a.cfg.DSN(), a.cfg.Database.LogLevel, a.log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) gateway(tokens gateway.TokenStore) (*gateway.Client, error) {
	db, err := a.database()
	if err != nil {
		return nil, err
	}
	signer := gateway.NewSigner(a.cfg.Auth.JWTSecret, a.cfg.Auth.SessionTTL)
	return gateway.New(db, signer, tokens, a.log, gateway.WithPasswordCost(a.cfg.Auth.BcryptCost)), nil
}

func (a *app) publisher() (events.Publisher, error) {
	if !a.cfg.Kafka.Enabled {
		return events.Nop{}, nil
	}
	if a.kafka == nil {
		kp, err := events.NewKafkaPublisher(a.cfg.Kafka.Brokers, a.cfg.Kafka.Topic, a.log)
		if err != nil {
			return nil, err
		}
		a.kafka = kp
	}
	return a.kafka, nil
}

// stores builds the client stores over the session file and hydrates the
// session.
func (a *app) stores(ctx context.Context) (*stores.Stores, *gateway.Client, error) {
	gw, err := a.gateway(gateway.FileTokenStore{Path: a.cfg.Auth.SessionFile})
	if err != nil {
		return nil, nil, err
	}
	pub, err := a.publisher()
	if err != nil {
		return nil, nil, err
	}
	st := stores.New(gw, pub, a.log)
	if err := st.Session.Initialize(ctx); err != nil {
		return nil, nil, err
	}
	return st, gw, nil
}

// signedIn is stores for commands that need a user.
func (a *app) signedIn(ctx context.Context) (*stores.Stores, *gateway.Client, error) {
	st, gw, err := a.stores(ctx)
	if err != nil {
		return nil, nil, err
	}
	if st.Session.State() != stores.StateAuthenticated {
		return nil, nil, errNotSignedIn
	}
	return st, gw, nil
}

var errNotSignedIn = errors.New("not signed in, run `storefront signin` first")

func describe(err error) error {
	if errors.Is(err, stores.ErrNotAuthenticated) {
		return errNotSignedIn
	}
	return err
}

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
