package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) signUpCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.stores(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Session.SignUp(cmd.Context(), email, password, name); err != nil {
				return err
			}
			printf(cmd, "Account created for %s. Sign in with `storefront signin`.\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password, at least 6 characters")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) signInCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.stores(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Session.SignIn(cmd.Context(), email, password); err != nil {
				return err
			}
			user := st.Session.User()
			printf(cmd, "Signed in as %s <%s>\n", user.FullName, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) signOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "End the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.stores(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.Session.SignOut(cmd.Context()); err != nil {
				return err
			}
			printf(cmd, "Signed out.\n")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.stores(cmd.Context())
			if err != nil {
				return err
			}
			user := st.Session.User()
			if user == nil {
				printf(cmd, "Not signed in.\n")
				return nil
			}
			printf(cmd, "%s <%s>\n", user.FullName, user.Email)
			return nil
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := a.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				if err := st.Session.UpdateProfile(cmd.Context(), name); err != nil {
					return describe(err)
				}
			}
			user := st.Session.User()
			printf(cmd, "Name:         %s\nEmail:        %s\nMember since: %s\n",
				user.FullName, user.Email, user.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new full name")
	return cmd
}
