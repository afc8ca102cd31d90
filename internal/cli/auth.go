package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskdesk/internal/controller"
	"taskdesk/internal/model"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the credential",
	RunE:  runLogin,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and log in",
	RunE:  runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored credential",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("email", "", "Email address")
	loginCmd.Flags().String("password", "", "Password")

	signupCmd.Flags().String("name", "", "Full name")
	signupCmd.Flags().String("email", "", "Email address")
	signupCmd.Flags().String("password", "", "Password")
	signupCmd.Flags().String("profile-image-url", "", "Profile picture URL")
	signupCmd.Flags().String("admin-invite-token", "", "Admin invite token")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	auth := controller.NewAuth(app.Client, app.Session, app.Busy)
	return report(cmd, auth.Login(cmd.Context(), model.Credentials{Email: email, Password: password}))
}

func runSignup(cmd *cobra.Command, args []string) error {
	var p model.Profile
	p.Name, _ = cmd.Flags().GetString("name")
	p.Email, _ = cmd.Flags().GetString("email")
	p.Password, _ = cmd.Flags().GetString("password")
	p.ProfileImageURL, _ = cmd.Flags().GetString("profile-image-url")
	p.AdminInviteToken, _ = cmd.Flags().GetString("admin-invite-token")

	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	auth := controller.NewAuth(app.Client, app.Session, app.Busy)
	return report(cmd, auth.Signup(cmd.Context(), p))
}

func report(cmd *cobra.Command, out controller.AuthOutcome) error {
	if out.Error != "" {
		return errors.New(out.Error)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", out.Identity.Email, out.Identity.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	controller.NewAuth(app.Client, app.Session, app.Busy).Logout(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	user, ok := app.Session.Identity()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nRole: %s\nID:   %s\n", user.Name, user.Email, user.Role, user.ID)
	return nil
}
