package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boxsync/boxsync/internal/config"
	"github.com/boxsync/boxsync/internal/store"
	"github.com/boxsync/boxsync/internal/utils"
)

func init() {
	rootCmd.AddCommand(newLoginCmd())
}

func newLoginCmd() *cobra.Command {
	var serverURL string
	var tokenPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:     "login",
		Aliases: []string{"init"},
		Short:   "Log in to the box server and store a credential token",
		Run: func(cmd *cobra.Command, args []string) {
			if tok, err := store.LoadToken(tokenPath); err == nil {
				if !quiet {
					fmt.Println(green.Render("Already logged in"))
					fmt.Printf("%s%s\n", gray.Render("Email  "), green.Render(tok.Email))
					fmt.Printf("%s%s\n", gray.Render("Token  "), green.Render(tokenPath))
				}
				return
			}

			if err := runLogin(cmd.Context(), serverURL, tokenPath); err != nil {
				fmt.Printf("%s: %s\n", red.Render("ERROR"), err)
				os.Exit(1)
			}

			if !quiet {
				fmt.Println(green.Render("Logged in, credential saved"))
				fmt.Printf("%s%s\n", gray.Render("Token  "), green.Render(tokenPath))
			}
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&serverURL, "server", "s", config.DefaultServerURL, "url of the box server")
	cmd.Flags().StringVarP(&tokenPath, "token", "t", config.DefaultTokenPath, "where to store the credential token")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "disable output")

	return cmd
}

// runLogin drives the interactive email/code flow and persists the resulting
// token pair. It is the whole credential bootstrap: once it returns nil, a
// valid token file exists at tokenPath.
func runLogin(ctx context.Context, serverURL string, tokenPath string) error {
	if err := utils.ValidateURL(serverURL); err != nil {
		return err
	}

	var tokens *store.AuthTokenResponse
	var email string

	onEmailSubmit := func(emailInput string) error {
		return store.VerifyEmail(ctx, serverURL, emailInput)
	}

	onCodeSubmit := func(emailInput, codeInput string) error {
		resp, err := store.VerifyEmailCode(ctx, serverURL, &store.VerifyEmailCodeRequest{
			Email: emailInput,
			Code:  codeInput,
		})
		if err != nil {
			return err
		}
		email = emailInput
		tokens = resp
		return nil
	}

	if err := RunLoginTUI(LoginTUIOpts{
		ServerURL:          serverURL,
		TokenPath:          tokenPath,
		EmailSubmitHandler: onEmailSubmit,
		CodeSubmitHandler:  onCodeSubmit,
		EmailValidator:     utils.IsValidEmail,
		CodeValidator:      store.IsValidCode,
	}); err != nil {
		return err
	}

	if tokens == nil {
		return fmt.Errorf("login produced no token")
	}

	tok := &store.Token{
		Email:        email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	return tok.Save(tokenPath)
}
