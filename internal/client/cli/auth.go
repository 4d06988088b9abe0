package cli

import (
	"context"
	"log"
	"os"

	"github.com/mpetrov/taskkeeper/internal/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates a new account.
// On success the session is active and the prompt shows the user's name.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	resp, err := a.backend.Signup(ctx, name, email, password)
	if err != nil {
		log.Printf("Registration failed: %s", err.Error())
		return err
	}

	a.userName = resp.User.Name
	printlnFn("Welcome,", resp.User.Name)
	return nil
}

// Login prompts for credentials and authenticates against whichever backend
// is currently reachable.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	resp, err := a.backend.Login(ctx, email, password)
	if err != nil {
		log.Printf("Login failed: %s", err.Error())
		return err
	}

	a.userName = resp.User.Name
	printlnFn("Welcome back,", resp.User.Name)
	return nil
}

// Logout ends the current session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.backend.Logout(ctx); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	a.userName = ""
	return nil
}

// Whoami displays the authenticated user's profile.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.backend.Me(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Name: ", user.Name)
	printlnFn("Email:", user.Email)
	printlnFn("Since:", user.CreatedAt.Format("2006-01-02"))
	return nil
}

// Profile prompts for a new name and email (empty input keeps the current
// value) and updates the account.
func (a *App) Profile(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var patch api.UpdateProfileRequest
	if name != "" {
		patch.Name = &name
	}
	if email != "" {
		patch.Email = &email
	}

	user, err := a.backend.UpdateProfile(ctx, patch)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	a.userName = user.Name
	printlnFn("Profile updated")
	return nil
}

// Passwd verifies the current password and replaces it with a new one.
func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	newPassword, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.backend.ChangePassword(ctx, current, newPassword); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printlnFn("Password updated")
	return nil
}

// Unregister deletes the account and everything it owns after an explicit
// confirmation.
func (a *App) Unregister(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete the account and all its tasks? (yes/no)", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Aborted")
		return nil
	}

	if err := a.backend.DeleteAccount(ctx); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	a.userName = ""
	printlnFn("Account deleted")
	return nil
}
