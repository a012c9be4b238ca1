package cli

import (
	"context"
	"fmt"
)

// register creates an account on the server. The journal itself works without
// an account; registration is only needed to sync.
func (a *App) register(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error reading email:", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error reading password:", err)
		return
	}

	if err := a.apiClient.Register(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return
	}
	fmt.Fprintln(a.out, "Registered. You can now log in.")
}

func (a *App) login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error reading email:", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error reading password:", err)
		return
	}

	if err := a.apiClient.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return
	}
	a.userEmail = email
	fmt.Fprintln(a.out, "Logged in as", email)
}

func (a *App) logout(ctx context.Context) {
	a.userEmail = ""
	a.log.Debug(ctx, "logged out")
	fmt.Fprintln(a.out, "Logged out")
}
