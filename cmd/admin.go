// ABOUTME: Admin command group and user account management
// ABOUTME: Listing, creating, updating, and deleting users; changing roles

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1234-ad/ticketing-system/internal/access"
	"github.com/1234-ad/ticketing-system/internal/api"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage user accounts (admins only)",
}

var (
	adminPage   int
	adminSize   int
	adminSearch string
)

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user accounts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminUsers(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var createUserReq api.CreateUserRequest

var adminCreateUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminCreateUser(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var updateUserReq api.UpdateUserRequest

var adminUpdateUserCmd = &cobra.Command{
	Use:   "update-user <id>",
	Short: "Update a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminUpdateUser(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminSetRoleCmd = &cobra.Command{
	Use:   "set-role <id> <role>",
	Short: "Change a user's role",
	Long: `Change a user's role to USER, SUPPORT_AGENT, or ADMIN.

Admins cannot change their own role; ask another admin.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminSetRole(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user <id>",
	Short: "Delete a user account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminDeleteUser(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminCreateUserCmd)
	adminCmd.AddCommand(adminUpdateUserCmd)
	adminCmd.AddCommand(adminSetRoleCmd)
	adminCmd.AddCommand(adminDeleteUserCmd)

	adminUsersCmd.Flags().IntVar(&adminPage, "page", 0, "Page number (zero-based)")
	adminUsersCmd.Flags().IntVar(&adminSize, "size", 20, "Page size")
	adminUsersCmd.Flags().StringVar(&adminSearch, "search", "", "Filter by name, username, or email")

	adminCreateUserCmd.Flags().StringVar(&createUserReq.Username, "username", "", "Username")
	adminCreateUserCmd.Flags().StringVar(&createUserReq.Email, "email", "", "Email address")
	adminCreateUserCmd.Flags().StringVar(&createUserReq.Password, "password", "", "Password")
	adminCreateUserCmd.Flags().StringVar(&createUserReq.FirstName, "first-name", "", "First name")
	adminCreateUserCmd.Flags().StringVar(&createUserReq.LastName, "last-name", "", "Last name")
	adminCreateUserCmd.Flags().StringVar((*string)(&createUserReq.Role), "role", "USER", "Role: USER, SUPPORT_AGENT, ADMIN")

	adminUpdateUserCmd.Flags().StringVar(&updateUserReq.Username, "username", "", "New username")
	adminUpdateUserCmd.Flags().StringVar(&updateUserReq.Email, "email", "", "New email address")
	adminUpdateUserCmd.Flags().StringVar(&updateUserReq.FirstName, "first-name", "", "New first name")
	adminUpdateUserCmd.Flags().StringVar(&updateUserReq.LastName, "last-name", "", "New last name")
}

// requireAdmin resolves the session and checks the ADMIN role.
func requireAdmin(ctx context.Context, e *env, w io.Writer) (*api.User, bool) {
	user, ok := e.requireUser(ctx, w)
	if !ok {
		return nil, false
	}
	if user.Role != api.RoleAdmin {
		fmt.Fprintln(w, "Access denied: this command requires the ADMIN role.")
		return nil, false
	}
	return user, true
}

func formatUserPageHuman(page *api.Page[api.User]) string {
	var b strings.Builder
	if len(page.Content) == 0 {
		b.WriteString("No users found.\n")
		return strings.TrimRight(b.String(), "\n")
	}

	fmt.Fprintf(&b, "%-6s %-16s %-28s %-14s %s\n", "ID", "USERNAME", "EMAIL", "ROLE", "NAME")
	for _, u := range page.Content {
		fmt.Fprintf(&b, "%-6d %-16s %-28s %-14s %s\n",
			u.ID, truncate(u.Username, 16), truncate(u.Email, 28), u.Role, u.FullName())
	}
	fmt.Fprintf(&b, "\nPage %d of %d (%d users)", page.Number+1, page.TotalPages, page.TotalElements)
	return b.String()
}

func runAdminUsers(ctx context.Context, w io.Writer) int {
	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if _, ok := requireAdmin(ctx, e, w); !ok {
		return 1
	}

	var page *api.Page[api.User]
	if adminSearch != "" {
		page, err = e.client.SearchUsers(ctx, adminSearch, adminPage, adminSize)
	} else {
		page, err = e.client.Users(ctx, adminPage, adminSize)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(page))
		return 0
	}
	fmt.Fprintln(w, formatUserPageHuman(page))
	return 0
}

func runAdminCreateUser(ctx context.Context, w io.Writer) int {
	if createUserReq.Username == "" || createUserReq.Email == "" || createUserReq.Password == "" {
		fmt.Fprintln(w, "Error: --username, --email, and --password are required")
		return 2
	}
	role, err := api.ParseRole(string(createUserReq.Role))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	createUserReq.Role = role

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if _, ok := requireAdmin(ctx, e, w); !ok {
		return 1
	}

	user, err := e.client.CreateUser(ctx, createUserReq)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(user))
		return 0
	}
	fmt.Fprintf(w, "Created user #%d (%s, %s)\n", user.ID, user.Username, user.Role)
	return 0
}

func runAdminUpdateUser(ctx context.Context, w io.Writer, idArg string) int {
	id, err := parseID(idArg, "user")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if updateUserReq.Username == "" && updateUserReq.Email == "" && updateUserReq.FirstName == "" && updateUserReq.LastName == "" {
		fmt.Fprintln(w, "Error: nothing to update; pass --username, --email, --first-name, or --last-name")
		return 2
	}

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if _, ok := requireAdmin(ctx, e, w); !ok {
		return 1
	}

	user, err := e.client.UpdateUser(ctx, id, updateUserReq)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(user))
		return 0
	}
	fmt.Fprintf(w, "Updated user #%d\n", user.ID)
	return 0
}

func runAdminSetRole(ctx context.Context, w io.Writer, idArg, roleArg string) int {
	id, err := parseID(idArg, "user")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	role, err := api.ParseRole(roleArg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	actor, ok := requireAdmin(ctx, e, w)
	if !ok {
		return 1
	}
	if !access.CanChangeRole(actor, &api.User{ID: id}) {
		fmt.Fprintln(w, "You cannot change your own role; ask another admin.")
		return 1
	}

	user, err := e.client.UpdateUserRole(ctx, id, role)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, printJSON(user))
		return 0
	}
	fmt.Fprintf(w, "User #%d is now %s\n", user.ID, user.Role)
	return 0
}

func runAdminDeleteUser(ctx context.Context, w io.Writer, idArg string) int {
	id, err := parseID(idArg, "user")
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	e, err := newEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	actor, ok := requireAdmin(ctx, e, w)
	if !ok {
		return 1
	}
	if !access.CanDeleteUser(actor, &api.User{ID: id}) {
		fmt.Fprintln(w, "You cannot delete your own account.")
		return 1
	}

	if err := e.client.DeleteUser(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Deleted user #%d\n", id)
	return 0
}
