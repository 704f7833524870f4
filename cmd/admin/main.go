// Package main provides a CLI for administrative bootstrap tasks.
// Usage: admin bootstrap
//        admin create-user --email user@example.com --password secret
//        admin roles
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/auth"
	"zenbill/internal/infrastructure/storage/postgres"
	"zenbill/internal/infrastructure/storage/postgres/auth_repo"
)

// systemRoles are created by bootstrap if missing. The "user" role is
// assigned automatically on registration.
var systemRoles = []struct {
	code        string
	name        string
	description string
}{
	{"admin", "Administrator", "Full access to all resources"},
	{"accountant", "Accountant", "Documents, payments and reports"},
	{"sales", "Sales", "Quotes, sales orders and delivery challans"},
	{"purchases", "Purchases", "Purchase orders and vendor credits"},
	{"user", "User", "Read-only access"},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "bootstrap":
		bootstrap(ctx)
	case "create-user":
		createUser(ctx)
	case "roles":
		listRoles(ctx)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Zenbill Admin CLI

Usage:
  admin <command> [options]

Commands:
  bootstrap    Create system roles and the initial admin user
  create-user  Create a regular user
  roles        List roles
  help         Show this help

Environment Variables:
  DATABASE_URL     Connection string (required)
  ADMIN_EMAIL      Admin email for bootstrap (default admin@zenbill.local)
  ADMIN_PASSWORD   Admin password for bootstrap (default Admin123!)

Examples:
  admin bootstrap
  admin create-user --email jane@example.com --password secret123
  admin roles`)
}

func connect(ctx context.Context) *postgres.TxManager {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		fail("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		fail("connect to database: %v", err)
	}

	return postgres.NewTxManager(pool)
}

func fail(format string, args ...any) {
	fmt.Printf("Error: "+format+"\n", args...)
	os.Exit(1)
}

func bootstrap(ctx context.Context) {
	txManager := connect(ctx)
	roleRepo := auth_repo.NewRoleRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	for _, r := range systemRoles {
		_, err := roleRepo.GetByCode(ctx, r.code)
		if err == nil {
			continue
		}
		if !apperror.IsNotFound(err) {
			fail("check role %s: %v", r.code, err)
		}

		role := auth.NewRole(r.code, r.name)
		role.Description = r.description
		role.IsSystem = true
		if err := roleRepo.Create(ctx, role); err != nil {
			fail("create role %s: %v", r.code, err)
		}
		fmt.Printf("Role created: %s\n", r.code)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@zenbill.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	existing, err := userRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		fmt.Printf("Admin user already exists: %s (%s)\n", adminEmail, existing.ID)
		return
	}
	if !apperror.IsNotFound(err) {
		fail("check admin user: %v", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fail("hash password: %v", err)
	}

	admin := auth.NewUser(adminEmail, string(passwordHash))
	admin.FirstName = "System"
	admin.LastName = "Admin"
	admin.IsAdmin = true

	if err := userRepo.Create(ctx, admin); err != nil {
		fail("create admin user: %v", err)
	}

	adminRole, err := roleRepo.GetByCode(ctx, "admin")
	if err != nil {
		fail("load admin role: %v", err)
	}
	if err := userRepo.AssignRole(ctx, admin.ID, adminRole.ID, id.Nil()); err != nil {
		fail("assign admin role: %v", err)
	}

	fmt.Printf("Admin user created: %s (%s)\n", adminEmail, admin.ID)
}

func createUser(ctx context.Context) {
	var email, password, firstName, lastName string

	for i := 2; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--email":
			if i+1 < len(os.Args) {
				email = os.Args[i+1]
				i++
			}
		case "--password":
			if i+1 < len(os.Args) {
				password = os.Args[i+1]
				i++
			}
		case "--first-name":
			if i+1 < len(os.Args) {
				firstName = os.Args[i+1]
				i++
			}
		case "--last-name":
			if i+1 < len(os.Args) {
				lastName = os.Args[i+1]
				i++
			}
		}
	}

	if email == "" || password == "" {
		fail("--email and --password are required")
	}

	txManager := connect(ctx)
	service := auth.NewService(
		auth_repo.NewUserRepo(txManager),
		auth_repo.NewRoleRepo(txManager),
		auth_repo.NewTokenRepo(txManager),
		txManager,
		auth.NewJWTService(auth.DefaultJWTConfig("bootstrap-unused")),
		auth.DefaultServiceConfig(),
	)

	user, err := service.Register(ctx, auth.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		fail("create user: %v", err)
	}

	fmt.Printf("User created: %s (%s)\n", user.Email, user.ID)
}

func listRoles(ctx context.Context) {
	txManager := connect(ctx)
	roleRepo := auth_repo.NewRoleRepo(txManager)

	roles, err := roleRepo.List(ctx)
	if err != nil {
		fail("list roles: %v", err)
	}

	if len(roles) == 0 {
		fmt.Println("No roles found. Run 'admin bootstrap' first.")
		return
	}

	fmt.Printf("%-12s %-16s %s\n", "CODE", "NAME", "DESCRIPTION")
	for _, r := range roles {
		fmt.Printf("%-12s %-16s %s\n", r.Code, r.Name, r.Description)
	}
}
