// Command seed-reviewer creates a user and adds them to a workspace with
// the given role. It is used to bootstrap the first reviewer of a
// workspace.
//
// Usage:
//
//	seed-reviewer --email=user@example.com --name="Jane Doe" --workspace=<uuid> [--role=ADMIN]
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the user to create")
	name := flag.String("name", "", "display name of the user")
	workspace := flag.String("workspace", "", "workspace id to add the user to")
	role := flag.String("role", string(domain.WorkspaceRoleAdmin), "workspace role (OWNER, ADMIN, MEMBER)")
	flag.Parse()

	if *email == "" || *name == "" || *workspace == "" {
		fmt.Fprintln(os.Stderr, `Usage: seed-reviewer --email=user@example.com --name="Jane Doe" --workspace=<uuid> [--role=ADMIN]`)
		os.Exit(1)
	}

	workspaceID, err := uuid.Parse(*workspace)
	if err != nil {
		log.Fatalf("invalid workspace id %q: %v", *workspace, err)
	}
	if !domain.WorkspaceRole(*role).IsValid() {
		log.Fatalf("invalid role %q", *role)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	userID := uuid.New()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin transaction: %v", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		"INSERT INTO users (id, name, email) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING",
		userID, *name, *email,
	)
	if err != nil {
		log.Fatalf("insert user: %v", err)
	}

	if err := tx.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", *email).Scan(&userID); err != nil {
		log.Fatalf("look up user: %v", err)
	}

	tag, err := tx.Exec(ctx,
		"INSERT INTO workspace_members (workspace_id, user_id, role) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING",
		workspaceID, userID, *role,
	)
	if err != nil {
		log.Fatalf("insert membership: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}

	if tag.RowsAffected() == 0 {
		fmt.Printf("User %q is already a member of workspace %s.\n", *email, workspaceID)
		os.Exit(1)
	}

	fmt.Printf("User %q (%s) added to workspace %s as %s.\n", *email, userID, workspaceID, *role)
}
