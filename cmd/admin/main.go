// Command admin creates an administrator account. Run it once against a
// fresh database; further users are invited from the web interface.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/helpdesk/internal/common"
	"github.com/dmitrijs2005/helpdesk/internal/console"
	"github.com/dmitrijs2005/helpdesk/internal/logging"
	"github.com/dmitrijs2005/helpdesk/internal/server"
	"github.com/dmitrijs2005/helpdesk/internal/server/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)

	account, err := console.ReadAccount(bufio.NewReader(os.Stdin), os.Stdout, int(os.Stdin.Fd()))
	if err != nil {
		return err
	}

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.Registration().BootstrapAdmin(ctx, account.Surname, account.Name, account.Email, account.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return fmt.Errorf("%s is already registered", account.Email)
		}
		return err
	}

	fmt.Printf("Administrator %s %s created (id %s)\n", user.Name, user.Surname, user.ID)
	return nil
}
