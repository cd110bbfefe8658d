// Package cli implements the interactive gallery client: a small REPL over
// the HTTP API with prompts for credentials and item fields.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/itemgallery/backend/internal/client/api"
	"github.com/itemgallery/backend/internal/client/config"
)

// galleryAPI is the slice of the API client the commands use; tests provide
// a stub.
type galleryAPI interface {
	Register(ctx context.Context, email, password, nickName string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*api.User, error)
	CreateItem(ctx context.Context, item *api.Item) (*api.Item, error)
	ListItems(ctx context.Context, skip, limit int) ([]api.Item, error)
	MyItems(ctx context.Context) ([]api.Item, error)
	GetItem(ctx context.Context, id int64) (*api.Item, error)
	DeleteItem(ctx context.Context, id int64) error
	ItemImages(ctx context.Context, id int64) ([]string, error)
	Token() string
}

type App struct {
	client galleryAPI
	reader *bufio.Reader
	out    io.Writer
}

// NewApp constructs the CLI app against the configured API endpoint.
func NewApp(c *config.Config) *App {
	return &App{
		client: api.NewClient(c.ServerAddr),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

// Run starts the command loop and returns when the user exits.
func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return "logged in"
	}
	return "guest"
}
