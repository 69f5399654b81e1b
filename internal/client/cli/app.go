package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/satchel/internal/client/blob"
	"github.com/dmitrijs2005/satchel/internal/client/cart"
	"github.com/dmitrijs2005/satchel/internal/client/config"
	"github.com/dmitrijs2005/satchel/internal/client/event"
	"github.com/dmitrijs2005/satchel/internal/client/relaypool"
	"github.com/dmitrijs2005/satchel/internal/client/services"
	"github.com/dmitrijs2005/satchel/internal/client/signer"
	"github.com/dmitrijs2005/satchel/internal/client/storage"
	"github.com/dmitrijs2005/satchel/internal/logging"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	builder   *event.Builder
	gateway   *signer.Gateway
	publisher *relaypool.Publisher
	fetcher   *relaypool.Reader

	// set by login
	signing signer.Signer
	pubkey  string

	content  services.ContentService
	cartSvc  services.CartService
	media    services.MediaService
	uploader services.Uploader

	reader *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	a := &App{
		config:    c,
		log:       log,
		db:        db,
		builder:   event.NewBuilder(),
		gateway:   signer.NewGateway(c.SignerTimeout, log),
		publisher: relaypool.NewPublisher(relaypool.DialRelay, c.PublishTimeout, log),
		fetcher:   relaypool.NewReader(relaypool.DialRelay, c.QueryTimeout, log),
		reader:    bufio.NewReader(os.Stdin),
	}
	a.uploader = blob.NewClient(c.MaxUploadBytes, c.PublishTimeout, a.builder, a.gateway, log)
	return a, nil
}

// wireServices builds the service layer once a signer is available.
func (a *App) wireServices(s signer.Signer) {
	a.signing = s
	a.content = services.NewContentService(s, a.gateway, a.builder, a.publisher, a.config.RelayURLs, a.log)

	engine := cart.NewService(s, a.gateway, a.builder, a.fetcher, a.publisher, a.db, a.config.RelayURLs, a.log)
	a.cartSvc = services.NewCartService(engine)

	a.media = services.NewMediaService(s, a.uploader, a.config.BlobServerURLs, a.config.MaxUploadBytes)
}

func (a *App) isLoggedIn() bool {
	return a.signing != nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}
