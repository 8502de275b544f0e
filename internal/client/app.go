// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package client

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ghostkey-labs/go-ghostkey/internal/blobstore"
	"github.com/ghostkey-labs/go-ghostkey/internal/chain"
	"github.com/ghostkey-labs/go-ghostkey/internal/config"
	"github.com/ghostkey-labs/go-ghostkey/internal/envelope"
	"github.com/ghostkey-labs/go-ghostkey/internal/faucet"
	"github.com/ghostkey-labs/go-ghostkey/internal/identity"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/internal/service"
)

// App is the assembled ghostkey CLI.
type App struct {
	cfg *config.ClientConfig
	log *logger.Logger

	deriver *identity.Deriver
	faucet  *faucet.Provisioner
	chain   *chain.Client

	uploads *service.UploadService
	views   *service.ViewService
	rentals *service.RentalService
}

// NewApp wires the application from configuration. submit may be nil; the
// CLI then runs read-only and upload/rent commands fail with a clear error.
func NewApp(cfg *config.ClientConfig, submit chain.Submitter, log *logger.Logger) (*App, error) {
	ctx := context.Background()

	store, err := identity.NewSQLiteStore(ctx, cfg.Identity.DBPath, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	chainClient := chain.NewClient(chain.Config{
		RPCURL:     cfg.Chain.RPCURL,
		PackageID:  cfg.Chain.PackageID,
		ModuleName: cfg.Chain.ModuleName,
	}, submit, log)

	blobClient, err := blobstore.New(blobstore.Config{
		PublisherURL:  cfg.Blob.PublisherURL,
		AggregatorURL: cfg.Blob.AggregatorURL,
		RelayURL:      cfg.Blob.RelayURL,
		StoreEpochs:   cfg.Blob.Epochs,
		Timeout:       cfg.Blob.RequestTimeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("create blob store client: %w", err)
	}

	policy := envelope.Policy{
		PackageID:       cfg.Chain.PackageID,
		ModuleName:      cfg.Chain.ModuleName,
		ApproveFunction: cfg.Chain.ApproveFunction,
	}
	codec := envelope.NewCodec(envelope.NewInlineEscrow())
	oracle := chain.NewLedgerOracle(chainClient, nil, log)

	app := &App{
		cfg:     cfg,
		log:     log,
		deriver: identity.NewDeriver(store, chainClient, log),
		chain:   chainClient,
		uploads: service.NewUploadService(codec, policy, blobClient, chainClient, log),
		views:   service.NewViewService(codec, policy, oracle, blobClient, chainClient, log),
		rentals: service.NewRentalService(chainClient, log),
	}
	if cfg.Faucet.URL != "" {
		app.faucet = faucet.New(cfg.Faucet.URL, store, chainClient, log)
	}

	return app, nil
}

// Run dispatches the command named by args.
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given, expected one of: login, whoami, listings, passes, upload, rent, view")
	}

	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "whoami":
		return a.whoami()
	case "listings":
		return a.listings(ctx)
	case "passes":
		return a.passes(ctx)
	case "upload":
		return a.upload(ctx, rest)
	case "rent":
		return a.rent(ctx, rest)
	case "view":
		return a.view(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// login derives (or restores) the wallet identity for the given subject and
// makes sure the address has gas.
func (a *App) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: login <subject|jwt>")
	}

	// A JWT from the login provider has two dots; anything else is used as
	// the subject directly.
	subject, token := args[0], ""
	if strings.Count(args[0], ".") == 2 {
		subject, token = "", args[0]
	}

	derived, err := a.deriver.Derive(ctx, subject, token)
	if err != nil {
		return fmt.Errorf("derive identity: %w", err)
	}

	if derived.IsNew {
		fmt.Printf("new identity: %s\n", derived.Address)
	} else {
		fmt.Printf("identity restored: %s\n", derived.Address)
	}

	if a.faucet != nil {
		if err := a.faucet.EnsureFunded(ctx, derived.Address); err != nil {
			fmt.Fprintf(os.Stderr, "funding warning: %v\n", err)
		}
	}

	return nil
}

func (a *App) whoami() error {
	record, err := a.deriver.Record()
	if err != nil {
		return fmt.Errorf("no identity yet, run login first: %w", err)
	}

	fmt.Printf("address:   %s\n", record.Address)
	fmt.Printf("max epoch: %d\n", record.MaxEpoch)
	return nil
}

func (a *App) listings(ctx context.Context) error {
	listings, err := a.chain.Listings(ctx)
	if err != nil {
		return fmt.Errorf("fetch listings: %w", err)
	}

	for _, l := range listings {
		fmt.Printf("%s  %-24s  %s  %d/hour (%d active)\n",
			l.ID, l.Title, l.MimeType, l.CurrentPrice(), l.ActiveRentals)
	}
	return nil
}

func (a *App) passes(ctx context.Context) error {
	record, err := a.deriver.Record()
	if err != nil {
		return fmt.Errorf("no identity yet, run login first: %w", err)
	}

	passes, err := a.chain.AccessPasses(ctx, record.Address)
	if err != nil {
		return fmt.Errorf("fetch access passes: %w", err)
	}

	now := time.Now()
	for _, p := range passes {
		state := "valid"
		if p.Expired(now) {
			state = "expired"
		}
		fmt.Printf("%s  listing %s  until %s  (%s)\n",
			p.ID, p.ListingID, time.UnixMilli(p.ExpiresAt).Format(time.RFC3339), state)
	}
	return nil
}

func (a *App) upload(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: upload <path> <mime-type> <title> <base-price> [price-slope]")
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}
	basePrice, err := strconv.ParseUint(args[3], 10, 64)
	if err != nil {
		return fmt.Errorf("parse base price: %w", err)
	}
	var priceSlope uint64
	if len(args) > 4 {
		if priceSlope, err = strconv.ParseUint(args[4], 10, 64); err != nil {
			return fmt.Errorf("parse price slope: %w", err)
		}
	}

	receipt, err := a.uploads.Upload(ctx, service.UploadRequest{
		Content:    content,
		MimeType:   args[1],
		Title:      args[2],
		BasePrice:  basePrice,
		PriceSlope: priceSlope,
	})
	if err != nil {
		return fmt.Errorf("upload failed at stage %q: %w", service.StageOf(err), err)
	}

	fmt.Printf("listing:    %s\n", receipt.ListingID)
	fmt.Printf("blob:       %s\n", receipt.BlobID)
	fmt.Printf("content id: %s\n", receipt.ContentID)
	return nil
}

func (a *App) rent(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: rent <listing-id> <hours> [max-price]")
	}

	hours, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	var maxPrice uint64
	if len(args) > 2 {
		if maxPrice, err = strconv.ParseUint(args[2], 10, 64); err != nil {
			return fmt.Errorf("parse max price: %w", err)
		}
	}

	receipt, err := a.rentals.Rent(ctx, service.RentRequest{
		ListingID:     args[0],
		DurationHours: hours,
		MaxPrice:      maxPrice,
	})
	if err != nil {
		return fmt.Errorf("rent failed: %w", err)
	}

	fmt.Printf("access pass: %s\n", receipt.AccessPassID)
	fmt.Printf("paid:        %d (%d/hour)\n", receipt.PaymentAmount, receipt.PricePerHour)
	return nil
}

func (a *App) view(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: view <listing-id> <access-pass-id> [out-path]")
	}

	result, err := a.views.View(ctx, service.ViewRequest{
		ListingID:    args[0],
		AccessPassID: args[1],
	})
	if err != nil {
		return fmt.Errorf("view failed at stage %q: %w", service.StageOf(err), err)
	}

	if len(args) > 2 {
		if err := os.WriteFile(args[2], result.Content, 0o600); err != nil {
			return fmt.Errorf("write content: %w", err)
		}
		fmt.Printf("wrote %d bytes (%s) to %s\n", len(result.Content), result.MimeType, args[2])
		return nil
	}

	_, err = os.Stdout.Write(result.Content)
	return err
}
