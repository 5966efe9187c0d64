package main

import (
	"context"
	"io"

	"github.com/wkgunawan/pokedex"
	"github.com/wkgunawan/pokedex/catalog"
	"github.com/wkgunawan/pokedex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Client  pokedex.Client
	Cache   pokedex.CacheStore
	Users   pokedex.UserService
	Catalog *catalog.Controller
	Finder  *catalog.Coordinator
	Details *catalog.DetailLoader
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log remote and cache activity"`

	Sync     SyncCmd     `cmd:"" help:"Sync the local catalog with PokeAPI"`
	List     ListCmd     `cmd:"" help:"List the cached Pokemon catalog"`
	Search   SearchCmd   `cmd:"" help:"Search the catalog by name or number"`
	Show     ShowCmd     `cmd:"" help:"Show details for one Pokemon"`
	Register RegisterCmd `cmd:"" help:"Create a trainer account"`
	Login    LoginCmd    `cmd:"" help:"Log in to a trainer account"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Pages int `short:"n" default:"1" help:"Number of pages to fetch"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Name fragment or Pokedex number"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Pokemon string `arg:"" help:"Pokedex number or exact name"`
}

// RegisterCmd is the "register" subcommand.
type RegisterCmd struct {
	Username string `arg:"" help:"Trainer name"`
	Email    string `arg:"" help:"Email address"`
	Password string `arg:"" help:"Password (at least 6 characters)"`
}

// LoginCmd is the "login" subcommand.
type LoginCmd struct {
	Email    string `arg:"" help:"Email address"`
	Password string `arg:"" help:"Password"`
}
