package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// RegisterCommand implements the 'register' command that turns a password into a salt and verifier.
type RegisterCommand struct{}

// NewRegisterCommand creates a new register command instance.
func NewRegisterCommand() *RegisterCommand {
	return &RegisterCommand{}
}

// Execute runs the register command with the provided arguments.
func (c *RegisterCommand) Execute(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	common := addCommonFlags(fs)

	username := fs.String("username", "", "Username to register (prompts if not provided)")
	password := fs.String("password", "", "Password (prompts if not provided)")
	save := fs.Bool("save", false, "Store the registration in the local registration store")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a register [flags]

Generate a random salt and derive the password verifier v = g^x mod N.
The output is what a server stores instead of the password.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Interactive (prompts for username and password)
  srp6a register

  # Register and keep the result for 'server-ephemeral --username'
  srp6a register --username alice --save

  # PBKDF2-stretched private key
  srp6a register --username alice --kdf pbkdf2
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	ctx := context.Background()
	env, err := common.setup(ctx)
	if err != nil {
		exitWithError("%v", err)
	}

	user := *username
	if user == "" {
		user = promptUsername()
	}
	pass := *password
	if pass == "" {
		pass = promptPassword("Password")
		if confirm := promptPassword("Confirm password"); confirm != pass {
			exitWithError("passwords do not match")
		}
	}

	reg, err := c.run(ctx, env, user, pass, *save)
	if err != nil {
		exitWithError("registration failed: %v", err)
	}

	if err := env.print(reg); err != nil {
		exitWithError("%v", err)
	}
}

func (c *RegisterCommand) run(ctx context.Context, env *environment, username, password string, save bool) (protocol.Registration, error) {
	if username == "" {
		return protocol.Registration{}, fmt.Errorf("username is required")
	}

	reg, err := register(ctx, env, username, password)
	if err != nil {
		return protocol.Registration{}, err
	}

	if save {
		store, err := env.registry()
		if err != nil {
			return protocol.Registration{}, fmt.Errorf("failed to open registration store: %w", err)
		}
		if err := store.Save(reg); err != nil {
			return protocol.Registration{}, err
		}
		env.logger.Info("registration saved", map[string]any{"username": username})
	}

	return reg, nil
}

// register derives a fresh salt and verifier for username.
func register(ctx context.Context, env *environment, username, password string) (protocol.Registration, error) {
	client := env.client()

	salt, err := client.GenerateSalt()
	if err != nil {
		return protocol.Registration{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	x, err := env.deriver.PrivateKey(ctx, salt, username, password)
	if err != nil {
		return protocol.Registration{}, fmt.Errorf("failed to derive private key: %w", err)
	}

	verifier, err := client.DeriveVerifier(x)
	if err != nil {
		return protocol.Registration{}, fmt.Errorf("failed to derive verifier: %w", err)
	}

	return protocol.Registration{
		Username:      username,
		Salt:          salt,
		Verifier:      verifier,
		HashAlgorithm: string(env.params.HashAlgorithm()),
		PrimeGroup:    string(env.params.PrimeGroup()),
		KDF:           env.cfg.KDF.Type,
		Iterations:    env.kdfIterations(),
	}, nil
}
