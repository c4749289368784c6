package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// HandshakeCommand implements the 'handshake' command, a local end-to-end run of both peers.
type HandshakeCommand struct{}

// NewHandshakeCommand creates a new handshake command instance.
func NewHandshakeCommand() *HandshakeCommand {
	return &HandshakeCommand{}
}

// HandshakeResult summarizes a completed local handshake.
type HandshakeResult struct {
	Username      string `json:"username" yaml:"username"`
	HashAlgorithm string `json:"hash_algorithm" yaml:"hash_algorithm"`
	PrimeGroup    string `json:"prime_group" yaml:"prime_group"`
	ClientPublic  string `json:"client_public" yaml:"client_public"`
	ServerPublic  string `json:"server_public" yaml:"server_public"`
	ClientProof   string `json:"client_proof" yaml:"client_proof"`
	ServerProof   string `json:"server_proof" yaml:"server_proof"`
	Key           string `json:"key,omitempty" yaml:"key,omitempty"`
	Verified      bool   `json:"verified" yaml:"verified"`
}

// Execute runs the handshake command with the provided arguments.
func (c *HandshakeCommand) Execute(args []string) {
	fs := flag.NewFlagSet("handshake", flag.ExitOnError)
	common := addCommonFlags(fs)

	username := fs.String("username", "", "Username (prompts if not provided)")
	password := fs.String("password", "", "Password (prompts if not provided)")
	registered := fs.Bool("registered", false, "Use the stored registration as the server side")
	showKey := fs.Bool("show-key", false, "Include the shared session key in the output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a handshake [flags]

Run a complete SRP-6a handshake locally, playing both client and server.
Without --registered a throwaway registration is created from the password.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Check that a password works against a stored registration
  srp6a handshake --username alice --registered

  # Exercise a parameter set end to end
  srp6a handshake --username alice --password secret --hash SHA3-512 --group 4096
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
	}

	result, err := c.run(ctx, env, user, pass, *registered)
	if err != nil {
		exitWithError("handshake failed: %v", err)
	}
	if !*showKey {
		result.Key = ""
	}

	if err := env.print(result); err != nil {
		exitWithError("%v", err)
	}
}

func (c *HandshakeCommand) run(ctx context.Context, env *environment, username, password string, registered bool) (HandshakeResult, error) {
	if username == "" {
		return HandshakeResult{}, fmt.Errorf("username is required")
	}

	var (
		reg protocol.Registration
		err error
	)
	if registered {
		reg, err = env.lookupRegistration(username)
	} else {
		reg, err = register(ctx, env, username, password)
	}
	if err != nil {
		return HandshakeResult{}, err
	}

	client := env.client()
	server := env.server()

	// Client -> server: username, A.
	clientEph, err := client.GenerateEphemeral()
	if err != nil {
		return HandshakeResult{}, fmt.Errorf("failed to generate client ephemeral: %w", err)
	}

	// Server -> client: salt, B.
	serverEph, err := server.GenerateEphemeral(reg.Verifier)
	if err != nil {
		return HandshakeResult{}, fmt.Errorf("failed to generate server ephemeral: %w", err)
	}

	// Client -> server: M1.
	x, err := env.deriver.PrivateKey(ctx, reg.Salt, username, password)
	if err != nil {
		return HandshakeResult{}, fmt.Errorf("failed to derive private key: %w", err)
	}
	clientSession, err := client.DeriveSession(ctx, clientEph.Secret, serverEph.Public, reg.Salt, username, x)
	if err != nil {
		return HandshakeResult{}, fmt.Errorf("client session failed: %w", err)
	}

	// Server -> client: M2.
	serverSession, err := server.DeriveSession(ctx, serverEph.Secret, clientEph.Public, reg.Salt, username, reg.Verifier, clientSession.Proof)
	if err != nil {
		return HandshakeResult{}, fmt.Errorf("server session failed: %w", err)
	}

	if err := client.VerifySession(ctx, clientEph.Public, clientSession, serverSession.Proof); err != nil {
		return HandshakeResult{}, fmt.Errorf("server verification failed: %w", err)
	}

	env.logger.Info("handshake complete", map[string]any{
		"username":       username,
		"hash_algorithm": string(env.params.HashAlgorithm()),
		"prime_group":    string(env.params.PrimeGroup()),
	})

	return HandshakeResult{
		Username:      username,
		HashAlgorithm: string(env.params.HashAlgorithm()),
		PrimeGroup:    string(env.params.PrimeGroup()),
		ClientPublic:  clientEph.Public,
		ServerPublic:  serverEph.Public,
		ClientProof:   clientSession.Proof,
		ServerProof:   serverSession.Proof,
		Key:           clientSession.Key,
		Verified:      true,
	}, nil
}
