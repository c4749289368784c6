package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fzdarsky/srp6a/pkg/protocol"
)

// ClientEphemeralCommand implements the 'client-ephemeral' command (client step 1).
type ClientEphemeralCommand struct{}

// NewClientEphemeralCommand creates a new client-ephemeral command instance.
func NewClientEphemeralCommand() *ClientEphemeralCommand {
	return &ClientEphemeralCommand{}
}

// Execute runs the client-ephemeral command with the provided arguments.
func (c *ClientEphemeralCommand) Execute(args []string) {
	fs := flag.NewFlagSet("client-ephemeral", flag.ExitOnError)
	common := addCommonFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a client-ephemeral [flags]

Generate the client's ephemeral key pair (a, A). Send A and the username
to the server; keep a secret for client-session.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	env, err := common.setup(context.Background())
	if err != nil {
		exitWithError("%v", err)
	}

	eph, err := env.client().GenerateEphemeral()
	if err != nil {
		exitWithError("failed to generate client ephemeral: %v", err)
	}

	if err := env.print(eph); err != nil {
		exitWithError("%v", err)
	}
}

// ClientSessionCommand implements the 'client-session' command (client step 2).
type ClientSessionCommand struct{}

// NewClientSessionCommand creates a new client-session command instance.
func NewClientSessionCommand() *ClientSessionCommand {
	return &ClientSessionCommand{}
}

// clientSessionInput holds the client's secret and what the server sent.
type clientSessionInput struct {
	secret       string
	serverPublic string
	salt         string
	username     string
	password     string
}

// Execute runs the client-session command with the provided arguments.
func (c *ClientSessionCommand) Execute(args []string) {
	fs := flag.NewFlagSet("client-session", flag.ExitOnError)
	common := addCommonFlags(fs)

	var in clientSessionInput
	fs.StringVar(&in.secret, "secret", "", "Client ephemeral secret a (hex) from client-ephemeral")
	fs.StringVar(&in.serverPublic, "server-public", "", "Server public ephemeral B (hex)")
	fs.StringVar(&in.salt, "salt", "", "Salt (hex) sent by the server")
	fs.StringVar(&in.username, "username", "", "Username")
	fs.StringVar(&in.password, "password", "", "Password (prompts if not provided)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a client-session [flags]

Derive the session key K and the client proof M1 from the password and the
server's reply. Send M1 to the server and keep K for client-verify.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  srp6a client-session --secret <a> --server-public <B> --salt <s> --username alice
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

	if in.password == "" {
		in.password = promptPassword("Password")
	}

	session, err := c.run(ctx, env, in)
	if err != nil {
		exitWithError("%v", err)
	}

	if err := env.print(session); err != nil {
		exitWithError("%v", err)
	}
}

func (c *ClientSessionCommand) run(ctx context.Context, env *environment, in clientSessionInput) (protocol.Session, error) {
	if err := requireFlags(map[string]string{
		"secret":        in.secret,
		"server-public": in.serverPublic,
		"salt":          in.salt,
		"username":      in.username,
	}); err != nil {
		return protocol.Session{}, err
	}

	x, err := env.deriver.PrivateKey(ctx, in.salt, in.username, in.password)
	if err != nil {
		return protocol.Session{}, fmt.Errorf("failed to derive private key: %w", err)
	}

	session, err := env.client().DeriveSession(ctx, in.secret, in.serverPublic, in.salt, in.username, x)
	if err != nil {
		return protocol.Session{}, fmt.Errorf("client session failed: %w", err)
	}
	return session, nil
}

// ClientVerifyCommand implements the 'client-verify' command (client step 3).
type ClientVerifyCommand struct{}

// NewClientVerifyCommand creates a new client-verify command instance.
func NewClientVerifyCommand() *ClientVerifyCommand {
	return &ClientVerifyCommand{}
}

// VerifyResult is printed by client-verify.
type VerifyResult struct {
	Verified bool `json:"verified" yaml:"verified"`
}

// Execute runs the client-verify command with the provided arguments.
func (c *ClientVerifyCommand) Execute(args []string) {
	fs := flag.NewFlagSet("client-verify", flag.ExitOnError)
	common := addCommonFlags(fs)

	clientPublic := fs.String("client-public", "", "Client public ephemeral A (hex)")
	key := fs.String("key", "", "Session key K (hex) from client-session")
	proof := fs.String("proof", "", "Client proof M1 (hex) from client-session")
	serverProof := fs.String("server-proof", "", "Server proof M2 (hex)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a client-verify [flags]

Check the server's proof M2. Exits non-zero if the server does not know
the verifier.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	ctx := context.Background()
	env, err := common.setup(ctx)
	if err != nil {
		exitWithError("%v", err)
	}

	session := protocol.Session{Key: *key, Proof: *proof}
	if err := c.run(ctx, env, *clientPublic, session, *serverProof); err != nil {
		exitWithError("%v", err)
	}

	if err := env.print(VerifyResult{Verified: true}); err != nil {
		exitWithError("%v", err)
	}
}

func (c *ClientVerifyCommand) run(ctx context.Context, env *environment, clientPublic string, session protocol.Session, serverProof string) error {
	if err := requireFlags(map[string]string{
		"client-public": clientPublic,
		"key":           session.Key,
		"proof":         session.Proof,
		"server-proof":  serverProof,
	}); err != nil {
		return err
	}

	if err := env.client().VerifySession(ctx, clientPublic, session, serverProof); err != nil {
		return fmt.Errorf("server verification failed: %w", err)
	}
	return nil
}
