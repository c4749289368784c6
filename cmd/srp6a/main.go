// Package main provides the srp6a tool for SRP-6a password registration and handshakes.
//
// Each protocol step is a separate sub-command so the two peers can be
// driven by scripts or by hand, exchanging hex values out of band. The
// handshake command runs both peers locally.
package main

import (
	"fmt"
	"os"

	"github.com/fzdarsky/srp6a/internal/cli/clicontext"
	"github.com/fzdarsky/srp6a/internal/cli/commands"
)

// version is set by build flags
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	args, command := parseGlobalFlags(os.Args[1:])

	switch command {
	case "--help", "-h", "help", "":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("srp6a version %s\n", version)
		os.Exit(0)
	}

	switch command {
	case "params":
		commands.NewParamsCommand().Execute(args)
	case "register":
		commands.NewRegisterCommand().Execute(args)
	case "client-ephemeral":
		commands.NewClientEphemeralCommand().Execute(args)
	case "server-ephemeral":
		commands.NewServerEphemeralCommand().Execute(args)
	case "client-session":
		commands.NewClientSessionCommand().Execute(args)
	case "server-session":
		commands.NewServerSessionCommand().Execute(args)
	case "client-verify":
		commands.NewClientVerifyCommand().Execute(args)
	case "handshake":
		commands.NewHandshakeCommand().Execute(args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// parseGlobalFlags processes global flags and returns remaining args and the command.
// Global flags like --debug can appear anywhere in the argument list.
// Examples:
//
//	srp6a -d handshake --username alice     (before command)
//	srp6a handshake -d --username alice     (after command)
//	srp6a handshake --username alice -d     (at the end)
func parseGlobalFlags(args []string) ([]string, string) {
	remainingArgs := make([]string, 0, len(args))
	var command string

	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			clicontext.SetDebug(true)
			continue
		}

		if command == "" && (!isFlag(arg) || isTopLevelFlag(arg)) {
			command = arg
			continue
		}

		remainingArgs = append(remainingArgs, arg)
	}

	return remainingArgs, command
}

// isFlag returns true if the argument looks like a flag (starts with -).
func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

func isTopLevelFlag(arg string) bool {
	switch arg {
	case "--help", "-h", "--version", "-v":
		return true
	}
	return false
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `srp6a - SRP-6a password authentication tool

Usage:
  srp6a <command> [flags]

Available Commands:
  params            Show the selected parameter set (N, g, k)
  register          Create a salt and verifier from a password
  client-ephemeral  Client step 1: generate a and A
  server-ephemeral  Server step 1: generate b and B for a verifier
  client-session    Client step 2: derive K and the client proof M1
  server-session    Server step 2: check M1, derive K and the server proof M2
  client-verify     Client step 3: check M2
  handshake         Run both peers locally end to end

Global Flags:
  --help, -h        Show help information
  --version, -v     Show version information
  --debug, -d       Enable debug logging

Environment:
  SRP6A_CONFIG           Path to config file
  SRP6A_HASH_ALGORITHM   Hash algorithm (SHA-1, SHA-256, SHA-384, SHA-512, SHA3-256, SHA3-512, BLAKE2b-512)
  SRP6A_PRIME_GROUP      Prime group (1024, 1536, 2048, 3072, 4096, 6144, 8192)
  SRP6A_KDF_ITERATIONS   PBKDF2 iteration count
  SRP6A_LOG_LEVEL        Log level (debug, info, warn, error)

Examples:
  # Register a user and keep the verifier locally
  srp6a register --username alice --save

  # Check the password against the stored registration
  srp6a handshake --username alice --registered

  # Show the RFC 5054 1024-bit parameters
  srp6a params --hash SHA-1 --group 1024

For detailed help on a specific command, run:
  srp6a <command> --help

`)
}
