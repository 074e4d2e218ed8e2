package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/illarion/keeppass/cmd"
	"github.com/illarion/keeppass/internal/config"
	"github.com/illarion/keeppass/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	// Without a command keeppass starts the interactive menu.
	if len(os.Args) < 2 {
		cmd.Shell(ctx, cfg)
		return
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "init":
		runInit(ctx, cfg, args)
	case "add":
		runAdd(ctx, cfg, args)
	case "get":
		runGet(ctx, cfg, args)
	case "rm":
		runRm(ctx, cfg, args)
	case "update":
		runUpdate(ctx, cfg, args)
	case "ls":
		runLs(ctx, cfg, args)
	case "shell":
		runShell(ctx, cfg, args)
	case "snapshot":
		runSnapshot(ctx, cfg, args)
	case "snapshots":
		runSnapshots(ctx, cfg, args)
	case "diff":
		runDiff(ctx, cfg, args)
	case "restore":
		runRestore(ctx, cfg, args)
	case "export":
		runExport(ctx, cfg, args)
	case "import":
		runImport(ctx, cfg, args)
	case "status":
		runStatus(ctx, cfg, args)
	case "passwd":
		runPasswd(ctx, cfg, args)
	case "keyring":
		runKeyring(ctx, cfg, args)
	case "compact":
		runCompact(ctx, cfg, args)
	case "completion":
		runCompletion(ctx, args)
	case "help", "-h", "--help":
		if len(args) == 0 {
			printUsage()
			return
		}
		printCommandHelp(args[0])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// parse parses command flags, exiting on error.
func parse(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// requireArgs exits with usage when fewer than n positional arguments were given.
func requireArgs(fs *flag.FlagSet, n int, usage string) {
	if fs.NArg() < n {
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}
}

func runInit(_ context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	parse(fs, args)

	cmd.Init(cfg)
}

func runAdd(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	username := fs.String("u", "", "Username (prompted when empty)")
	parse(fs, args)
	requireArgs(fs, 1, "keeppass add [-u <username>] <website>")

	cmd.Add(ctx, cfg, fs.Arg(0), *username)
}

func runGet(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	parse(fs, args)
	requireArgs(fs, 1, "keeppass get <website>")

	cmd.Get(ctx, cfg, fs.Arg(0))
}

func runRm(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	parse(fs, args)
	requireArgs(fs, 1, "keeppass rm <website> [website...]")

	cmd.Remove(ctx, cfg, fs.Args())
}

func runUpdate(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	username := fs.String("u", "", "New username (prompted when empty)")
	parse(fs, args)
	requireArgs(fs, 1, "keeppass update [-u <username>] <website>")

	cmd.Update(ctx, cfg, fs.Arg(0), *username)
}

func runLs(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	quiet := fs.Bool("q", false, "Print website names only")
	parse(fs, args)

	cmd.List(ctx, cfg, *quiet)
}

func runShell(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	parse(fs, args)

	cmd.Shell(ctx, cfg)
}

func runSnapshot(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	parse(fs, args)

	cmd.Snapshot(ctx, cfg)
}

func runSnapshots(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("snapshots", flag.ExitOnError)
	parse(fs, args)

	cmd.Snapshots(ctx, cfg)
}

func runDiff(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	parse(fs, args)

	cmd.Diff(ctx, cfg)
}

func runRestore(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	id := fs.Uint64("id", 0, "Snapshot id (latest when 0)")
	force := fs.Bool("force", false, "Restore without confirmation")
	parse(fs, args)

	// Also accept the id as a positional argument.
	if *id == 0 && fs.NArg() > 0 {
		n, err := strconv.ParseUint(fs.Arg(0), 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid snapshot id %q\n", fs.Arg(0))
			os.Exit(1)
		}
		*id = n
	}

	cmd.Restore(ctx, cfg, *id, *force)
}

func runExport(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.String("o", "", "Output file (stdout when empty)")
	parse(fs, args)

	cmd.Export(ctx, cfg, *output)
}

func runImport(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	parse(fs, args)
	requireArgs(fs, 1, "keeppass import <file>")

	cmd.Import(ctx, cfg, fs.Arg(0))
}

func runStatus(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	parse(fs, args)

	cmd.Status(ctx, cfg)
}

func runPasswd(_ context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	parse(fs, args)

	cmd.Passwd(cfg)
}

func runKeyring(_ context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("keyring", flag.ExitOnError)
	parse(fs, args)
	requireArgs(fs, 1, "keeppass keyring <save|delete|status>")

	switch fs.Arg(0) {
	case "save":
		cmd.KeyringSave(cfg)
	case "delete":
		cmd.KeyringDelete(cfg)
	case "status":
		cmd.KeyringStatus(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring subcommand: %s\n", fs.Arg(0))
		fmt.Fprintln(os.Stderr, "Usage: keeppass keyring <save|delete|status>")
		os.Exit(1)
	}
}

func runCompact(_ context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	parse(fs, args)

	cmd.Compact(cfg)
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: keeppass completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("keeppass - Local credential keeper")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  keeppass [command] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Set the master password and create the vault")
	fmt.Println("  add         Store a new credential")
	fmt.Println("  get         Show the credential for a website")
	fmt.Println("  rm          Delete credentials")
	fmt.Println("  update      Change username and password for a website")
	fmt.Println("  ls          List all credentials")
	fmt.Println("  shell       Interactive menu (default without a command)")
	fmt.Println("  snapshot    Save a snapshot of all credentials")
	fmt.Println("  snapshots   List snapshots")
	fmt.Println("  diff        Compare credentials with the latest snapshot")
	fmt.Println("  restore     Restore credentials from a snapshot")
	fmt.Println("  export      Write credentials as YAML")
	fmt.Println("  import      Add credentials from a YAML file")
	fmt.Println("  status      Show vault status")
	fmt.Println("  passwd      Change the master password")
	fmt.Println("  keyring     Manage the master password in the OS keyring")
	fmt.Println("  compact     Compact the vault database")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Printf("  %-22s Credentials file (default %s)\n", config.EnvFile, config.DefaultCredentialsFile)
	fmt.Printf("  %-22s Vault database (default %s)\n", config.EnvDB, config.DefaultMetaDB)
	fmt.Printf("  %-22s Master password\n", config.EnvPassword)
	fmt.Printf("  %-22s debug, info, warn or error\n", config.EnvLogLevel)
	fmt.Printf("  %-22s text or json\n", config.EnvLogFormat)
	fmt.Printf("  %-22s Do not use the OS keyring\n", config.EnvNoKeyring)
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  keeppass init                    # Set master password")
	fmt.Println("  keeppass add -u alice github.com # Store a credential")
	fmt.Println("  keeppass get github.com          # Show it")
	fmt.Println("  keeppass snapshot                # Save a snapshot")
	fmt.Println()
	fmt.Println("Use 'keeppass help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("keeppass init")
		fmt.Println()
		fmt.Println("Creates the vault database and sets the master password.")
		fmt.Println("Only a salted verifier of the password is stored.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  keeppass init")
	case "add":
		fmt.Println("keeppass add [-u <username>] <website>")
		fmt.Println()
		fmt.Println("Stores a new credential. Prompts for the username when -u is not")
		fmt.Println("given and always prompts for the password without echo.")
		fmt.Println("Fails when the website already has a credential.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -u <username>   Username to store")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  keeppass add github.com")
		fmt.Println("  keeppass add -u alice github.com")
	case "get":
		fmt.Println("keeppass get <website>")
		fmt.Println()
		fmt.Println("Prints website, username and password for a website.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  keeppass get github.com")
	case "rm":
		fmt.Println("keeppass rm <website> [website...]")
		fmt.Println()
		fmt.Println("Deletes the credentials for the given websites.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  keeppass rm github.com")
	case "update":
		fmt.Println("keeppass update [-u <username>] <website>")
		fmt.Println()
		fmt.Println("Replaces username and password of an existing credential.")
		fmt.Println("The website stays the same.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -u <username>   New username")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  keeppass update github.com")
	case "ls":
		fmt.Println("keeppass ls [-q]")
		fmt.Println()
		fmt.Println("Lists all credentials sorted by website.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -q   Print website names only")
	case "shell":
		fmt.Println("keeppass shell")
		fmt.Println()
		fmt.Println("Starts the interactive menu:")
		fmt.Println("  1. Add credential")
		fmt.Println("  2. Retrieve credential")
		fmt.Println("  3. Delete credential")
		fmt.Println("  4. Update credential")
		fmt.Println("  5. Display all credentials")
		fmt.Println("  6. Exit")
		fmt.Println()
		fmt.Println("Running keeppass without a command does the same.")
	case "snapshot":
		fmt.Println("keeppass snapshot")
		fmt.Println()
		fmt.Printf("Stores a copy of the credentials file in the vault database.\n")
		fmt.Println("Old snapshots are pruned automatically.")
	case "snapshots":
		fmt.Println("keeppass snapshots")
		fmt.Println()
		fmt.Println("Lists stored snapshots with id, time and record count.")
	case "diff":
		fmt.Println("keeppass diff")
		fmt.Println()
		fmt.Println("Compares current credentials with the latest snapshot.")
		fmt.Println("Passwords are shown as short fingerprints, never in clear.")
	case "restore":
		fmt.Println("keeppass restore [-id <n>] [-force]")
		fmt.Println()
		fmt.Println("Replaces all credentials with the contents of a snapshot.")
		fmt.Println("The current state is snapshotted first so restore can be undone.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -id <n>    Snapshot id (latest when omitted)")
		fmt.Println("  -force     Restore without confirmation")
	case "export":
		fmt.Println("keeppass export [-o <file>]")
		fmt.Println()
		fmt.Println("Writes all credentials as YAML. Passwords are in plain text.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -o <file>   Output file (stdout when omitted)")
	case "import":
		fmt.Println("keeppass import <file>")
		fmt.Println()
		fmt.Println("Adds credentials from a YAML file written by 'keeppass export'.")
		fmt.Println("Websites that already exist are skipped and reported.")
	case "status":
		fmt.Println("keeppass status")
		fmt.Println()
		fmt.Println("Shows files, record count, timestamps, snapshots, keyring state")
		fmt.Println("and warns when the credentials file is tracked by git.")
		fmt.Println()
		fmt.Println("Does not require a password.")
	case "passwd":
		fmt.Println("keeppass passwd")
		fmt.Println()
		fmt.Println("Changes the master password. Requires the current password.")
		fmt.Println("A password saved in the keyring is updated.")
	case "keyring":
		fmt.Println("keeppass keyring <save|delete|status>")
		fmt.Println()
		fmt.Println("Manages the master password stored in the OS keyring.")
		fmt.Println()
		fmt.Println("Subcommands:")
		fmt.Println("  save     Verify and save the master password")
		fmt.Println("  delete   Remove the saved password")
		fmt.Println("  status   Show whether a password is saved")
	case "compact":
		fmt.Println("keeppass compact")
		fmt.Println()
		fmt.Println("Compacts the vault database to reclaim space left by pruned snapshots.")
		fmt.Println()
		fmt.Println("Does not require a password.")
	case "completion":
		fmt.Println("keeppass completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(keeppass completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(keeppass completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  keeppass completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
