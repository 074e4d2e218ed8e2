package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

// Website names come from 'keeppass ls -q' with stdin closed, so they only
// complete when the master password is in KEEPPASS_PASSWORD or the keyring.

const bashCompletion = `_keeppass() {
    local cur prev words cword
    _init_completion || return

    local commands="init add get rm update ls shell snapshot snapshots diff restore export import status passwd keyring compact help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        add)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-u" -- "$cur"))
            fi
            ;;
        get|rm|update)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-u" -- "$cur"))
            else
                local sites
                sites=$(keeppass ls -q </dev/null 2>/dev/null)
                COMPREPLY=($(compgen -W "$sites" -- "$cur"))
            fi
            ;;
        ls)
            COMPREPLY=($(compgen -W "-q" -- "$cur"))
            ;;
        restore)
            COMPREPLY=($(compgen -W "-id -force" -- "$cur"))
            ;;
        export)
            if [[ "$prev" == "-o" ]]; then
                _filedir
            else
                COMPREPLY=($(compgen -W "-o" -- "$cur"))
            fi
            ;;
        import)
            _filedir
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _keeppass keeppass
`

const zshCompletion = `#compdef keeppass

_keeppass() {
    local -a commands
    commands=(
        'init:Set the master password and create the vault'
        'add:Store a new credential'
        'get:Show the credential for a website'
        'rm:Delete credentials'
        'update:Change username and password for a website'
        'ls:List all credentials'
        'shell:Interactive menu'
        'snapshot:Save a snapshot of all credentials'
        'snapshots:List snapshots'
        'diff:Compare credentials with the latest snapshot'
        'restore:Restore credentials from a snapshot'
        'export:Write credentials as YAML'
        'import:Add credentials from YAML'
        'status:Show vault status'
        'passwd:Change the master password'
        'keyring:Manage master password in OS keyring'
        'compact:Compact the vault database'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'keeppass commands' commands
            ;;
        args)
            case "${words[2]}" in
                add)
                    _arguments '-u[Username]:username:'
                    ;;
                get|rm)
                    _arguments '*:website:_keeppass_websites'
                    ;;
                update)
                    _arguments '-u[New username]:username:' '*:website:_keeppass_websites'
                    ;;
                ls)
                    _arguments '-q[Print websites only]'
                    ;;
                restore)
                    _arguments '-id[Snapshot id]:id:' '-force[Restore without confirmation]'
                    ;;
                export)
                    _arguments '-o[Output file]:file:_files'
                    ;;
                import)
                    _arguments '*:file:_files'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'keeppass commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_keeppass_websites() {
    local -a sites
    sites=(${(f)"$(keeppass ls -q </dev/null 2>/dev/null)"})
    _describe -t websites 'websites' sites
}

_keeppass "$@"
`

const fishCompletion = `# keeppass fish completions

set -l commands init add get rm update ls shell snapshot snapshots diff restore export import status passwd keyring compact help completion

complete -c keeppass -f

# Commands
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a init -d 'Set master password'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a add -d 'Store a credential'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a get -d 'Show a credential'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Delete credentials'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a update -d 'Change a credential'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List credentials'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a shell -d 'Interactive menu'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a snapshot -d 'Save a snapshot'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a snapshots -d 'List snapshots'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare with latest snapshot'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a restore -d 'Restore a snapshot'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a export -d 'Export as YAML'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a import -d 'Import YAML'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show vault status'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a passwd -d 'Change master password'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage password in OS keyring'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact vault database'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c keeppass -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# Websites
complete -c keeppass -n "__fish_seen_subcommand_from get rm update" -a "(keeppass ls -q </dev/null 2>/dev/null)"

# Flags
complete -c keeppass -n "__fish_seen_subcommand_from add update" -o u -d 'Username'
complete -c keeppass -n "__fish_seen_subcommand_from ls" -o q -d 'Websites only'
complete -c keeppass -n "__fish_seen_subcommand_from restore" -o id -d 'Snapshot id'
complete -c keeppass -n "__fish_seen_subcommand_from restore" -o force -d 'No confirmation'
complete -c keeppass -n "__fish_seen_subcommand_from export" -o o -r -F -d 'Output file'
complete -c keeppass -n "__fish_seen_subcommand_from import" -F

# keyring subcommands
complete -c keeppass -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c keeppass -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c keeppass -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
