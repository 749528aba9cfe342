package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"
)

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to ClassNote CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(a.in)

	for {
		fmt.Fprintf(a.out, "cn %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()

		case "status":
			a.status(ctx)

		case "sync":
			a.syncAll(ctx)

		case "push":
			a.push(ctx, args)

		case "pull":
			a.pull(ctx)

		case "queue":
			a.queueList(ctx)

		case "devices":
			a.devices(ctx)

		case "device-register":
			a.deviceRegister(ctx)

		case "device-delete":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: device-delete <id>")
				continue
			}
			a.deviceDelete(ctx, args[0])

		case "account-register":
			a.accountRegister(ctx)

		case "login":
			a.login(ctx)

		case "task":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: task <type> [json-payload]")
				continue
			}
			a.task(ctx, args)

		case "tasks":
			a.tasks(ctx)

		case "purge":
			if len(args) < 2 {
				fmt.Fprintln(a.out, "Usage: purge <type> <id>")
				continue
			}
			a.purge(ctx, args[0], args[1])

		case "upload":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: upload <path>")
				continue
			}
			a.upload(ctx, args[0])

		case "download":
			if len(args) == 0 {
				fmt.Fprintln(a.out, "Usage: download <name> [dest]")
				continue
			}
			a.download(ctx, args)

		case "usage":
			a.usage(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	fmt.Fprintln(a.out, "Sync:    sync, push [nofiles], pull, queue, status")
	fmt.Fprintln(a.out, "Account: account-register, login, devices, device-register, device-delete <id>")
	fmt.Fprintln(a.out, "Server:  task <type> [json], tasks, purge <type> <id>, upload <path>, download <name> [dest]")
	fmt.Fprintln(a.out, "Local:   usage, help, exit")
}
