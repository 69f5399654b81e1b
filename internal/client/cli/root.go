package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	if a.pubkey == "" {
		return ""
	}
	short := a.pubkey
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf(" (%s)", short)
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to satchel CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	_ = a.Login(ctx)

	runREPL(ctx, a, a.getStatus, scanner)
}
